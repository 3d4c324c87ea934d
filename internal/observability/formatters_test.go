package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/application-tailor/internal/assembly"
	"github.com/jonathan/application-tailor/internal/keywords"
	"github.com/jonathan/application-tailor/internal/layout"
	"github.com/jonathan/application-tailor/internal/types"
)

func TestPrintJob(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	job := &types.Job{Company: "Acme GmbH", Title: "Frontend Developer", ContactPerson: "Frau Weber"}
	p.PrintJob(job, keywords.NewSet("react", "teamwork"))
	output := buf.String()

	assert.Contains(t, output, "TARGET JOB")
	assert.Contains(t, output, "Acme GmbH")
	assert.Contains(t, output, "Frau Weber")
	assert.Contains(t, output, "Keywords (2)")
	assert.Contains(t, output, "react")
}

func TestPrintJob_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJob(nil, keywords.Set{})
	assert.Contains(t, buf.String(), "(none selected)")
}

func TestPrintRankedSkills(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedSkills([]types.Skill{{Name: "React", Level: "advanced"}, {Name: "Cobol"}}, keywords.NewSet("react"))
	lines := strings.Split(buf.String(), "\n")

	var reactLine, cobolLine string
	for _, l := range lines {
		if strings.Contains(l, "React") {
			reactLine = l
		}
		if strings.Contains(l, "Cobol") {
			cobolLine = l
		}
	}
	assert.Contains(t, reactLine, "✓")
	assert.NotContains(t, cobolLine, "✓")
}

func TestPrintRankedSkills_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRankedSkills(nil, keywords.Set{})
	assert.Empty(t, buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(&assembly.Report{
		YearsOfExperience: 7,
		Fields: []assembly.FieldReport{
			{Path: "experience[0].description", Outcome: assembly.OutcomeTailored},
			{Path: "experience[1].description", Outcome: assembly.OutcomeFallbackError, Error: "quota"},
		},
		MissingSections: []string{"##DATE##"},
	})
	output := buf.String()

	assert.Contains(t, output, "TAILORING REPORT")
	assert.Contains(t, output, "Years of experience: 7")
	assert.Contains(t, output, "1 tailored")
	assert.Contains(t, output, "experience[1].description: quota")
	assert.Contains(t, output, "##DATE##")
}

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	doc := &layout.Document{
		Locale: types.LocaleDE,
		Style:  types.StyleFormal,
		Pages: []layout.Page{{Number: 1, Elements: []layout.Element{
			{Kind: layout.ElementHeading, Text: "Berufserfahrung", Section: layout.SectionExperience},
		}}},
	}
	p.PrintLayout(doc)
	output := buf.String()

	assert.Contains(t, output, "Pages:    1")
	assert.Contains(t, output, "de / formal")
	assert.Contains(t, output, layout.SectionExperience)
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("ä", 100))
	assert.Contains(t, buf.String(), "...")
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), line)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, false).Debug("hidden")
	assert.Empty(t, buf.String())

	NewLogger(&buf, true).Debug("shown", "key", "value")
	assert.Contains(t, buf.String(), "key=value")
}
