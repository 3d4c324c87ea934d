package layout

import (
	"fmt"
	"strings"

	"github.com/jonathan/application-tailor/internal/locale"
	"github.com/jonathan/application-tailor/internal/types"
)

// dateStyle selects how year-month values are printed.
type dateStyle int

const (
	datesNumeric dateStyle = iota // 03/2021
	datesMonth                    // März 2021 / Mar 2021
)

// style holds the purely visual rules of a template style.
type style struct {
	marginX      float64
	marginTop    float64
	marginBottom float64

	body     Font
	small    Font
	muted    Font
	heading  Font
	name     Font
	bandText Font

	accent        string
	bandHeight    float64
	bandFill      string
	sidebarWidth  float64
	sidebarFill   string
	gutter        float64
	upperHeadings bool
	headingRule   bool
	dates         dateStyle
}

var styles = map[types.Style]style{
	types.StyleFormal: {
		marginX:      mm(20),
		marginTop:    mm(20),
		marginBottom: mm(22),
		body:         Font{Size: 10.5},
		small:        Font{Size: 9},
		muted:        Font{Size: 9.5, Color: "#4b5563"},
		heading:      Font{Size: 12.5, Bold: true, Color: "#111827"},
		name:         Font{Size: 20, Bold: true, Color: "#111827"},
		accent:       "#111827",
		headingRule:  true,
		dates:        datesNumeric,
	},
	types.StyleEnhanced: {
		marginX:       mm(13),
		marginTop:     mm(15),
		marginBottom:  mm(18),
		body:          Font{Size: 10},
		small:         Font{Size: 8.5},
		muted:         Font{Size: 9, Color: "#52606d"},
		heading:       Font{Size: 11.5, Bold: true, Color: "#1e3a5f"},
		name:          Font{Size: 24, Bold: true, Color: "#ffffff"},
		bandText:      Font{Size: 11, Color: "#dbe4ee"},
		accent:        "#1e3a5f",
		bandHeight:    118,
		bandFill:      "#1e3a5f",
		sidebarWidth:  165,
		sidebarFill:   "#eef2f7",
		gutter:        22,
		upperHeadings: true,
		dates:         datesMonth,
	},
}

// resolveTemplate checks the template and returns its style rules and normalized locale.
func resolveTemplate(tpl types.Template) (style, types.Locale, error) {
	if !locale.Supported(tpl.Locale) {
		return style{}, "", &FieldError{Field: "template.locale", Message: fmt.Sprintf("unsupported locale %q", tpl.Locale)}
	}
	st, ok := styles[tpl.Style]
	if !ok {
		return style{}, "", &FieldError{Field: "template.style", Message: fmt.Sprintf("unknown style %q", tpl.Style)}
	}
	return st, tpl.Locale, nil
}

func (st style) headingText(loc types.Locale, key locale.Key) string {
	text := locale.Label(loc, key)
	if st.upperHeadings {
		return strings.ToUpper(text)
	}
	return text
}

func (st style) formatYearMonth(loc types.Locale, ym types.YearMonth) string {
	if st.dates == datesMonth {
		return fmt.Sprintf("%s %d", locale.ShortMonthName(loc, ym.Month), ym.Year)
	}
	return fmt.Sprintf("%02d/%d", int(ym.Month), ym.Year)
}

// dateRange prints "start – end". Ongoing entries end with the localized "present".
func (st style) dateRange(loc types.Locale, start types.YearMonth, end *types.YearMonth, ongoing bool) string {
	var from, to string
	if !start.IsZero() {
		from = st.formatYearMonth(loc, start)
	}
	switch {
	case ongoing:
		to = locale.Label(loc, locale.LabelPresent)
	case end != nil && !end.IsZero():
		to = st.formatYearMonth(loc, *end)
	}
	switch {
	case from != "" && to != "":
		return from + " – " + to
	case from != "":
		return from
	default:
		return to
	}
}

// footerY is the baseline row of the page counter.
func (st style) footerY(size Size) float64 {
	return size.Height - st.marginBottom*0.6
}
