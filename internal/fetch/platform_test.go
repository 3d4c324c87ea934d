package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.stepstone.de/stellenangebote--Frontend-Entwickler-Berlin--123.html", PlatformStepStone},
		{"https://www.xing.com/jobs/berlin-frontend-developer-123", PlatformXing},
		{"https://acme.jobs.personio.de/job/123", PlatformPersonio},
		{"https://join.com/companies/acme/123-frontend", PlatformJoin},
		{"https://job-boards.greenhouse.io/acme/jobs/7063751", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/job-id", PlatformLever},
		{"https://acme.wd3.myworkdayjobs.com/de-DE/External", PlatformWorkday},
		{"https://example.com/careers/frontend", PlatformUnknown},
		{"https://notstepstone.de.evil.com/job", PlatformUnknown},
		{"://bad", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	stepstone := PlatformContentSelectors(PlatformStepStone)
	assert.Equal(t, "[data-at='job-ad-content']", stepstone[0])
	assert.Contains(t, stepstone, ".job-description", "falls back to generic selectors")

	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, "#usercentrics-root")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, ".application--wrapper")
	assert.Greater(t, len(greenhouse), len(common))
}
