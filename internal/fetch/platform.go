package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	PlatformStepStone  Platform = "stepstone"
	PlatformXing       Platform = "xing"
	PlatformPersonio   Platform = "personio"
	PlatformJoin       Platform = "join"
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

// platformHosts maps host suffixes to platforms.
var platformHosts = []struct {
	suffix   string
	platform Platform
}{
	{"stepstone.de", PlatformStepStone},
	{"stepstone.at", PlatformStepStone},
	{"xing.com", PlatformXing},
	{"jobs.personio.de", PlatformPersonio},
	{"jobs.personio.com", PlatformPersonio},
	{"join.com", PlatformJoin},
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
}

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range platformHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.platform
		}
	}
	return PlatformUnknown
}

// PlatformContentSelectors returns content selectors optimized for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformStepStone:
		return append([]string{
			"[data-at='job-ad-content']",
			".listing-content",
			".js-app-ld-ContentBlock",
		}, JobPostingSelectors()...)
	case PlatformXing:
		return append([]string{
			"[data-testid='expandable-content']",
			".job-description",
		}, JobPostingSelectors()...)
	case PlatformPersonio:
		return append([]string{
			".job-details-description",
			"#job-details",
		}, JobPostingSelectors()...)
	case PlatformJoin:
		return append([]string{
			"[data-testid='JobDescription']",
		}, JobPostingSelectors()...)
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobPostingDescription']",
			"[data-automation-id='jobDescription']",
			".job-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// Application forms
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		"[data-testid='application-form']",

		// Social and share buttons
		".social-share",
		".share-buttons",

		// Cookie and GDPR
		".cookie-banner",
		".cookie-consent",
		"#usercentrics-root",
		".gdpr-notice",
	}

	switch platform {
	case PlatformStepStone:
		return append(common, "[data-at='apply-button']", ".at-similar-jobs")
	case PlatformXing:
		return append(common, "[data-testid='similar-jobs']")
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
