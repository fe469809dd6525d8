package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformAshby is the Ashby ATS platform
	PlatformAshby Platform = "ashby"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		for _, suffix := range p.suffixes {
			if host == suffix || strings.HasSuffix(host, "."+suffix) {
				return p.platform
			}
		}
	}
	return PlatformUnknown
}

var platformHosts = []struct {
	platform Platform
	suffixes []string
}{
	{PlatformGreenhouse, []string{"greenhouse.io"}},
	{PlatformLever, []string{"lever.co"}},
	{PlatformWorkday, []string{"workday.com", "myworkdayjobs.com"}},
	{PlatformAshby, []string{"ashbyhq.com"}},
}

// selectorSet lists where a platform puts the posting body and which of its
// elements are application chrome.
type selectorSet struct {
	content []string
	noise   []string
}

var platformSelectors = map[Platform]selectorSet{
	PlatformGreenhouse: {
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", ".voluntary-self-id-wrapper", "#usa_self_id_section", ".post-apply"},
	},
	PlatformLever: {
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	PlatformWorkday: {
		content: []string{"[data-automation-id='jobDescription']", ".WDXK", ".gwt-HTML", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section", ".WDAF"},
	},
	PlatformAshby: {
		content: []string{".ashby-job-posting-right-pane", "[class*='_descriptionText']", "main"},
		noise:   []string{".ashby-application-form-container", "[class*='_applicationForm']"},
	},
}

// commonNoiseSelectors cover application forms, EEO notices, share buttons
// and cookie banners on any job board.
var commonNoiseSelectors = []string{
	"form", "#application-form", ".application-form", ".application--container",
	".apply-button-container", "[data-testid='application-form']",
	".voluntary-disclosure", ".eeo-statement", ".eeo-section", "[data-testid='eeo']",
	".legal-disclosure", ".self-identification",
	".social-share", ".share-buttons", ".social-links",
	".cookie-banner", ".cookie-consent", ".gdpr-notice",
}

// PlatformContentSelectors returns the posting body selectors for platform,
// most specific first. Unknown platforms get JobPostingSelectors.
func PlatformContentSelectors(platform Platform) []string {
	if set, ok := platformSelectors[platform]; ok {
		return append([]string(nil), set.content...)
	}
	return JobPostingSelectors()
}

// PlatformNoiseSelectors returns the elements to drop before extracting text
// from a platform's pages.
func PlatformNoiseSelectors(platform Platform) []string {
	noise := append([]string(nil), commonNoiseSelectors...)
	return append(noise, platformSelectors[platform].noise...)
}
