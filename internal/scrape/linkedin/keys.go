package linkedin

import "regexp"

// Everything in this file is reverse-engineered from saved-jobs pages and
// drifts whenever LinkedIn reshuffles its payloads. Edit here, not in the walkers.

const siteOrigin = "https://www.linkedin.com"

const (
	DefaultTitle   = "Untitled"
	DefaultCompany = "Unknown company"
)

// linkFields is checked in order; the first present field is the node's link.
var linkFields = []string{
	"navigationUrl",
	"navigationUrlForTracking",
	"navigationUrlForJob",
	"jobUrl",
	"url",
}

// nestedLinkKeys applies when a link field holds an object instead of a string.
var nestedLinkKeys = []string{"url", "navigationUrl", "href"}

var linkLabelPrefixes = []string{"navigationUrl:"}

// A path of length 2 means {"titleText": {"text": "..."}}.
var titlePaths = [][]string{
	{"title"},
	{"titleText", "text"},
	{"primaryText", "text"},
	{"headline", "text"},
	{"name"},
}

var companyPaths = [][]string{
	{"companyName"},
	{"secondaryTitleText", "text"},
	{"subtitle", "text"},
	{"company", "name"},
}

// containerKeys are descended into before any other member of a node.
var containerKeys = []string{"jobPosting", "jobCard", "job", "jobPostings", "item", "elements"}

var (
	placeholderLinks  = []string{"string", "null"}
	placeholderMarker = "com.linkedin.common.Url"
)

const fallbackRadius = 300

var (
	reJobURL = regexp.MustCompile(`(?i)https?://www\.linkedin\.com/jobs/view/[0-9]+[^\s"'>]*`)

	rePlainTitle   = regexp.MustCompile(`(?i)"title"\s*:\s*"([^"]{3,200})"`)
	rePlainCompany = regexp.MustCompile(`(?i)"companyName"\s*:\s*"([^"]{3,200})"`)

	// "Platform Engineer at Initech" style prose.
	reTitleAtCompany = regexp.MustCompile(`([A-Z][A-Za-z0-9&\-\s]{3,60})\s*(?:at|@)\s*([A-Z][A-Za-z0-9&\-\s]{2,60})`)
	reAtCompany      = regexp.MustCompile(`(?:at|@)\s*([A-Z][A-Za-z0-9&\-\s]{2,60})`)
)
