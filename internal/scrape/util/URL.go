package util

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var reJobID = regexp.MustCompile(`/jobs/view/(?:[^/?#]*-)?([0-9]+)`)

// CanonicalizeURL lowercases scheme and host, drops the fragment and
// tracking parameters, and sorts what is left of the query. LinkedIn links
// keep only currentJobId.
func CanonicalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") ||
			lk == "gclid" || lk == "fbclid" || lk == "msclkid" ||
			lk == "mc_cid" || lk == "mc_eid" ||
			lk == "mkt_tok" || lk == "trk" || lk == "refid" || lk == "trackingid" {
			q.Del(k)
		}
	}

	if strings.Contains(u.Host, "linkedin.com") {
		keep := url.Values{}
		if v := q.Get("currentJobId"); v != "" {
			keep.Set("currentJobId", v)
		}
		q = keep
	}

	// deterministic query
	for k := range q {
		vals := q[k]
		sort.Strings(vals)
		q[k] = vals
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// LinkedInJobID returns the numeric posting id of a /jobs/view/ link, or "".
func LinkedInJobID(link string) string {
	if m := reJobID.FindStringSubmatch(link); len(m) == 2 {
		return m[1]
	}
	return ""
}

// SourceID is the stable dedupe key stored with a job: "linkedin:<id>" for
// LinkedIn postings, otherwise a hash of the canonical URL.
func SourceID(link string) string {
	if id := LinkedInJobID(link); id != "" {
		return "linkedin:" + id
	}
	c := CanonicalizeURL(link)
	if c == "" {
		return ""
	}
	return hashString("url:" + c)
}

func hashString(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
