package linkedin

import (
	"html"
	"net/url"
	"strings"
)

// DecodeEntities turns &quot;-style escapes back into text.
func DecodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(s)
}

// NormalizeLink canonicalizes a link field of unknown shape: a string, or an
// object wrapping one under a known sub-key.
func NormalizeLink(v Value) (string, bool) {
	switch v.Kind {
	case KindString:
		return NormalizeLinkString(v.Str)
	case KindObject:
		for _, k := range nestedLinkKeys {
			if sub, ok := v.Get(k); ok && sub.Kind == KindString {
				return NormalizeLinkString(sub.Str)
			}
		}
	}
	return "", false
}

// NormalizeLinkString decodes, trims, strips a known label and absolutizes a
// site-relative path. The result is an absolute http(s) URL or rejected.
func NormalizeLinkString(raw string) (string, bool) {
	s := strings.TrimSpace(DecodeEntities(raw))
	for _, label := range linkLabelPrefixes {
		if strings.HasPrefix(s, label) {
			s = strings.TrimSpace(strings.TrimPrefix(s, label))
		}
	}
	switch {
	case strings.HasPrefix(s, "//"):
		s = "https:" + s
	case strings.HasPrefix(s, "/"):
		s = siteOrigin + s
	}
	return ValidateLink(s)
}

// ValidateLink accepts an already-normalized link as is, or rejects it.
// It does not decode again, so it is safe to apply repeatedly.
func ValidateLink(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || IsPlaceholderLink(s) {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", false
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return "", false
	}
	return s, true
}

// IsPlaceholderLink reports the schema stand-ins LinkedIn leaves in
// unpopulated payloads ("string", "null", "com.linkedin.common.Url").
func IsPlaceholderLink(s string) bool {
	s = strings.TrimSpace(s)
	for _, p := range placeholderLinks {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return strings.Contains(s, placeholderMarker)
}
