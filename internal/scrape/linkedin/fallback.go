package linkedin

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExtractFallback finds job URLs in free text and guesses title and company
// from the surrounding characters. Used when a block is not JSON, or is JSON
// the walker found nothing in.
func ExtractFallback(text string) []Candidate {
	var out []Candidate
	for _, loc := range reJobURL.FindAllStringIndex(text, -1) {
		link, _ := NormalizeLinkString(text[loc[0]:loc[1]])
		win := window(text, loc[0], loc[1], fallbackRadius)
		out = append(out, Candidate{
			Title:   firstGroup(win, rePlainTitle, reTitleAtCompany),
			Company: firstGroup(win, rePlainCompany, reAtCompany),
			Link:    link,
		})
	}
	return out
}

// firstGroup returns capture group 1 of the first pattern that matches.
func firstGroup(s string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v
			}
		}
	}
	return ""
}

// window widens [start,end) by radius runes on each side, clipped to s.
func window(s string, start, end, radius int) string {
	lo := start
	for n := 0; n < radius && lo > 0; n++ {
		_, size := utf8.DecodeLastRuneInString(s[:lo])
		lo -= size
	}
	hi := end
	for n := 0; n < radius && hi < len(s); n++ {
		_, size := utf8.DecodeRuneInString(s[hi:])
		hi += size
	}
	return s[lo:hi]
}
