package linkedin

import "strings"

// Candidate is a raw, possibly partial record. Empty fields are absent.
type Candidate struct {
	Title   string
	Company string
	Link    string
}

// WalkTree finds every node carrying a link field, anywhere in v, in
// pre-order. Wrapper nodes whose link is unusable are skipped but their
// children are still searched.
func WalkTree(v Value) []Candidate {
	var out []Candidate
	walk(v, &out)
	return out
}

func walk(v Value, out *[]Candidate) {
	switch v.Kind {
	case KindList:
		for _, item := range v.Items {
			walk(item, out)
		}
	case KindObject:
		if c, ok := candidateFromNode(v); ok {
			*out = append(*out, c)
		}

		visited := make(map[string]bool, len(containerKeys))
		for _, key := range containerKeys {
			if child, ok := v.Get(key); ok {
				visited[key] = true
				walk(child, out)
			}
		}
		for _, m := range v.Members {
			if visited[m.Key] {
				continue
			}
			walk(m.Value, out)
		}
	}
}

func candidateFromNode(node Value) (Candidate, bool) {
	raw, ok := firstLinkField(node)
	if !ok {
		return Candidate{}, false
	}
	link, ok := NormalizeLink(raw)
	if !ok {
		return Candidate{}, false
	}
	return Candidate{
		Title:   firstText(node, titlePaths),
		Company: firstText(node, companyPaths),
		Link:    link,
	}, true
}

func firstLinkField(node Value) (Value, bool) {
	for _, f := range linkFields {
		if v, ok := node.Get(f); ok && v.Truthy() {
			return v, true
		}
	}
	return Value{}, false
}

// firstText returns the first non-blank string found at any of paths.
func firstText(node Value, paths [][]string) string {
	for _, p := range paths {
		v, ok := node.Lookup(p...)
		if !ok || v.Kind != KindString {
			continue
		}
		if s := strings.TrimSpace(v.Str); s != "" {
			return s
		}
	}
	return ""
}
