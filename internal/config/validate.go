package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

const minUploadBytes = 1 << 10

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong
// with it. Callers persist the copy only when the result is OK.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	// Normalize common lists
	out.CoverLetter.Skills = trimList(out.CoverLetter.Skills)
	out.CoverLetter.ApplicantName = strings.TrimSpace(out.CoverLetter.ApplicantName)
	out.CoverLetter.Closing = strings.TrimSpace(out.CoverLetter.Closing)
	out.App.DataDir = strings.TrimSpace(out.App.DataDir)

	rules := make([]Rule, 0, len(out.Scoring.TitleRules))
	for _, r := range out.Scoring.TitleRules {
		r.Tag = strings.TrimSpace(r.Tag)
		r.Any = trimList(r.Any)
		rules = append(rules, r)
	}
	out.Scoring.TitleRules = rules

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Import.MaxUploadBytes < minUploadBytes {
		res.addErr("import.max_upload_bytes must be >= %d", minUploadBytes)
	} else if out.Import.MaxUploadBytes > 200<<20 {
		res.addWarn("import.max_upload_bytes is very large (%d); uploads are held in memory.", out.Import.MaxUploadBytes)
	}
	if out.Import.Workers <= 0 {
		res.addErr("import.workers must be > 0")
	}
	if out.Import.RatePerMinute < 0 {
		res.addErr("import.rate_per_minute must be >= 0 (0 disables the limit)")
	}

	seenTags := map[string]bool{}
	for i, r := range out.Scoring.TitleRules {
		if r.Tag == "" {
			res.addErr("scoring.title_rules[%d].tag is required", i)
		}
		if len(r.Any) == 0 {
			res.addErr("scoring.title_rules[%d].any must have at least 1 term", i)
		}
		if r.Weight < 0 {
			res.addErr("scoring.title_rules[%d].weight must be >= 0", i)
		}
		if r.Tag != "" && seenTags[strings.ToLower(r.Tag)] {
			res.addWarn("scoring.title_rules tag %q appears more than once", r.Tag)
		}
		seenTags[strings.ToLower(r.Tag)] = true
	}

	if out.CoverLetter.ApplicantName == "" {
		res.addWarn("cover_letter.applicant_name is empty; letters will be unsigned.")
	}
	if len(out.CoverLetter.Skills) == 0 {
		res.addWarn("cover_letter.skills is empty; letters will use generic wording.")
	}

	return out, res
}
