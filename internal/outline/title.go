package outline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// resolveTitle applies the title fallbacks: the first-page candidate, then the first H1 of
// the outline, then its first entry, then the file name.
func resolveTitle(candidate string, entries []Entry, stem string) string {
	if candidate != "" {
		return candidate
	}
	if len(entries) > 0 {
		title := entries[0].Text
		for _, e := range entries {
			if e.Level == H1 {
				title = e.Text
				break
			}
		}
		if title != "" {
			return title
		}
	}
	return StemTitle(stem)
}

// StemTitle turns a file stem such as "annual_report_2024" into "Annual Report 2024".
func StemTitle(stem string) string {
	return cases.Title(language.Und).String(strings.ReplaceAll(stem, "_", " "))
}
