package project

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/volt/internal/model"
)

// newMatcher compiles f into a predicate. Search is case-insensitive and
// compares NFC-normalized, case-folded text, so "Café" matches "CAFÉ"
// whichever way the accent was composed.
func newMatcher(f Filters) func(model.Project) bool {
	fold := cases.Fold()
	normalize := func(s string) string {
		return fold.String(norm.NFC.String(s))
	}
	needle := normalize(strings.TrimSpace(f.Search))

	return func(p model.Project) bool {
		if f.Status != All && f.Status != "" && p.Status != f.Status {
			return false
		}
		if f.Type != All && f.Type != "" && p.Type != f.Type {
			return false
		}
		if f.Priority != All && f.Priority != "" && p.Priority != f.Priority {
			return false
		}
		if needle == "" {
			return true
		}
		if strings.Contains(normalize(p.Name), needle) || strings.Contains(normalize(p.Description), needle) {
			return true
		}
		for _, tag := range p.Tags {
			if strings.Contains(normalize(tag), needle) {
				return true
			}
		}
		return false
	}
}
