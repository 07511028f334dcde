package openapi

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getkin/kin-openapi/openapi3"
)

// FilterPaths returns the path templates that survive the include/exclude
// globs, sorted for deterministic iteration. Filtering happens before IR
// construction: excluded paths never enter the walk. An empty include list
// means "everything"; exclude wins over include.
func FilterPaths(doc *openapi3.T, include, exclude []string) []string {
	if doc.Paths == nil {
		return nil
	}
	var out []string
	for path := range doc.Paths.Map() {
		if !matchAny(include, path, true) {
			continue
		}
		if matchAny(exclude, path, false) {
			continue
		}
		out = append(out, path)
	}
	sort.Strings(out)
	return out
}

func matchAny(globs []string, path string, emptyMeansAll bool) bool {
	if len(globs) == 0 {
		return emptyMeansAll
	}
	for _, g := range globs {
		if ok, err := doublestar.Match(g, path); err == nil && ok {
			return true
		}
	}
	return false
}
