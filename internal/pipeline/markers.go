package pipeline

import "strings"

// EmptyPage reports whether a listing page's HTML indicates an empty
// result set. The predicate receives the cleaned HTML of the probe crawl.
type EmptyPage func(html string) bool

// defaultNoResultsMarkers are matched case-sensitively as substrings.
// Listing sites render these labels verbatim on empty result pages.
var defaultNoResultsMarkers = []string{
	"No Results Found",
	"No candidates found",
	"No profiles available",
	"0 results",
}

// NoResults is the default EmptyPage predicate.
var NoResults = MarkersPredicate(defaultNoResultsMarkers)

// MarkersPredicate builds an EmptyPage predicate matching any of the given
// substrings, case-sensitively.
func MarkersPredicate(markers []string) EmptyPage {
	return func(html string) bool {
		for _, marker := range markers {
			if strings.Contains(html, marker) {
				return true
			}
		}
		return false
	}
}
