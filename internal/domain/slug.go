package domain

import (
	"regexp"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`[\s\v\p{Z}\x{feff}]+`)

// Slugify derives a page slug: "/" + lowercased name with every whitespace
// run replaced by a single "-". Leading and trailing whitespace are kept as
// dashes, matching the routes already handed out.
func Slugify(name string) string {
	lower := cases.Lower(language.Und).String(norm.NFC.String(name))
	return "/" + whitespaceRun.ReplaceAllString(lower, "-")
}
