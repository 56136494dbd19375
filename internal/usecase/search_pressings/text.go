package search_pressings

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold приводит строку к нижнему регистру без диакритики: "Café Crème" -> "cafe creme"
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func containsFolded(haystack, needle string) bool {
	return strings.Contains(fold(haystack), needle)
}

func foldedSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if f := fold(v); f != "" {
			set[f] = true
		}
	}
	return set
}
