package scrape

import (
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// authorStrategy extracts an author list from one markup variant. ok is
// false when the variant is not present on the page.
type authorStrategy func(content *goquery.Selection) (authors []string, ok bool)

// authorStrategies are tried in order; the first that reports ok wins.
var authorStrategies = []authorStrategy{
	authorsFromGroups,
	authorsFromDeputies,
	authorsFromLastAuthor,
}

func extractAuthors(content *goquery.Selection) ([]string, bool) {
	for _, strategy := range authorStrategies {
		if authors, ok := strategy(content); ok {
			return authors, true
		}
	}
	return nil, false
}

// authorsFromGroups reads a newline separated list of parliamentary groups.
// Lines with parenthetical annotations are dropped.
func authorsFromGroups(content *goquery.Selection) ([]string, bool) {
	sel := content.Find(`[id*="Autores_GPs"]`).First()
	if sel.Length() == 0 {
		return nil, false
	}
	text := strings.ReplaceAll(strings.TrimSpace(sel.Text()), ",", "")
	var authors []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "(") {
			continue
		}
		authors = append(authors, line)
	}
	return authors, true
}

// authorsFromDeputies reads a comma separated list of deputies and keeps the
// trailing party abbreviation of each, e.g. "Ana Silva (PS)" becomes "PS".
// The result is deduplicated and sorted.
func authorsFromDeputies(content *goquery.Selection) ([]string, bool) {
	sel := content.Find(`[id*="AutoresD"]`).First()
	if sel.Length() == 0 {
		return nil, false
	}
	text := strings.NewReplacer("\n", "", "\r", "").Replace(sel.Text())
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.Split(part, " ")
		abbrev := strings.NewReplacer("(", "", ")", "").Replace(fields[len(fields)-1])
		seen[abbrev] = struct{}{}
	}
	authors := make([]string, 0, len(seen))
	for a := range seen {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors, true
}

// authorsFromLastAuthor takes the text after the last colon of the last
// element whose id mentions an author.
func authorsFromLastAuthor(content *goquery.Selection) ([]string, bool) {
	sel := content.Find(`[id*="Autor"]`).Last()
	if sel.Length() == 0 {
		return nil, false
	}
	parts := strings.Split(sel.Text(), ":")
	return []string{strings.TrimSpace(parts[len(parts)-1])}, true
}
