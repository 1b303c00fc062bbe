package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hyperifyio/parlvotes/internal/extract"
)

// voteStrategy serializes the markup fragment that holds the vote breakdown.
type voteStrategy func(content *goquery.Selection) (fragment string, ok bool)

var voteStrategies = []voteStrategy{
	votesFromDetails,
	votesFromLastSpan,
}

func extractVotes(content *goquery.Selection) ([]string, bool) {
	for _, strategy := range voteStrategies {
		if fragment, ok := strategy(content); ok {
			return normalizeVotes(fragment), true
		}
	}
	return nil, false
}

// votesFromDetails serializes the inner markup of the last non-empty
// Votacoes/Detalhes element.
func votesFromDetails(content *goquery.Selection) (string, bool) {
	var last *goquery.Selection
	content.Find(`[id*="Votacoes"][id*="Detalhes"]`).Each(func(_ int, s *goquery.Selection) {
		if extract.HasContents(s) {
			last = s
		}
	})
	if last == nil {
		return "", false
	}
	fragment, err := extract.InnerHTML(last)
	if err != nil {
		return "", false
	}
	return fragment, true
}

// votesFromLastSpan serializes the last span, tag included, nested in the
// first Votacoes element.
func votesFromLastSpan(content *goquery.Selection) (string, bool) {
	span := content.Find(`[id*="Votacoes"]`).First().Find("span").Last()
	if span.Length() == 0 {
		return "", false
	}
	fragment, err := extract.OuterHTML(span)
	if err != nil {
		return "", false
	}
	return fragment, true
}

var (
	stripInlineTags = strings.NewReplacer(
		"<span>", "", "</span>", "", "<span/>", "",
		"<i>", "", "</i>", "", "<i/>", "",
	)
	canonicalBreaks = strings.NewReplacer("<br/>", "<br>", "</br>", "<br>")
)

// normalizeVotes turns a serialized breakdown into "label: decision" lines.
// The replacement order matters and mirrors the site's markup quirks.
func normalizeVotes(fragment string) []string {
	s := stripInlineTags.Replace(fragment)
	s = strings.ReplaceAll(s, ": ", ":")
	s = strings.ReplaceAll(s, ":", ": ")
	s = strings.ReplaceAll(s, "  ", " ")
	s = canonicalBreaks.Replace(s)

	var votes []string
	for _, line := range strings.Split(s, "<br>") {
		if line = strings.TrimSpace(line); line != "" {
			votes = append(votes, line)
		}
	}
	return votes
}
