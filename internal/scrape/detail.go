package scrape

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/parlvotes/internal/extract"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

// ErrNoContent marks a detail page without the main content container.
// Such pages are skipped, not retried.
var ErrNoContent = errors.New("content container not found")

const (
	contentSelector = ".ar-no-padding"
	pdfLinkLabel    = "[formato PDF]"
	unanimousMarker = "unanimidade"
)

// ScrapeDetail fetches one vote detail page and extracts a Record from it.
// Date is left empty for the caller to fill in.
func ScrapeDetail(ctx context.Context, g Getter, pageURL string) (vote.Record, error) {
	log.Info().Str("url", pageURL).Msg("scraping vote details")
	body, _, err := g.Get(ctx, pageURL)
	if err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("detail fetch failed")
		return vote.Record{}, fmt.Errorf("fetch detail: %w", err)
	}
	doc, err := extract.Parse(body)
	if err != nil {
		log.Error().Err(err).Str("url", pageURL).Msg("detail parse failed")
		return vote.Record{}, err
	}
	return ParseDetail(doc, pageURL)
}

// ParseDetail extracts every field independently. A field that cannot be
// found is logged and left empty; only a missing content container fails.
func ParseDetail(doc *goquery.Document, pageURL string) (vote.Record, error) {
	content := doc.Find(contentSelector).First()
	if content.Length() == 0 {
		log.Warn().Str("url", pageURL).Msg("could not find content container")
		return vote.Record{}, ErrNoContent
	}

	rec := vote.Record{URL: pageURL}
	miss := func(field string) {
		log.Warn().Str("url", pageURL).Str("field", field).Msg("field not found")
	}

	if s, ok := firstText(content, `[id*="Titulo"]`); ok {
		rec.ID = s
	} else {
		miss("id")
	}

	if s, ok := firstText(content, `[id*="Assunto"]`); ok {
		rec.Title = s
	} else if s, ok := firstText(content, `[id*="DocumentoTitulo"]`); ok {
		rec.Title = s
	} else {
		miss("title")
	}

	if s, ok := documentPDFLink(content); ok {
		rec.Link = s
	} else {
		miss("link")
	}

	if authors, ok := extractAuthors(content); ok {
		rec.Authors = authors
	} else {
		miss("authors")
	}

	if s, ok := firstText(content, `[id*="Votacoes"][id*="Resultado"]`); ok {
		rec.Result = s
	} else {
		miss("result")
	}

	if !extract.ContainsFold(rec.Result, unanimousMarker) {
		if votes, ok := extractVotes(content); ok {
			rec.Votes = votes
		} else {
			miss("votes")
		}
	}

	return rec, nil
}

// firstText returns the trimmed text of the first element matching selector.
func firstText(content *goquery.Selection, selector string) (string, bool) {
	sel := content.Find(selector).First()
	if sel.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(sel.Text()), true
}

// documentPDFLink picks the first DocumentoPDF element whose text is exactly
// the PDF label and returns its href.
func documentPDFLink(content *goquery.Selection) (string, bool) {
	var (
		href string
		ok   bool
	)
	content.Find(`[id*="DocumentoPDF"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Text() != pdfLinkLabel {
			return true
		}
		href, ok = s.Attr("href")
		return false
	})
	return href, ok
}
