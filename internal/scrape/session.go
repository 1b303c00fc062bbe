package scrape

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/parlvotes/internal/extract"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

// Getter is the minimal fetch capability the scrapers need.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, string, error)
}

const (
	calendarEntrySelector = ".home_calendar"
	supplementaryMarker   = "suplementar"
)

// LocateSession fetches the archive index and returns the first calendar
// entry that is not a supplementary session. The boolean is false when the
// fetch fails or no entry qualifies.
func LocateSession(ctx context.Context, g Getter, archiveURL string) (vote.Session, bool) {
	log.Info().Str("url", archiveURL).Msg("fetching voting sessions")
	body, _, err := g.Get(ctx, archiveURL)
	if err != nil {
		log.Error().Err(err).Str("url", archiveURL).Msg("archive fetch failed")
		return vote.Session{}, false
	}
	doc, err := extract.Parse(body)
	if err != nil {
		log.Error().Err(err).Str("url", archiveURL).Msg("archive parse failed")
		return vote.Session{}, false
	}
	s, ok := FindSession(doc, archiveURL)
	if !ok {
		log.Warn().Msg("no valid voting session found on the page")
		return vote.Session{}, false
	}
	log.Info().Str("date", s.Date).Str("link", s.Link).Msg("found latest session")
	return s, true
}

// FindSession scans calendar entries in document order. Entries whose title
// mentions a supplementary session are skipped; the first remaining entry
// with a link wins and no further entries are examined.
func FindSession(doc *goquery.Document, baseURL string) (vote.Session, bool) {
	var (
		found vote.Session
		ok    bool
	)
	doc.Find(calendarEntrySelector).EachWithBreak(func(_ int, entry *goquery.Selection) bool {
		title := strings.TrimSpace(entry.Find(".title").First().Text())
		if extract.ContainsFold(title, supplementaryMarker) {
			log.Debug().Str("title", title).Msg("skipping supplementary session")
			return true
		}
		href, exists := entry.Find("a").First().Attr("href")
		if !exists || strings.TrimSpace(href) == "" {
			log.Warn().Str("title", title).Msg("calendar entry without link; skipping")
			return true
		}
		found = vote.Session{
			Link: resolve(baseURL, href),
			Date: strings.TrimSpace(entry.Find(".date").First().Text()),
		}
		ok = true
		return false
	})
	return found, ok
}

// resolve makes href absolute against base. Absolute hrefs pass through.
func resolve(base, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}
