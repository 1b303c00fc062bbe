// Package processor composes the session locator, the results PDF download,
// link extraction and detail scraping into a lazy stream of vote records.
package processor

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/parlvotes/internal/metrics"
	"github.com/hyperifyio/parlvotes/internal/pdflinks"
	"github.com/hyperifyio/parlvotes/internal/scrape"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

// Processor locates the latest voting session on the archive and turns its
// results PDF into vote records.
type Processor struct {
	ArchiveURL string
	HTTP       scrape.Getter
	// Metrics is optional.
	Metrics *metrics.Run
}

// LocateLatest returns the most recent non-supplementary session.
func (p *Processor) LocateLatest(ctx context.Context) (vote.Session, bool) {
	return scrape.LocateSession(ctx, p.HTTP, p.ArchiveURL)
}

// FetchResultsPDF downloads the session results PDF. The boolean is false on
// any transport failure or an empty body.
func (p *Processor) FetchResultsPDF(ctx context.Context, link string) ([]byte, bool) {
	log.Info().Str("url", link).Msg("downloading results pdf")
	body, _, err := p.HTTP.Get(ctx, link)
	if err != nil {
		log.Error().Err(err).Str("url", link).Msg("results pdf download failed")
		return nil, false
	}
	return body, len(body) > 0
}

// StreamVotes locates the latest session and streams its votes.
func (p *Processor) StreamVotes(ctx context.Context) (*VoteStream, bool) {
	s, ok := p.LocateLatest(ctx)
	if !ok || s.Link == "" || s.Date == "" {
		return nil, false
	}
	return p.StreamSession(ctx, s)
}

// StreamSession streams the votes of an already located session. It returns
// false when the PDF cannot be downloaded or references no detail pages.
func (p *Processor) StreamSession(ctx context.Context, s vote.Session) (*VoteStream, bool) {
	content, ok := p.FetchResultsPDF(ctx, s.Link)
	if !ok {
		return nil, false
	}
	links := pdflinks.Extract(content)
	if len(links) == 0 {
		log.Warn().Str("date", s.Date).Msg("results pdf has no vote links")
		return nil, false
	}
	log.Info().Int("count", len(links)).Str("date", s.Date).Msg("processing votes one by one")
	return &VoteStream{
		links:   links,
		date:    s.Date,
		getter:  p.HTTP,
		metrics: p.Metrics,
	}, true
}
