package processor

import (
	"context"

	"github.com/hyperifyio/parlvotes/internal/metrics"
	"github.com/hyperifyio/parlvotes/internal/scrape"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

// VoteStream yields one record per detail link, scraping each link only when
// Next advances to it. It is single-pass: once exhausted it stays exhausted.
// Links that fail to scrape are skipped silently.
//
//	for stream.Next(ctx) {
//		rec := stream.Vote()
//	}
type VoteStream struct {
	links   []string
	date    string
	getter  scrape.Getter
	metrics *metrics.Run

	pos     int
	current vote.Record
	skipped int
}

// Next scrapes links until one yields a record. It returns false when the
// links are exhausted or ctx is done.
func (s *VoteStream) Next(ctx context.Context) bool {
	for s.pos < len(s.links) {
		if ctx.Err() != nil {
			return false
		}
		link := s.links[s.pos]
		s.pos++
		rec, err := scrape.ScrapeDetail(ctx, s.getter, link)
		if err != nil {
			s.skipped++
			s.metrics.ScrapeMiss()
			continue
		}
		rec.Date = s.date
		s.current = rec
		s.metrics.VoteStreamed()
		return true
	}
	s.current = vote.Record{}
	return false
}

// Vote returns the record produced by the last successful Next.
func (s *VoteStream) Vote() vote.Record { return s.current }

// Date is the session date stamped on every record.
func (s *VoteStream) Date() string { return s.date }

// Len is the number of detail links behind the stream.
func (s *VoteStream) Len() int { return len(s.links) }

// Skipped counts links that produced no record so far.
func (s *VoteStream) Skipped() int { return s.skipped }
