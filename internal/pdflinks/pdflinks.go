// Package pdflinks pulls vote detail URLs out of the link annotations of a
// session results PDF.
package pdflinks

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// DetailMarker is the substring that identifies a vote detail link.
const DetailMarker = "Detalhe"

// Extract returns the unique detail-page URLs referenced by link annotations,
// sorted ascending. A malformed document yields whatever was collected before
// the fault; extraction never fails.
func Extract(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	log.Info().Int("bytes", len(content)).Msg("extracting links from pdf")
	seen := make(map[string]struct{})
	if err := collect(content, seen); err != nil {
		log.Error().Err(err).Int("partial", len(seen)).Msg("link extraction failed")
	}
	links := make([]string, 0, len(seen))
	for l := range seen {
		links = append(links, l)
	}
	sort.Strings(links)
	log.Info().Int("count", len(links)).Msg("found unique vote links in pdf")
	return links
}

func collect(content []byte, seen map[string]struct{}) (err error) {
	// The reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return fmt.Errorf("open pdf: %w", err)
	}
	for i := 1; i <= r.NumPage(); i++ {
		annots := r.Page(i).V.Key("Annots")
		for j := 0; j < annots.Len(); j++ {
			uri := annots.Index(j).Key("A").Key("URI").Text()
			if strings.Contains(uri, DetailMarker) {
				seen[uri] = struct{}{}
			}
		}
	}
	return nil
}
