package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/parlvotes/internal/pdflinks"
	"github.com/hyperifyio/parlvotes/internal/vote"
)

func TestDigestPath_Sanitizes(t *testing.T) {
	require.Equal(t, filepath.Join("d", "2024-01-02.pdf"), digestPath("d", "2024-01-02"))
	require.Equal(t, filepath.Join("d", "15_de_janeiro_2024.pdf"), digestPath("d", "15 de janeiro/2024"))
	require.Equal(t, filepath.Join("d", "session.pdf"), digestPath("d", "//"))
}

// The digest links back to each detail page, so link extraction over the
// digest recovers the scraped URLs.
func TestWriteDigest_LinksRoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := []vote.Record{
		{URL: "https://www.parlamento.pt/DetalheVotacao?id=2", ID: "PL 2", Title: "Saúde", Result: "Aprovado", Votes: []string{"Favor: PS", "Contra: &#39;CH&#39;"}},
		{URL: "https://www.parlamento.pt/DetalheVotacao?id=1", Title: "Educação", Authors: []string{"PS", "L"}},
	}
	path, err := writeDigest(dir, "2024-01-02", records)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://www.parlamento.pt/DetalheVotacao?id=1",
		"https://www.parlamento.pt/DetalheVotacao?id=2",
	}, pdflinks.Extract(b))
}
