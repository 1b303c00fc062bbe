package processor

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/hyperifyio/parlvotes/internal/fetch"
	"github.com/hyperifyio/parlvotes/internal/metrics"
	"github.com/hyperifyio/parlvotes/internal/sitetest"
)

func newProcessor(site *sitetest.Site) *Processor {
	return &Processor{ArchiveURL: site.ArchiveURL(), HTTP: &fetch.Client{}}
}

func TestStreamVotes_LazyOrderedAndDated(t *testing.T) {
	site := sitetest.New("2024-01-02", map[string]string{
		"1": sitetest.DetailPage("PL 1/XV", "Primeiro", "Aprovado"),
		"2": sitetest.DetailPage("PL 2/XV", "Segundo", "Rejeitado"),
	})
	defer site.Close()

	p := newProcessor(site)
	stream, ok := p.StreamVotes(context.Background())
	require.True(t, ok)
	require.Equal(t, 2, stream.Len())
	require.Equal(t, "2024-01-02", stream.Date())

	// Nothing is scraped until the consumer advances.
	require.Zero(t, site.Hits("/Detalhe/1"))
	require.Zero(t, site.Hits("/Detalhe/2"))

	require.True(t, stream.Next(context.Background()))
	first := stream.Vote()
	require.Equal(t, site.DetailURL("1"), first.URL)
	require.Equal(t, "PL 1/XV", first.ID)
	require.Equal(t, "2024-01-02", first.Date)
	require.Equal(t, []string{"Favor: PS", "Contra: PSD"}, first.Votes)
	require.Equal(t, 1, site.Hits("/Detalhe/1"))
	require.Zero(t, site.Hits("/Detalhe/2"))

	require.True(t, stream.Next(context.Background()))
	require.Equal(t, site.DetailURL("2"), stream.Vote().URL)

	require.False(t, stream.Next(context.Background()))
	// Exhausted streams stay exhausted and do not refetch.
	require.False(t, stream.Next(context.Background()))
	require.Equal(t, 1, site.Hits("/Detalhe/1"))
	require.Equal(t, 1, site.Hits("/Detalhe/2"))
}

func TestStreamVotes_SkipsFailedLinks(t *testing.T) {
	site := sitetest.New("2024-01-02", map[string]string{
		"1": sitetest.DetailPage("PL 1/XV", "Primeiro", "Aprovado"),
		"3": `<html><body><p>sem conteúdo</p></body></html>`,
	}, "2")
	defer site.Close()

	run := metrics.NewRun()
	p := newProcessor(site)
	p.Metrics = run
	stream, ok := p.StreamVotes(context.Background())
	require.True(t, ok)
	require.Equal(t, 3, stream.Len())

	var urls []string
	for stream.Next(context.Background()) {
		urls = append(urls, stream.Vote().URL)
	}
	require.Equal(t, []string{site.DetailURL("1")}, urls)
	require.Equal(t, 2, stream.Skipped())
	require.Equal(t, 1.0, testutil.ToFloat64(run.VotesStreamed))
	require.Equal(t, 2.0, testutil.ToFloat64(run.ScrapeMisses))
}

func TestStreamVotes_NoLinks(t *testing.T) {
	site := sitetest.New("2024-01-02", map[string]string{})
	defer site.Close()

	_, ok := newProcessor(site).StreamVotes(context.Background())
	require.False(t, ok)
}

func TestStreamVotes_ArchiveUnavailable(t *testing.T) {
	site := sitetest.New("2024-01-02", nil)
	site.Close()

	_, ok := newProcessor(site).StreamVotes(context.Background())
	require.False(t, ok)
}

func TestFetchResultsPDF_Failure(t *testing.T) {
	site := sitetest.New("2024-01-02", nil)
	defer site.Close()

	_, ok := newProcessor(site).FetchResultsPDF(context.Background(), site.URL+"/nope.pdf")
	require.False(t, ok)
}

func TestVoteStream_StopsOnCancelledContext(t *testing.T) {
	site := sitetest.New("2024-01-02", map[string]string{
		"1": sitetest.DetailPage("PL 1/XV", "Primeiro", "Aprovado"),
	})
	defer site.Close()

	stream, ok := newProcessor(site).StreamVotes(context.Background())
	require.True(t, ok)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.False(t, stream.Next(ctx))
	require.Zero(t, site.Hits("/Detalhe/1"))
}
