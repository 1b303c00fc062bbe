package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRun_Counters(t *testing.T) {
	r := NewRun()
	r.VoteStreamed()
	r.VoteStreamed()
	r.ScrapeMiss()
	r.Notified(true)
	r.Notified(false)
	r.Notified(true)

	require.Equal(t, 2.0, testutil.ToFloat64(r.VotesStreamed))
	require.Equal(t, 1.0, testutil.ToFloat64(r.ScrapeMisses))
	require.Equal(t, 2.0, testutil.ToFloat64(r.Notifications.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.Notifications.WithLabelValues("failed")))
}

func TestRun_NilIsNoop(t *testing.T) {
	var r *Run
	require.NotPanics(t, func() {
		r.VoteStreamed()
		r.ScrapeMiss()
		r.Notified(true)
		require.NoError(t, r.Push(context.Background(), "http://unused"))
	})
}

func TestRun_PushToGateway(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewRun()
	r.VoteStreamed()
	require.NoError(t, r.Push(context.Background(), srv.URL))
	require.Equal(t, "/metrics/job/"+JobName, gotPath)
	require.NotEmpty(t, gotBody)
}

func TestRun_PushFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewRun()
	require.Error(t, r.Push(context.Background(), srv.URL))
}
