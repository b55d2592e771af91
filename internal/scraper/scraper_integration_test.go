package scraper

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/logger"
	"github.com/pfrederiksen/cbb-gamelogs/internal/metrics"
	"github.com/pfrederiksen/cbb-gamelogs/internal/names"
)

func brotliBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// dukeSite serves duke's 2019 pages: the basic log gzip encoded, the advanced
// log brotli encoded. Every other page is a 404.
func dukeSite(t *testing.T, hits *atomic.Int32) *httptest.Server {
	basic := gzipBytes(t, loadFixture(t, "duke_2019_gamelogs.html"))
	advanced := brotliBytes(t, loadFixture(t, "duke_2019_gamelogs_advanced.html"))

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		assert.True(t, strings.Contains(r.Header.Get("Accept-Encoding"), "br"))

		switch r.URL.Path {
		case "/schools/duke/men/2019-gamelogs.html":
			w.Header().Set("Content-Encoding", "gzip")
			_, _ = w.Write(basic)
		case "/schools/duke/men/2019-gamelogs-advanced.html":
			w.Header().Set("Content-Encoding", "br")
			_, _ = w.Write(advanced)
		default:
			http.NotFound(w, r)
		}
	}))
}

func testScraper(url string, opts ...Option) *Scraper {
	cfg := DefaultConfig()
	cfg.BaseURL = url
	cfg.RequestInterval = 0
	cfg.RetryInterval = time.Millisecond
	opts = append([]Option{WithLogger(logger.NewNop()), WithMetrics(metrics.New())}, opts...)
	return New(cfg, opts...)
}

func TestFetchTeamSeason(t *testing.T) {
	var hits atomic.Int32
	srv := dukeSite(t, &hits)
	defer srv.Close()

	s := testScraper(srv.URL)
	records, err := s.FetchTeamSeason(context.Background(), "Duke", 2019)
	require.NoError(t, err)

	// Bethel (TN) is not a D1 program and is dropped.
	require.Len(t, records, 3)
	assert.Equal(t, int32(2), hits.Load())

	first := records[0]
	assert.EqualValues(t, "duke", first.Team)
	assert.EqualValues(t, "kentucky", first.Opponent)
	assert.Equal(t, gamelog.Neutral, first.Venue)
	assert.True(t, first.TeamWon)
	assert.Equal(t, 202.0, first.TotalScore())
	assert.Equal(t, 0.536, first.Stats["FG%"], "basic table wins on shared columns")
	assert.Equal(t, 0.411, first.Stats["opp_fg%"])
	assert.Equal(t, 140.1, first.Stats["ORtg"])
	assert.Equal(t, 0.445, first.Stats["opponent_efg%"])
	assert.Equal(t, 0.205, first.Stats["opponent_ft_per_fga"])
	assert.Equal(t, 0.25, first.Stats["FT/FGA"])

	army := records[1]
	assert.Equal(t, gamelog.Home, army.Venue)
	_, ok := army.Stat("PF")
	assert.False(t, ok)

	tech := records[2]
	assert.EqualValues(t, "texas-tech", tech.Opponent)
	assert.False(t, tech.TeamWon)
	_, ok = tech.Stat("opponent_ft_per_fga")
	assert.False(t, ok)
}

func TestFetchTeamSeason_Errors(t *testing.T) {
	var hits atomic.Int32
	srv := dukeSite(t, &hits)
	defer srv.Close()
	s := testScraper(srv.URL)
	ctx := context.Background()

	_, err := s.FetchTeamSeason(ctx, "Duke", 2010)
	assert.ErrorIs(t, err, gamelog.ErrUnsupportedSeason)
	_, err = s.FetchTeamSeason(ctx, "Duke", 2025)
	assert.ErrorIs(t, err, gamelog.ErrUnsupportedSeason)

	_, err = s.FetchTeamSeason(ctx, "Fictional University", 2019)
	assert.ErrorIs(t, err, names.ErrUnknownTeamName)
	assert.Equal(t, int32(0), hits.Load(), "nothing is fetched for invalid input")

	_, err = s.FetchTeamSeason(ctx, "Kentucky", 2019)
	assert.ErrorIs(t, err, gamelog.ErrNoDataForScope)
	assert.Equal(t, int32(1), hits.Load(), "404 is not retried")
}

func TestFetch_RetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch hits.Add(1) {
		case 1:
			w.WriteHeader(http.StatusBadGateway)
		case 2:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			_, _ = w.Write([]byte(`<table id="sgl-basic_NCAAM"><thead><tr><th>Date</th></tr></thead><tbody></tbody></table>`))
		}
	}))
	defer srv.Close()

	m := metrics.New()
	s := testScraper(srv.URL, WithMetrics(m))
	table, err := s.FetchBasic(context.Background(), "duke", 2019)
	require.NoError(t, err)
	assert.Equal(t, []string{"Date"}, table.Columns)
	assert.Equal(t, int32(3), hits.Load())
	assert.Equal(t, 2.0, m.GetSnapshot().Counters["scraper.retries"])
}

func TestFetch_GivesUp(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL
	cfg.RequestInterval = 0
	cfg.RetryInterval = time.Millisecond
	cfg.MaxRetries = 1
	cfg.BreakerFailures = 1
	s := New(cfg, WithLogger(logger.NewNop()), WithMetrics(metrics.New()))

	_, err := s.FetchBasic(context.Background(), "duke", 2019)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(2), hits.Load())

	// one failed fetch opens the breaker
	_, err = s.FetchBasic(context.Background(), "duke", 2019)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetch_Cache(t *testing.T) {
	var hits atomic.Int32
	srv := dukeSite(t, &hits)
	defer srv.Close()

	m := metrics.New()
	cache := NewPageCache(t.TempDir())
	s := testScraper(srv.URL, WithCache(cache), WithMetrics(m))

	for i := 0; i < 3; i++ {
		_, err := s.FetchBasic(context.Background(), "duke", 2019)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, cache.Size())

	snap := m.GetSnapshot()
	assert.Equal(t, 1.0, snap.Counters["scraper.pages_fetched"])
	assert.Equal(t, 2.0, snap.Counters["scraper.cache_hits"])
}

func TestFetchSeason(t *testing.T) {
	var hits atomic.Int32
	srv := dukeSite(t, &hits)
	defer srv.Close()

	s := testScraper(srv.URL)
	res, err := s.FetchSeason(context.Background(), 2019, []names.ID{"kentucky", "duke", "army"})
	require.NoError(t, err)

	assert.Len(t, res.Records, 3)
	assert.Equal(t, []names.ID{"kentucky", "army"}, res.Missing)

	_, err = s.FetchSeason(context.Background(), 2030, []names.ID{"duke"})
	assert.ErrorIs(t, err, gamelog.ErrUnsupportedSeason)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.FetchSeason(ctx, 2019, []names.ID{"duke"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetchSeason_StopsOnFetchFailure(t *testing.T) {
	basic := loadFixture(t, "duke_2019_gamelogs.html")
	advanced := loadFixture(t, "duke_2019_gamelogs_advanced.html")

	var hits, dukeHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/schools/duke/men/2019-gamelogs.html":
			dukeHits.Add(1)
			_, _ = w.Write(basic)
		case "/schools/duke/men/2019-gamelogs-advanced.html":
			dukeHits.Add(1)
			_, _ = w.Write(advanced)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	newScraper := func() *Scraper {
		cfg := DefaultConfig()
		cfg.BaseURL = srv.URL
		cfg.RequestInterval = 0
		cfg.MaxRetries = 0
		cfg.Workers = 1
		cfg.BreakerFailures = 2
		return New(cfg, WithLogger(logger.NewNop()), WithMetrics(metrics.New()))
	}
	teams := []names.ID{"army", "auburn", "baylor", "belmont", "bradley", "duke"}

	res, err := newScraper().FetchSeason(context.Background(), 2019, teams)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "scraping army")
	assert.NotErrorIs(t, err, gamelog.ErrNoDataForScope)
	assert.Equal(t, int32(1), hits.Load(), "the batch stops at the first failure")
	assert.Equal(t, int32(0), dukeHits.Load())

	// an open breaker fails the batch instead of marking teams missing
	s := newScraper()
	for i := 0; i < 2; i++ {
		_, err := s.FetchBasic(context.Background(), "army", 2019)
		require.Error(t, err)
	}
	hits.Store(0)
	res, err = s.FetchSeason(context.Background(), 2019, []names.ID{"duke"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Nil(t, res)
	assert.Equal(t, int32(0), hits.Load())
}
