package scraper

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	"github.com/sony/gobreaker"

	"github.com/pfrederiksen/cbb-gamelogs/internal/gamelog"
	"github.com/pfrederiksen/cbb-gamelogs/internal/logger"
)

// maxRetryAfter caps how long a 429 response can park a worker.
const maxRetryAfter = time.Minute

// errStatus is a non-2xx response worth retrying.
type errStatus struct {
	url  string
	code int
}

func (e *errStatus) Error() string {
	return "GET " + e.url + ": unexpected status code " + strconv.Itoa(e.code)
}

// getPage returns the body of url, from the cache when a fresh copy exists.
func (s *Scraper) getPage(ctx context.Context, url string) ([]byte, error) {
	if s.cache != nil {
		if page, ok := s.cache.Get(url); ok {
			s.metrics.IncrCounter("scraper.cache_hits")
			s.log.Debug("Page cache hit", logger.Fields{"url": url})
			return page, nil
		}
	}

	start := time.Now()
	out, err := s.breaker.Execute(func() (interface{}, error) {
		return s.fetchWithRetry(ctx, url)
	})
	s.metrics.RecordTiming("scraper.fetch", time.Since(start))
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.metrics.IncrCounter("scraper.breaker_rejections")
		}
		return nil, errors.Wrapf(err, "fetching %s", url)
	}
	page := out.([]byte)
	s.metrics.IncrCounter("scraper.pages_fetched")

	if s.cache != nil {
		if err := s.cache.Set(url, page); err != nil {
			s.log.Warn("Failed to cache page", logger.Fields{"url": url, "error": err.Error()})
		}
	}
	return page, nil
}

// fetchWithRetry retries transport errors, 429 and 5xx responses with
// exponential backoff. 404 means the team has no page for the season and is
// not retried.
func (s *Scraper) fetchWithRetry(ctx context.Context, url string) ([]byte, error) {
	var page []byte
	op := func() error {
		if err := s.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}
		var err error
		page, err = s.fetch(ctx, url)
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.RetryInterval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, s.cfg.MaxRetries), ctx)

	notify := func(err error, wait time.Duration) {
		s.metrics.IncrCounter("scraper.retries")
		s.log.Warn("Retrying page fetch", logger.Fields{
			"url":   url,
			"wait":  wait.String(),
			"error": err.Error(),
		})
	}

	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, err
	}
	return page, nil
}

// fetch performs one GET and decodes the body.
func (s *Scraper) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(errors.Wrap(err, "creating request"))
	}
	req.Header.Set("User-Agent", s.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	resp, err := s.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		return nil, errors.Wrap(err, "fetching page")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(errors.Wrapf(gamelog.ErrNoDataForScope, "GET %s: not found", url))
	case resp.StatusCode == http.StatusTooManyRequests:
		if wait := retryAfter(resp.Header.Get("Retry-After")); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, backoff.Permanent(ctx.Err())
			}
		}
		return nil, &errStatus{url: url, code: resp.StatusCode}
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, &errStatus{url: url, code: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(&errStatus{url: url, code: resp.StatusCode})
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	defer body.Close()

	page, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrap(err, "reading body")
	}
	return page, nil
}

// decodeBody unwraps the Content-Encoding the server chose. The transport does
// not do it because Accept-Encoding is set by hand.
func decodeBody(resp *http.Response) (io.ReadCloser, error) {
	switch enc := resp.Header.Get("Content-Encoding"); enc {
	case "", "identity":
		return io.NopCloser(resp.Body), nil
	case "gzip":
		r, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, errors.Wrap(err, "creating gzip reader")
		}
		return r, nil
	case "deflate":
		return flate.NewReader(resp.Body), nil
	case "br":
		return io.NopCloser(brotli.NewReader(resp.Body)), nil
	default:
		return nil, errors.Newf("unsupported content encoding %q", enc)
	}
}

// retryAfter reads a Retry-After header given in seconds or as an HTTP date.
func retryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	var wait time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		wait = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(v); err == nil {
		wait = time.Until(t)
	}
	if wait < 0 {
		return 0
	}
	if wait > maxRetryAfter {
		return maxRetryAfter
	}
	return wait
}
