package strapi

import (
	"bytes"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// Clock abstracts time for deterministic transport tests.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// TransportOptions configures the retrying transport.
type TransportOptions struct {
	RetryMax    int
	BackoffBase time.Duration
	BackoffCap  time.Duration
	Clock       Clock
	Metrics     *Metrics
}

// DefaultTransportOptions returns defaults suitable for a single admin
// session against one CMS instance.
func DefaultTransportOptions() TransportOptions {
	return TransportOptions{
		RetryMax:    3,
		BackoffBase: 300 * time.Millisecond,
		BackoffCap:  5 * time.Second,
	}
}

// transport retries 429 and 5xx responses with capped exponential backoff,
// honoring Retry-After when the server sends one, and feeds the metrics
// counters. GET bodies are nil so every attempt is safe to replay; write
// bodies are buffered once up front for the same reason.
type transport struct {
	next    http.RoundTripper
	opts    TransportOptions
	clock   Clock
	metrics *Metrics
}

func newTransport(next http.RoundTripper, opts TransportOptions) *transport {
	if next == nil {
		next = http.DefaultTransport
	}
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &transport{next: next, opts: opts, clock: clock, metrics: metrics}
}

func (t *transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		b, err := io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		body = b
	}

	var res *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
		t.metrics.IncRequest(req.Method)
		res, err = t.next.RoundTrip(req)

		retry := false
		var wait time.Duration
		if err != nil {
			retry = true
		} else {
			t.metrics.IncStatus(res.StatusCode)
			if res.StatusCode == http.StatusTooManyRequests || res.StatusCode >= 500 {
				retry = true
				wait = retryAfter(res)
			}
		}

		if !retry || attempt >= t.opts.RetryMax {
			return res, err
		}
		if req.Context().Err() != nil {
			return res, err
		}

		if res != nil {
			io.Copy(io.Discard, res.Body)
			res.Body.Close()
		}
		if wait <= 0 {
			wait = backoff(t.opts.BackoffBase, t.opts.BackoffCap, attempt)
		}
		t.metrics.IncRetry()
		t.clock.Sleep(wait)
	}
}

// retryAfter parses the Retry-After header as delay seconds.
func retryAfter(res *http.Response) time.Duration {
	v := res.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// backoff computes capped exponential backoff with +-25% jitter.
func backoff(base, cap time.Duration, attempt int) time.Duration {
	if base <= 0 {
		base = 300 * time.Millisecond
	}
	d := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if cap > 0 && d > cap {
		d = cap
	}
	jitter := 0.75 + rand.Float64()*0.5
	return time.Duration(float64(d) * jitter)
}
