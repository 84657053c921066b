package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const skillsPath = "/api/skills"

// DefaultTimeout bounds the single registry fetch per run.
const DefaultTimeout = 30 * time.Second

// Client fetches the skill list from the trust registry.
//
// It performs exactly one logical network call per run: no retries, no
// caching, no pagination. Redirects are followed by net/http's standard
// policy. Safe for concurrent use; identical in-flight fetches collapse
// into one request.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	group   singleflight.Group
}

type options struct {
	verbose bool
	// writer controls where verbose HTTP logs are written (typically stderr)
	// so structured output on stdout stays clean and tests can capture logs.
	writer io.Writer
}

type Option func(*options)

func WithVerbose(enabled bool, writer io.Writer) Option {
	return func(o *options) {
		o.verbose = enabled
		o.writer = writer
	}
}

// loggingRoundTripper wraps an underlying transport and emits one line per
// request and response (including latency) when verbose logging is enabled.
type loggingRoundTripper struct {
	base http.RoundTripper
	w    io.Writer
}

func (t *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	if t.w != nil {
		_, _ = fmt.Fprintf(t.w, "[verbose] registry api: %s %s\n", req.Method, req.URL.String())
	}
	resp, err := t.base.RoundTrip(req)
	dur := time.Since(start)
	if t.w != nil {
		if err != nil {
			_, _ = fmt.Fprintf(t.w, "[verbose] registry api: error after %s: %v\n", dur.Truncate(time.Millisecond), err)
		} else {
			_, _ = fmt.Fprintf(t.w, "[verbose] registry api: %d %s (%s)\n", resp.StatusCode, http.StatusText(resp.StatusCode), dur.Truncate(time.Millisecond))
		}
	}
	return resp, err
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("registry client: base URL required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	o := &options{}
	for _, apply := range opts {
		if apply != nil {
			apply(o)
		}
	}
	if o.verbose && o.writer == nil {
		o.writer = os.Stderr
	}

	transport := http.DefaultTransport
	if o.verbose {
		transport = &loggingRoundTripper{base: transport, w: o.writer}
	}

	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{Transport: transport},
	}, nil
}

// FetchSkills performs the run's single GET against <base>/api/skills and
// returns the normalized skill list.
//
// Failure modes map onto *Error:
//   - request-level failure (unreachable, timeout) wraps the transport error
//   - non-200 final status carries the status code and raw body
//   - a 200 with an unparseable body wraps the parse error
func (c *Client) FetchSkills(ctx context.Context) ([]Skill, error) {
	v, err, _ := c.group.Do(c.baseURL+skillsPath, func() (any, error) {
		return c.fetchSkills(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]Skill), nil
}

func (c *Client) fetchSkills(ctx context.Context) ([]Skill, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+skillsPath, nil)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || (ctx.Err() != nil && errors.Is(ctx.Err(), context.DeadlineExceeded)) {
			return nil, &Error{Err: fmt.Errorf("request timed out after %s", c.timeout)}
		}
		return nil, &Error{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	return normalizeEnvelope(body)
}
