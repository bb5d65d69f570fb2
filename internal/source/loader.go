// Package source loads raw CSV text from a configured location, either a
// local file path or an HTTP(S) URL. The loader only produces text; parsing
// belongs to the engine package.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// utf8BOM is commonly prepended by Windows tools and must not leak into
// the first header name.
const utf8BOM = "\xef\xbb\xbf"

// LoadError indicates the data source could not be retrieved. It is a
// single terminal error for that load attempt; there is no automatic retry.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Result is the outcome of one successful load.
type Result struct {
	Text        string
	Fingerprint string // xxhash of the raw text, hex encoded
	LoadedAt    time.Time
}

// Loader fetches CSV text from one fixed location. Concurrent Load calls
// collapse into a single outstanding fetch; callers share its result.
type Loader struct {
	location string
	client   *http.Client
	group    singleflight.Group
}

// NewLoader creates a loader for the given location. fetchTimeout bounds
// HTTP fetches; file reads ignore it.
func NewLoader(location string, fetchTimeout time.Duration) *Loader {
	return &Loader{
		location: location,
		client:   &http.Client{Timeout: fetchTimeout},
	}
}

// Location returns the configured source location.
func (l *Loader) Location() string {
	return l.location
}

// Load retrieves the raw text. URLs are fetched over HTTP, anything else
// is read as a file path. A failed attempt surfaces as a *LoadError.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	// The flight is shared by every concurrent caller, so it must not die
	// with whichever request happened to start it. The client timeout
	// still bounds the fetch.
	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := l.group.Do("load", func() (interface{}, error) {
		return l.load(flightCtx)
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (l *Loader) load(ctx context.Context) (Result, error) {
	var (
		text string
		err  error
	)
	if isURL(l.location) {
		text, err = l.fetch(ctx)
	} else {
		text, err = l.readFile()
	}
	if err != nil {
		return Result{}, &LoadError{Source: l.location, Err: err}
	}

	text = strings.TrimPrefix(text, utf8BOM)
	return Result{
		Text:        text,
		Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64String(text)),
		LoadedAt:    time.Now(),
	}, nil
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.location, nil)
	if err != nil {
		return "", err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func (l *Loader) readFile() (string, error) {
	data, err := os.ReadFile(l.location)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func isURL(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}
