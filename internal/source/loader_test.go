package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path, time.Second)
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Text != "a,b\n1,2\n" {
		t.Errorf("Text = %q, want %q", res.Text, "a,b\n1,2\n")
	}
	if res.Fingerprint == "" {
		t.Error("Fingerprint is empty")
	}
}

func TestLoad_FileStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.csv")
	if err := os.WriteFile(path, []byte("\xef\xbb\xbfa,b\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path, time.Second)
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Text[0] != 'a' {
		t.Errorf("BOM not stripped, text starts with %q", res.Text[:3])
	}
}

func TestLoad_MissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "absent.csv"), time.Second)
	_, err := l.Load(context.Background())

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("h\nv\n"))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, time.Second)
	res, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Text != "h\nv\n" {
		t.Errorf("Text = %q, want %q", res.Text, "h\nv\n")
	}
}

func TestLoad_HTTPSurvivesCallerCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("h\nv\n"))
	}))
	defer srv.Close()

	// The fetch is shared across concurrent callers, so one caller's dead
	// context must not fail the flight for everyone.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	l := NewLoader(srv.URL, time.Second)
	res, err := l.Load(ctx)
	if err != nil {
		t.Fatalf("Load() with cancelled caller context error = %v", err)
	}
	if res.Text != "h\nv\n" {
		t.Errorf("Text = %q, want %q", res.Text, "h\nv\n")
	}
}

func TestLoad_HTTPNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(srv.URL, time.Second)
	_, err := l.Load(context.Background())

	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Load() error = %v, want *LoadError", err)
	}
	if le.Source != srv.URL {
		t.Errorf("LoadError.Source = %q, want %q", le.Source, srv.URL)
	}
}

func TestLoad_SameContentSameFingerprint(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.csv")
	p2 := filepath.Join(dir, "two.csv")
	for _, p := range []string{p1, p2} {
		if err := os.WriteFile(p, []byte("a\n1\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	r1, err := NewLoader(p1, time.Second).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	r2, err := NewLoader(p2, time.Second).Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if r1.Fingerprint != r2.Fingerprint {
		t.Errorf("fingerprints differ for identical content: %q vs %q", r1.Fingerprint, r2.Fingerprint)
	}
}
