package fetch

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "test-agent" {
			t.Errorf("User-Agent = %q, want test-agent", ua)
		}
		w.Write([]byte("<html>roster</html>")) // nolint:errcheck
	}))
	defer server.Close()

	f := New(5*time.Second, "test-agent")
	doc, err := f.Get(server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if string(doc.Body) != "<html>roster</html>" {
		t.Errorf("Body = %q", doc.Body)
	}
	if doc.Status != http.StatusOK {
		t.Errorf("Status = %d, want 200", doc.Status)
	}
	if doc.URL != server.URL {
		t.Errorf("URL = %q, want %q", doc.URL, server.URL)
	}
	if doc.FetchedAt.IsZero() {
		t.Error("FetchedAt not set")
	}
}

func TestGet_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok")) // nolint:errcheck
	}))
	defer server.Close()

	f := New(5*time.Second, "test-agent")
	f.baseDelay = time.Millisecond
	doc, err := f.Get(server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v, want success on third attempt", err)
	}
	if string(doc.Body) != "ok" {
		t.Errorf("Body = %q, want ok", doc.Body)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server calls = %d, want 3", got)
	}
}

func TestGet_Exhausted(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := New(5*time.Second, "test-agent")
	f.baseDelay = time.Millisecond
	_, err := f.Get(server.URL)
	if err == nil {
		t.Fatal("Get() expected error after exhausting retries")
	}
	if !errors.Is(err, ErrExhausted) {
		t.Errorf("error = %v, want ErrExhausted", err)
	}
	if got := atomic.LoadInt32(&calls); got != MaxAttempts {
		t.Errorf("server calls = %d, want %d", got, MaxAttempts)
	}
}

func TestSetHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := r.Header.Get("Cookie"); c != "session=abc" {
			t.Errorf("Cookie = %q, want session=abc", c)
		}
		w.Write([]byte("ok")) // nolint:errcheck
	}))
	defer server.Close()

	f := New(5*time.Second, "test-agent")
	f.SetHeader("Cookie", "session=abc")
	if _, err := f.Get(server.URL); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}
