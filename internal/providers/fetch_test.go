package providers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/janekbaraniewski/usagectl/internal/config"
	"github.com/janekbaraniewski/usagectl/internal/core"
)

func testFetcher() *Fetcher {
	return NewFetcher(noop.NewTracerProvider().Tracer("test"))
}

func testSpec(t *testing.T, handler http.HandlerFunc) (Spec, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	spec := Codex()
	t.Setenv("CHATGPT_BASE_URL", srv.URL)
	return spec, srv.Close
}

func TestFetchSuccessEchoesRawJSON(t *testing.T) {
	var gotAuth, gotAccount, gotAgent string
	spec, done := testSpec(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccount = r.Header.Get("ChatGPT-Account-Id")
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rate_limit":{"primary_window":{"used_percent":12}}}`))
	})
	defer done()

	raw, err := testFetcher().Fetch(context.Background(), spec, config.Credential{Token: "tok", AccountID: "acct-1"})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	if string(raw) != `{"rate_limit":{"primary_window":{"used_percent":12}}}` {
		t.Errorf("raw = %s, want unmodified body", raw)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotAccount != "acct-1" {
		t.Errorf("ChatGPT-Account-Id = %q", gotAccount)
	}
	if gotAgent != UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, UserAgent)
	}
}

func TestFetchNon2xxCarriesStatusAndBody(t *testing.T) {
	spec, done := testSpec(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	})
	defer done()

	_, err := testFetcher().Fetch(context.Background(), spec, config.Credential{Token: "tok"})
	var cerr *core.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("want *core.Error, got %v", err)
	}
	if cerr.Class != core.FailUpstream {
		t.Errorf("class = %v, want upstream", cerr.Class)
	}
	if cerr.Msg != "HTTP 401" {
		t.Errorf("msg = %q, want HTTP 401", cerr.Msg)
	}
	if cerr.Body != `{"detail":"token expired"}` {
		t.Errorf("body = %q, want verbatim response body", cerr.Body)
	}
}

func TestFetchUnparseableBodyIsDecodeFailure(t *testing.T) {
	spec, done := testSpec(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})
	defer done()

	_, err := testFetcher().Fetch(context.Background(), spec, config.Credential{Token: "tok"})
	var cerr *core.Error
	if !errors.As(err, &cerr) || cerr.Class != core.FailDecode {
		t.Fatalf("want decode failure, got %v", err)
	}
	if cerr.Body != "" {
		t.Errorf("decode failure should not echo the body, got %q", cerr.Body)
	}
}

func TestFetchTransportFailure(t *testing.T) {
	spec, done := testSpec(t, func(w http.ResponseWriter, _ *http.Request) {})
	done() // close immediately to force a connection error

	_, err := testFetcher().Fetch(context.Background(), spec, config.Credential{Token: "tok"})
	var cerr *core.Error
	if !errors.As(err, &cerr) || cerr.Class != core.FailTransport {
		t.Fatalf("want transport failure, got %v", err)
	}
}

func TestFetchClaudeBetaHeader(t *testing.T) {
	var gotBeta string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBeta = r.Header.Get("anthropic-beta")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()
	t.Setenv("ANTHROPIC_BASE_URL", srv.URL)

	if _, err := testFetcher().Fetch(context.Background(), Claude(), config.Credential{Token: "tok"}); err != nil {
		t.Fatal(err)
	}
	if gotBeta != "oauth-2025-04-20" {
		t.Errorf("anthropic-beta = %q", gotBeta)
	}
}
