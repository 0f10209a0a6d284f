package providers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/janekbaraniewski/usagectl/internal/config"
	"github.com/janekbaraniewski/usagectl/internal/core"
	"github.com/janekbaraniewski/usagectl/internal/version"
)

const requestTimeout = 30 * time.Second

// UserAgent is sent on every usage request.
var UserAgent = "usagectl/" + version.Version

// Fetcher issues the single usage GET for a provider and classifies the
// outcome. No retries, no caching.
type Fetcher struct {
	client *http.Client
	tracer trace.Tracer
}

func NewFetcher(tracer trace.Tracer) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: requestTimeout},
		tracer: tracer,
	}
}

// Fetch returns the raw provider JSON on a parseable 2xx. Non-2xx preserves
// the body verbatim; transport and decode failures carry the cause.
func (f *Fetcher) Fetch(ctx context.Context, spec Spec, cred config.Credential) (json.RawMessage, error) {
	url := spec.usageURL()
	ctx, span := f.tracer.Start(ctx, "usage.fetch",
		trace.WithAttributes(
			attribute.String("provider.id", spec.ID),
			attribute.String("http.url", url),
		))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.Transportf("building usage request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range spec.ExtraHeaders {
		req.Header.Set(k, v)
	}
	if spec.AccountIDHeader != "" && cred.AccountID != "" {
		req.Header.Set(spec.AccountIDHeader, cred.AccountID)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, core.Transportf("usage request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, core.Transportf("reading usage response: %v", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, core.Upstream(resp.StatusCode, string(body))
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, core.Decodef("decoding usage response: %v", err)
	}
	return raw, nil
}
