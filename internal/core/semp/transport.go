package semp

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Transport performs one HTTP exchange. *http.Client satisfies it; tests plug
// in a fake SEMP server instead.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

type transportOptions struct {
	tracing bool
	base    http.RoundTripper
}

type TransportOption func(*transportOptions)

// WithTracing wraps the round tripper with OpenTelemetry client spans.
func WithTracing(enabled bool) TransportOption {
	return func(o *transportOptions) {
		o.tracing = enabled
	}
}

// WithRoundTripper replaces http.DefaultTransport as the base round tripper.
func WithRoundTripper(rt http.RoundTripper) TransportOption {
	return func(o *transportOptions) {
		o.base = rt
	}
}

// NewHTTPTransport returns the production transport. Redirects are followed;
// per-request timeouts come from the request templates.
func NewHTTPTransport(opts ...TransportOption) *http.Client {
	o := transportOptions{base: http.DefaultTransport}
	for _, opt := range opts {
		opt(&o)
	}

	rt := o.base
	if o.tracing {
		rt = otelhttp.NewTransport(rt,
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				if op, ok := OperationFromContext(r.Context()); ok {
					return "semp." + string(op)
				}
				return "semp." + r.Method
			}),
		)
	}
	return &http.Client{Transport: rt}
}

// Recorder receives one observation per SEMP exchange. code is 0 when the
// exchange failed before a status was received.
type Recorder interface {
	RecordRequest(operation string, code int, elapsed time.Duration)
}

type instrumentedTransport struct {
	next     Transport
	recorder Recorder
}

// Instrument reports every exchange made through next to recorder.
func Instrument(next Transport, recorder Recorder) Transport {
	if recorder == nil {
		return next
	}
	return &instrumentedTransport{next: next, recorder: recorder}
}

func (t *instrumentedTransport) Do(req *http.Request) (*http.Response, error) {
	op, ok := OperationFromContext(req.Context())
	if !ok {
		op = "unknown"
	}
	start := time.Now()
	resp, err := t.next.Do(req)
	code := 0
	if err == nil {
		code = resp.StatusCode
	}
	t.recorder.RecordRequest(string(op), code, time.Since(start))
	return resp, err
}

// MaxResponseSize bounds how much of a SEMP reply body is read.
const MaxResponseSize = 8 << 20

// response is a fully read SEMP reply.
type response struct {
	StatusCode int
	Body       []byte
}

// exchange materialises tmpl, sends it once and reads the whole body. Transport
// and read errors become NetworkFailure; status handling is left to the caller.
func exchange(ctx context.Context, tr Transport, tmpl RequestTemplate) (*response, error) {
	req, cancel, err := tmpl.NewRequest(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()

	resp, err := tr.Do(req)
	if err != nil {
		return nil, &NetworkFailure{Operation: tmpl.Operation, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, &NetworkFailure{Operation: tmpl.Operation, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	if len(body) > MaxResponseSize {
		return nil, &NetworkFailure{Operation: tmpl.Operation, Err: ErrResponseTooLarge}
	}

	log.Debug().
		Str("operation", string(tmpl.Operation)).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("SEMP exchange completed")

	return &response{StatusCode: resp.StatusCode, Body: body}, nil
}
