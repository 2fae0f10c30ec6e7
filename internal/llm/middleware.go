package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"

	"github.com/abhisek/masterly/internal/logging"
	"github.com/abhisek/masterly/internal/store"
)

type purposeKey struct{}

// WithPurpose labels the calls made under ctx, e.g. "question-draft".
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}

// Recorder persists one row per provider call.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

type recordingProvider struct {
	inner Provider
	rec   Recorder
	log   *logging.Logger
	now   func() time.Time
}

// WithRecording stores every call made through p in rec and logs its
// outcome. Recording failures are logged and otherwise ignored.
func WithRecording(p Provider, rec Recorder, log *logging.Logger) Provider {
	if log == nil {
		log = logging.Nop()
	}
	return &recordingProvider{inner: p, rec: rec, log: log, now: time.Now}
}

func (r *recordingProvider) Name() string    { return r.inner.Name() }
func (r *recordingProvider) ModelID() string { return r.inner.ModelID() }

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := r.now()
	resp, err := r.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:  r.inner.Name(),
		Model:     r.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: r.now().Sub(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
		r.log.Warn("llm request failed", "provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "error", err)
	} else {
		r.log.Info("llm request", "provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose,
			"input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens, "latency_ms", ev.LatencyMs)
	}

	if r.rec != nil {
		if recErr := r.rec.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
			r.log.Warn("record llm request", "error", recErr)
		}
	}
	return resp, err
}

type retryingProvider struct {
	inner Provider
	cfg   RetryConfig
	log   *logging.Logger
	sleep func(ctx context.Context, d time.Duration) error
}

// WithRetry retries rate limits and outages with exponential backoff and
// jitter. An invalid response is retried once. Everything else returns
// immediately.
func WithRetry(p Provider, cfg RetryConfig, log *logging.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logging.Nop()
	}
	return &retryingProvider{inner: p, cfg: cfg, log: log, sleep: sleepCtx}
}

func (r *retryingProvider) Name() string    { return r.inner.Name() }
func (r *retryingProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var err error
	invalidSeen := false
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var resp *Response
		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		switch classify(err) {
		case classFatal:
			return nil, err
		case classInvalid:
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		wait := r.backoff(attempt, err)
		r.log.Debug("llm retry", "attempt", attempt+1, "wait", wait, "error", err)
		if serr := r.sleep(ctx, wait); serr != nil {
			return nil, serr
		}
	}
	return nil, err
}

func (r *retryingProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}
	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	// +/-20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type timeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout bounds each Generate call. A zero timeout disables it.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 {
		return p
	}
	return &timeoutProvider{inner: p, timeout: d}
}

func (t *timeoutProvider) Name() string    { return t.inner.Name() }
func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
