package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/masterly/internal/catalog"
	"github.com/abhisek/masterly/internal/llm"
	"github.com/abhisek/masterly/internal/logging"
)

// Purpose labels drafting calls in the LLM request log.
const Purpose = "question-draft"

// Config tunes the Drafter.
type Config struct {
	// Validators run in order; the first failure rejects the draft.
	Validators []Validator

	MaxTokens   int
	Temperature float64

	// MaxExisting caps how many existing questions go into the prompt.
	MaxExisting int

	// MaxAttempts is how many drafts may be requested per call. Rejection
	// reasons are fed back into the next prompt.
	MaxAttempts int
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&RangeValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:   600,
		Temperature: 0.8,
		MaxExisting: 20,
		MaxAttempts: 3,
	}
}

// Drafter produces checked drafts from a provider.
type Drafter struct {
	provider llm.Provider
	cfg      Config
	log      *logging.Logger
}

// New returns a Drafter. log may be nil.
func New(p llm.Provider, cfg Config, log *logging.Logger) *Drafter {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Drafter{provider: p, cfg: cfg, log: log}
}

// Draft returns the first draft that passes every validator. Provider
// errors end the call at once. When every attempt is rejected the last
// *ValidationError is returned.
func (g *Drafter) Draft(ctx context.Context, in Input) (*Draft, error) {
	if strings.TrimSpace(in.Topic) == "" {
		return nil, errors.New("draft: topic is required")
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	var rejected []string
	var lastErr *ValidationError
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		d, err := g.once(ctx, in, rejected)
		if err != nil {
			return nil, err
		}
		verr := g.check(d, in)
		if verr == nil {
			g.log.Info("draft accepted", "topic", in.Topic, "attempt", attempt)
			return d, nil
		}
		g.log.Debug("draft rejected", "topic", in.Topic, "attempt", attempt, "validator", verr.Validator, "reason", verr.Message)
		lastErr = verr
		if !verr.Retryable {
			break
		}
		rejected = append(rejected, fmt.Sprintf("%q: %s", d.Text, verr.Message))
	}
	return nil, lastErr
}

func (g *Drafter) once(ctx context.Context, in Input, rejected []string) (*Draft, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserPrompt(buildUserMessage(in, g.cfg, rejected)),
		Schema:      Schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("draft: generate: %w", err)
	}

	var out output
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("draft: decode reply: %w", err)
	}
	correct, _ := catalog.ParseOption(out.Correct)
	return &Draft{
		Text: strings.TrimSpace(out.Question),
		Options: catalog.Choices{
			A: strings.TrimSpace(out.Options["A"]),
			B: strings.TrimSpace(out.Options["B"]),
			C: strings.TrimSpace(out.Options["C"]),
			D: strings.TrimSpace(out.Options["D"]),
		},
		Correct:    correct,
		Difficulty: out.Difficulty,
		Effort:     out.Effort,
		Rationale:  strings.TrimSpace(out.Rationale),
	}, nil
}

func (g *Drafter) check(d *Draft, in Input) *ValidationError {
	for _, v := range g.cfg.Validators {
		if verr := v.Validate(d, in); verr != nil {
			return verr
		}
	}
	return nil
}
