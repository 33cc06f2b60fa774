// Package describe asks a text model for short prose about a colour.
package describe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-hclog"

	"github.com/figerout/figerout/internal/colour"
)

// ErrUnavailable is returned when no model is configured or every attempt
// to reach it failed.
var ErrUnavailable = errors.New("colour description unavailable")

// Mode selects the kind of text requested.
type Mode string

const (
	// ModeDescribe asks for a one-sentence description of the colour.
	ModeDescribe Mode = "describe"

	// ModeHistory asks for a short history of the colour's name.
	ModeHistory Mode = "history"
)

// ParseMode maps a user-supplied string to a Mode. Empty means ModeDescribe.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeDescribe:
		return ModeDescribe, nil
	case ModeHistory:
		return ModeHistory, nil
	default:
		return "", fmt.Errorf("unknown description mode %q (want %q or %q)", s, ModeDescribe, ModeHistory)
	}
}

// Request identifies the colour to describe.
type Request struct {
	Hex  string
	Name string
	Mode Mode
}

// Description is the text returned for a colour.
type Description struct {
	Hex   string `json:"hex"`
	Name  string `json:"name"`
	Mode  Mode   `json:"mode"`
	Text  string `json:"text"`
	Model string `json:"model"`
}

// Describer produces prose about a colour.
type Describer interface {
	Describe(ctx context.Context, req Request) (*Description, error)
}

// Generator sends a single prompt to a text model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
}

var prompts = func() *template.Template {
	t := template.New("prompts")
	template.Must(t.New(string(ModeDescribe)).Parse(
		`Describe the colour {{.Name}} ({{.Hex}}) in one evocative sentence of no more than 30 words. ` +
			`Mention where the colour is commonly seen. Reply with the sentence only.`))
	template.Must(t.New(string(ModeHistory)).Parse(
		`In two or three sentences, tell the history of the colour name "{{.Name}}" ({{.Hex}}): ` +
			`where the name comes from and when it came into use. Reply with the text only.`))
	return t
}()

// renderPrompt fills the template for req.Mode.
func renderPrompt(req Request) (string, error) {
	tmpl := prompts.Lookup(string(req.Mode))
	if tmpl == nil {
		return "", fmt.Errorf("unknown description mode %q", req.Mode)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", req.Mode, err)
	}
	return buf.String(), nil
}

// Options configures a Client.
type Options struct {
	// MaxRetries bounds the number of retries after the first attempt.
	MaxRetries uint64

	// NewBackOff returns the retry schedule. Nil means exponential backoff.
	NewBackOff func() backoff.BackOff

	Logger hclog.Logger
}

// DefaultMaxRetries is used when Options.MaxRetries is zero.
const DefaultMaxRetries = 3

// Client implements Describer on top of a Generator, retrying transient
// failures and caching results per mode and colour.
type Client struct {
	gen        Generator
	maxRetries uint64
	newBackOff func() backoff.BackOff
	logger     hclog.Logger

	mu    sync.Mutex
	cache map[cacheKey]*Description
}

type cacheKey struct {
	mode Mode
	hex  string
}

// NewClient wraps gen. A nil gen yields a Client whose every call returns
// ErrUnavailable, so callers do not need to special-case a missing API key.
func NewClient(gen Generator, opts Options) *Client {
	c := &Client{
		gen:        gen,
		maxRetries: opts.MaxRetries,
		newBackOff: opts.NewBackOff,
		logger:     opts.Logger,
		cache:      make(map[cacheKey]*Description),
	}
	if c.maxRetries == 0 {
		c.maxRetries = DefaultMaxRetries
	}
	if c.newBackOff == nil {
		c.newBackOff = func() backoff.BackOff { return backoff.NewExponentialBackOff() }
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}
	return c
}

// Describe returns the description for req, calling the model at most once
// per mode and colour for the lifetime of the Client.
func (c *Client) Describe(ctx context.Context, req Request) (*Description, error) {
	if c.gen == nil {
		return nil, fmt.Errorf("%w: no model configured (set GOOGLE_API_KEY)", ErrUnavailable)
	}

	hex, err := colour.NormaliseHex(req.Hex)
	if err != nil {
		return nil, err
	}
	req.Hex = hex
	if req.Mode == "" {
		req.Mode = ModeDescribe
	}
	if req.Name == "" {
		req.Name = colour.NameOrUnknown(hex)
	}

	key := cacheKey{mode: req.Mode, hex: hex}
	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		c.logger.Debug("description cache hit", "hex", hex, "mode", req.Mode)
		return cached, nil
	}

	prompt, err := renderPrompt(req)
	if err != nil {
		return nil, err
	}

	var text string
	attempt := 0
	op := func() error {
		attempt++
		out, err := c.gen.Generate(ctx, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		text = strings.TrimSpace(out)
		if text == "" {
			return errors.New("model returned no text")
		}
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("description attempt failed", "hex", hex, "attempt", attempt, "retry_in", wait, "error", err)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(c.newBackOff(), c.maxRetries), ctx)
	if err := backoff.RetryNotify(op, b, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %d attempts: %w", ErrUnavailable, attempt, err)
	}

	desc := &Description{
		Hex:   hex,
		Name:  req.Name,
		Mode:  req.Mode,
		Text:  text,
		Model: c.gen.Model(),
	}

	c.mu.Lock()
	c.cache[key] = desc
	c.mu.Unlock()

	c.logger.Debug("description generated", "hex", hex, "mode", req.Mode, "attempts", attempt)
	return desc, nil
}
