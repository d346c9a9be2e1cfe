package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syneepse/ResumeFix/internal/logger"
)

var ErrNoCredential = errors.New("no model credential configured")

// Client turns resume text into an Extracted record with one model call.
type Client struct {
	gen     Generator
	timeout time.Duration
	log     *logger.Logger
}

// NewClient accepts a nil generator; every call then fails with ErrNoCredential.
func NewClient(gen Generator, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{gen: gen, timeout: timeout, log: log.WithComponent("extraction")}
}

func (c *Client) Extract(ctx context.Context, resumeText string) (*Extracted, error) {
	if c.gen == nil {
		return nil, ErrNoCredential
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	raw, err := c.gen.Generate(ctx, BuildPrompt(resumeText))
	if err != nil {
		return nil, fmt.Errorf("model call failed: %w", err)
	}
	return Parse(raw)
}

// ExtractOrEmpty never fails: on any error it logs and returns an empty record with ok false.
func (c *Client) ExtractOrEmpty(ctx context.Context, resumeText string) (*Extracted, bool) {
	extracted, err := c.Extract(ctx, resumeText)
	if err != nil {
		event := c.log.Warn().Err(err)
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			event = event.Str("raw", parseErr.Raw)
		}
		event.Msg("AI extraction failed, continuing with empty fields")
		return &Extracted{}, false
	}
	return extracted, true
}
