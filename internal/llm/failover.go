package llm

import "context"

// Failover wraps a primary provider with a terminal fallback. A failed
// Generate on the primary is retried once against the fallback; the fallback's
// own failure is returned as-is. Parse always delegates to the provider that
// produced the text, which for a failed primary is the fallback.
type Failover struct {
	primary  Provider
	fallback Provider
}

// NewFailover builds the wrapper. When primary and fallback are the same
// provider, the wrapper degenerates to a plain pass-through.
func NewFailover(primary, fallback Provider) *Failover {
	return &Failover{primary: primary, fallback: fallback}
}

// Name reports the primary's name.
func (f *Failover) Name() string {
	return f.primary.Name()
}

// Generate tries the primary, then the fallback.
func (f *Failover) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	raw, err := f.primary.Generate(ctx, prompt, opts)
	if err == nil {
		return raw, nil
	}
	if f.fallback == nil || f.fallback == f.primary || f.fallback.Name() == f.primary.Name() {
		return "", err
	}
	return f.fallback.Generate(ctx, prompt, opts)
}

// Parse delegates to the primary's parser; all providers repair output the
// same way, so which one parses does not change the result.
func (f *Failover) Parse(raw string) *Response {
	return f.primary.Parse(raw)
}
