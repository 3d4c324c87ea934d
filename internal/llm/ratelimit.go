package llm

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited wraps a Client so that calls wait for a token before reaching the provider.
type RateLimited struct {
	Client
	limiter *rate.Limiter
}

// NewRateLimited allows rps calls per second with the given burst (minimum 1).
func NewRateLimited(client Client, rps float64, burst int) *RateLimited {
	if burst < 1 {
		burst = 1
	}
	return &RateLimited{
		Client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// GenerateContent waits for the limiter, then delegates.
func (r *RateLimited) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &TransportError{Message: "rate limiter", Cause: err}
	}
	return r.Client.GenerateContent(ctx, prompt, tier)
}
