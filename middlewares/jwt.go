package middlewares

import (
	"errors"

	"github.com/dmitrymomot/anvil/internal"
	"github.com/dmitrymomot/anvil/pkg/jwt"
)

// JWTConfig configures the JWT middleware.
type JWTConfig struct {
	extractor *internal.Extractor
}

// JWTOption configures JWTConfig.
type JWTOption func(*JWTConfig)

// WithJWTExtractor replaces the default bearer-header lookup with a custom
// source chain, e.g. a cookie or query parameter fallback.
func WithJWTExtractor(ext internal.Extractor) JWTOption {
	return func(cfg *JWTConfig) {
		cfg.extractor = &ext
	}
}

// JWT returns middleware that pulls a token from the request, verifies it
// against svc, and stores the parsed claims of type T for the handler.
// Requests without a token or with one that fails verification are rejected
// with 401 before the handler runs.
func JWT[T any](svc *jwt.Service, opts ...JWTOption) internal.Middleware {
	cfg := &JWTConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	// Bearer tokens from the Authorization header unless overridden.
	ext := internal.NewExtractor(internal.FromBearerToken())
	if cfg.extractor != nil {
		ext = *cfg.extractor
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			token, ok := ext.Extract(c)
			if !ok {
				return internal.ErrUnauthorized("missing authentication token")
			}

			var claims T
			if err := svc.Parse(token, &claims); err != nil {
				// Expiry gets its own message so clients know to refresh;
				// every other failure stays indistinguishable.
				if errors.Is(err, jwt.ErrExpiredToken) {
					return internal.ErrUnauthorized("token expired", internal.WithError(err))
				}
				return internal.ErrUnauthorized("invalid token", internal.WithError(err))
			}

			c.Set(internal.JWTClaimsKey{}, &claims)

			return next(c)
		}
	}
}

// GetJWTClaims returns the claims parsed by JWT for this request, or nil when
// the middleware did not run or T differs from its claims type.
func GetJWTClaims[T any](c internal.Context) *T {
	claims, _ := c.Get(internal.JWTClaimsKey{}).(*T)
	return claims
}
