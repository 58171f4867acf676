package jwt

import (
	"encoding/json"
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// minKeyLen is the minimum accepted signing key length in bytes.
// Shorter HMAC keys weaken the signature below the hash output size.
const minKeyLen = 32

// StandardClaims carries the registered JWT claim set. Embed it in a custom
// claims struct or use it directly with [Service.Generate] and [Service.Parse].
type StandardClaims struct {
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	ID        string `json:"jti,omitempty"`
}

// Service signs and verifies HMAC-SHA256 tokens with a shared key.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithIssuer stamps generated tokens with an iss claim unless the claims
// already carry one.
func WithIssuer(issuer string) Option {
	return func(s *Service) {
		s.issuer = issuer
	}
}

// WithTTL stamps generated tokens with an exp claim of now+ttl unless the
// claims already carry one.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// New creates a token service. The signing key must be at least 32 bytes.
func New(signingKey string, opts ...Option) (*Service, error) {
	if len(signingKey) < minKeyLen {
		return nil, ErrSigningKeyTooShort
	}

	s := &Service{signingKey: []byte(signingKey)}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate signs claims into a compact token string. The claims value is
// serialized through its JSON representation, so any struct with json tags
// works. An iat claim is always stamped; exp and iss are stamped when the
// service is configured with a TTL or issuer and the claims omit them.
func (s *Service) Generate(claims any) (string, error) {
	mc := jwtlib.MapClaims{}
	if claims != nil {
		raw, err := json.Marshal(claims)
		if err != nil {
			return "", errors.Join(ErrInvalidClaims, err)
		}
		if err := json.Unmarshal(raw, &mc); err != nil {
			return "", errors.Join(ErrInvalidClaims, err)
		}
	}

	now := time.Now()
	if _, ok := mc["iat"]; !ok {
		mc["iat"] = now.Unix()
	}
	if s.ttl > 0 {
		if _, ok := mc["exp"]; !ok {
			mc["exp"] = now.Add(s.ttl).Unix()
		}
	}
	if s.issuer != "" {
		if _, ok := mc["iss"]; !ok {
			mc["iss"] = s.issuer
		}
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, mc)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrInvalidToken, err)
	}
	return signed, nil
}

// Parse verifies a token and deserializes its claims into the given value,
// which must be a pointer. Expiry and not-before are validated when present.
// Failures map onto the package sentinels so callers can branch with errors.Is.
func (s *Service) Parse(token string, claims any) error {
	parsed, err := jwtlib.Parse(
		token,
		func(*jwtlib.Token) (any, error) { return s.signingKey, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwtlib.ErrTokenExpired):
			return errors.Join(ErrExpiredToken, err)
		case errors.Is(err, jwtlib.ErrTokenSignatureInvalid):
			return errors.Join(ErrInvalidSignature, err)
		default:
			return errors.Join(ErrInvalidToken, err)
		}
	}

	mc, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return ErrInvalidClaims
	}
	raw, err := json.Marshal(mc)
	if err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}
	if err := json.Unmarshal(raw, claims); err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}
	return nil
}
