package jwt

import "errors"

var (
	// ErrSigningKeyTooShort is returned by New when the key has fewer than 32 bytes.
	ErrSigningKeyTooShort = errors.New("jwt: signing key must be at least 32 bytes")

	// ErrInvalidToken is returned when a token cannot be parsed or fails validation
	// for a reason other than expiry or a bad signature.
	ErrInvalidToken = errors.New("jwt: invalid token")

	// ErrExpiredToken is returned when the token's exp claim is in the past.
	ErrExpiredToken = errors.New("jwt: token expired")

	// ErrInvalidSignature is returned when the token signature does not verify.
	ErrInvalidSignature = errors.New("jwt: invalid signature")

	// ErrInvalidClaims is returned when claims cannot be serialized into or out
	// of a token.
	ErrInvalidClaims = errors.New("jwt: invalid claims")
)
