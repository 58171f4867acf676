// Package jwt provides a small HMAC-SHA256 token service over golang-jwt.
//
// A [Service] is bound to one signing key and optionally stamps issuer and
// expiry claims on every token it generates:
//
//	svc, err := jwt.New(signingKey,
//		jwt.WithIssuer("products-api"),
//		jwt.WithTTL(15*time.Minute),
//	)
//
// Claims move through their JSON representation, so any struct with json tags
// can be signed and parsed back without implementing a claims interface:
//
//	type accessClaims struct {
//		jwt.StandardClaims
//		Role string `json:"role"`
//	}
//
//	token, err := svc.Generate(accessClaims{
//		StandardClaims: jwt.StandardClaims{Subject: userID},
//		Role:           "admin",
//	})
//
//	var claims accessClaims
//	if err := svc.Parse(token, &claims); err != nil {
//		// errors.Is against ErrExpiredToken / ErrInvalidSignature
//	}
package jwt
