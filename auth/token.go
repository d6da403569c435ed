package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opencatalog/excel-ingest/settings"
)

// Signer issues and verifies the API's HMAC access tokens using the
// configured secret, algorithm and lifetime.
type Signer struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	expiry time.Duration
}

// NewSigner builds a Signer from the API settings. The settings loader has
// already rejected non-HMAC algorithms.
func NewSigner(cfg *settings.API) (*Signer, error) {
	var method *jwt.SigningMethodHMAC
	switch cfg.JWTAlgorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &Signer{
		secret: []byte(cfg.JWTSecretKey),
		method: method,
		expiry: time.Duration(cfg.JWTAccessExpireMinutes) * time.Minute,
	}, nil
}

// Issue mints an access token for the subject.
func (s *Signer) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	}
	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Verify parses and validates a token, returning its subject. Only the
// configured algorithm is accepted.
func (s *Signer) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
