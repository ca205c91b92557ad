package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cast"
)

// TokenInfo is what the dashboard can learn from an access token without
// holding the backend's signing key.
type TokenInfo struct {
	Subject   string    `json:"subject,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	IssuedAt  time.Time `json:"issuedAt,omitempty"`
}

// Expired reports whether the token is past its expiry at now. Tokens
// without an exp claim never expire here; the backend stays authoritative.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// ExpiresWithin reports whether the token expires inside d from now.
func (t TokenInfo) ExpiresWithin(now time.Time, d time.Duration) bool {
	return !t.ExpiresAt.IsZero() && now.Add(d).After(t.ExpiresAt)
}

// Inspect decodes the claims of a JWT without verifying its signature.
func Inspect(token string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("parse access token: %w", err)
	}

	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}

	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		info.Subject = sub
	} else {
		for _, key := range []string{"id", "_id", "userId"} {
			if v, ok := claims[key]; ok {
				info.Subject = cast.ToString(v)
				break
			}
		}
	}
	return info, nil
}
