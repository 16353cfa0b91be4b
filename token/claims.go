package token

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// NowTimeFunc returns the current time. Tests override it to pin expiry
// checks to a fixed clock.
var NowTimeFunc = time.Now

// Claims holds the subset of bearer-token claims the client consumes. The
// token is never verified here; signature validation is the server's job and
// the client only needs exp and the user identity.
type Claims struct {
	Exp    int64  // Expiration, epoch seconds
	Sub    string // Subject
	UserID int64  // user_id claim, falling back to a numeric sub
}

// Decode parses the compact JWT without verifying its signature and extracts
// the claims the client cares about. A malformed token is an error.
func Decode(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.New("empty token")
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims")
	}

	exp, _ := claims["exp"].(float64)
	sub, _ := claims["sub"].(string)

	c := &Claims{Exp: int64(exp), Sub: sub}

	switch v := claims["user_id"].(type) {
	case float64:
		c.UserID = int64(v)
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.UserID = id
		}
	}
	if c.UserID == 0 && sub != "" {
		if id, err := strconv.ParseInt(sub, 10, 64); err == nil {
			c.UserID = id
		}
	}

	return c, nil
}

// Expired reports whether the claims are past their expiration. A missing
// exp claim counts as expired.
func (c *Claims) Expired() bool {
	if c.Exp == 0 {
		return true
	}
	return NowTimeFunc().Unix() > c.Exp
}

// Expired reports whether raw is expired. Tokens that cannot be decoded are
// treated as expired (fail-closed).
func Expired(raw string) bool {
	claims, err := Decode(raw)
	if err != nil {
		return true
	}
	return claims.Expired()
}
