package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	AdminSubject = "admin"
	issuer       = "showcase"
)

var ErrInvalidToken = errors.New("invalid admin session token")

// AdminClaims is the payload of the admin session cookie. GateID ties the session to the
// unlock gate of the visitor that entered the code.
type AdminClaims struct {
	GateID string `json:"gid,omitempty"`
	jwt.RegisteredClaims
}

func NewAdminToken(secret []byte, gateID string, now time.Time, ttl time.Duration) (string, time.Time, error) {
	exp := now.Add(ttl)
	claims := AdminClaims{
		GateID: gateID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   AdminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, exp, nil
}

func AdminClaimsFromToken(tokenStr string, secret []byte) (*AdminClaims, error) {
	var claims AdminClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithSubject(AdminSubject))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}
