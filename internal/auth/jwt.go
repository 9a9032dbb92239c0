package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "ministore"
	clockSkew   = 30 * time.Second
)

var ErrInvalidToken = errors.New("invalid token")

// TokenMaker issues and checks HS256 client tokens that expire after ttl.
type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{
		secret: []byte(secret),
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(tokenIssuer),
			jwt.WithExpirationRequired(),
			jwt.WithLeeway(clockSkew),
		),
	}
}

// Claims identify a client. The client id is also the token subject.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func (c Claims) ClientID() string { return c.Subject }

// Issue signs a token for the client and reports when it expires.
func (t *TokenMaker) Issue(clientID, name string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(t.ttl)

	claims := Claims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   clientID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return tok, exp, nil
}

// Parse returns the claims of a valid token. Every failure wraps
// ErrInvalidToken.
func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	var c Claims

	_, err := t.parser.ParseWithClaims(tokenStr, &c, func(*jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return Claims{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return c, nil
}
