// Package auth mints and verifies the tokens embedded in sign-in links.
package auth

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/joinflow/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// LinkClaims identifies the account a sign-in link was issued for and the
// already-encoded page to return to once it is followed.
type LinkClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Redirect string `json:"redirect,omitempty"`
}

func GenerateLinkToken(accountID, email, redirect string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, LinkClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email:    email,
		Redirect: redirect,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseLinkToken verifies tokenString. An expired token yields
// common.ErrTokenExpired, any other failure common.ErrInvalidToken.
func ParseLinkToken(tokenString string, secretKey []byte) (*LinkClaims, error) {
	claims := &LinkClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// BuildLink returns <baseURL>/signin/<token>, with ?next=<redirect> when a
// redirect is given. redirect is expected to be percent-encoded already.
func BuildLink(baseURL, token, redirect string) (string, error) {
	link, err := url.JoinPath(baseURL, "signin", token)
	if err != nil {
		return "", fmt.Errorf("build link: %w", err)
	}
	if redirect != "" {
		link += "?next=" + redirect
	}
	return link, nil
}
