package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// MemberClaims identify a member of one group. Names are only unique within a
// group, so the team code is part of the identity.
type MemberClaims struct {
	TeamCode string `json:"team_code"`
	Member   string `json:"member"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed token for member of the group with teamCode.
func GenerateToken(secret, teamCode, member string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := MemberClaims{
		TeamCode: teamCode,
		Member:   member,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   teamCode + "/" + member,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(secret, tokenString string) (*MemberClaims, error) {
	claims := &MemberClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.TeamCode == "" || claims.Member == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
