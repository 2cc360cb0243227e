package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	TeamCodeLength   = 8
	teamCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateTeamCode returns a random upper-case base-36 code.
func GenerateTeamCode() (string, error) {
	max := big.NewInt(int64(len(teamCodeAlphabet)))
	var b strings.Builder
	b.Grow(TeamCodeLength)
	for i := 0; i < TeamCodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(teamCodeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

// NormalizeTeamCode trims and upper-cases a code typed by a user.
func NormalizeTeamCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidTeamCode reports whether code has the generated shape.
func ValidTeamCode(code string) bool {
	if len(code) != TeamCodeLength {
		return false
	}
	for _, r := range code {
		if !strings.ContainsRune(teamCodeAlphabet, r) {
			return false
		}
	}
	return true
}
