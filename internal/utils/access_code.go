package utils

import (
	"crypto/rand"
	"fmt"
)

const accessCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const accessCodeLength = 6

// GenerateAccessCode generates a short random code granting guest entry
// to a project. Ambiguous characters (0/O, 1/I) are excluded.
func GenerateAccessCode() (string, error) {
	bytes := make([]byte, accessCodeLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	code := make([]byte, accessCodeLength)
	for i, b := range bytes {
		code[i] = accessCodeAlphabet[int(b)%len(accessCodeAlphabet)]
	}

	return string(code), nil
}
