package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

// GenerateVerificationCode generates a random 6-digit code
func GenerateVerificationCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// GenerateOrderNumber generates a short opaque order identifier,
// e.g. "PF-9f2c1a8e".
func GenerateOrderNumber() string {
	id := uuid.New().String()
	return "PF-" + strings.Split(id, "-")[0]
}
