package util

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost 12 keeps a single login hash under ~300ms on current
// hardware.
const bcryptCost = 12

// HashPassword derives a bcrypt hash from the given password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether password matches the stored bcrypt hash.
func VerifyPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
