package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is lowered in tests
var bcryptCost = bcrypt.DefaultCost

// HashPassword returns the bcrypt hash of a plain password
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash
func CheckPassword(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
