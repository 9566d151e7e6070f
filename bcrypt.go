package todoapp

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNoEmptyString             = errors.New("password cannot be an empty string")
	ErrMismatchedHashAndPassword = errors.New("hash and password mismatch")
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(bytes), err
}

// ComparePasswordAndHash checks a plaintext password against its
// stored hash.
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}
