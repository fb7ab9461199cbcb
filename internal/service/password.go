package service

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt hash with a per-record salt embedded in
// the output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// A nil or empty stored hash never matches; service accounts and
// OAuth-only accounts carry no password.
func VerifyPassword(password string, hashedPassword *string) bool {
	if hashedPassword == nil || *hashedPassword == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*hashedPassword), []byte(password)) == nil
}
