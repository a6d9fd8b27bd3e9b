package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the platform has always used for
// stored credentials. Raising it invalidates nothing but slows logins.
const bcryptCost = 10

// HashPassword hashes the plain text password using bcrypt with a fresh
// random salt. The same plaintext yields a different hash on every call.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// A malformed hash is reported as a mismatch, never as a panic or error.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
