package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against a stored hash.
// Keeping it behind an interface lets handler tests skip real bcrypt work.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword and a
	// non-nil error otherwise, including on malformed hashes.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier is the production PasswordVerifier.
type BcryptVerifier struct{}

func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

func (v *BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
