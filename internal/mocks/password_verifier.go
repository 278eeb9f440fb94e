package mocks

import "errors"

// MockPasswordVerifier implements auth.PasswordVerifier for testing. Most
// tests only need the ShouldSucceed switch; CompareFn overrides the whole
// comparison when a test cares about the inputs.
type MockPasswordVerifier struct {
	// ShouldSucceed makes every comparison pass (true) or fail (false).
	ShouldSucceed bool

	// CompareFn, when set, replaces the default behavior entirely.
	CompareFn func(hashedPassword, password string) error
}

// Compare implements the auth.PasswordVerifier interface.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
