package auth

import "github.com/kinolab/cinema-api/internal/config"

// testAuthConfig returns an AuthConfig suitable for constructing services in
// tests. The bcrypt cost is the minimum to keep hashing fast.
func testAuthConfig(secret string) config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:                   secret,
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
		BcryptCost:                  4,
	}
}
