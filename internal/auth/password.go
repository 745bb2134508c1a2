package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost is applied when the configured cost falls outside
// bcrypt's supported range.
const DefaultBcryptCost = 12

// HashPassword hashes a plaintext credential with the given cost, clamped to
// bcrypt's supported range.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a credential against its stored hash.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
