package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password at the configured bcrypt cost.
// Out-of-range costs are handled by bcrypt itself (it errors above the max
// and silently raises sub-minimum costs to the default).
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(hashed), err
}

// ComparePassword reports a mismatch as a non-nil error.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
