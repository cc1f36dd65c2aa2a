package security

import "golang.org/x/crypto/bcrypt"

// Credentials hashes passwords for storage and verifies login attempts.
// Handlers depend only on this interface, so swapping the demo
// implementation for a real one touches no handler logic.
type Credentials interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// DemoCredentials stores passwords verbatim and accepts any password on
// verify. This is the shipped default for demo deployments; it provides no
// security whatsoever.
type DemoCredentials struct{}

func (DemoCredentials) Hash(password string) (string, error) {
	return password, nil
}

func (DemoCredentials) Verify(string, string) bool {
	return true
}

// BcryptCredentials is the real verifier, selected with
// security.demo_auth: false.
type BcryptCredentials struct{}

func (BcryptCredentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptCredentials) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewCredentials selects the credential implementation for the given mode.
func NewCredentials(demo bool) Credentials {
	if demo {
		return DemoCredentials{}
	}
	return BcryptCredentials{}
}
