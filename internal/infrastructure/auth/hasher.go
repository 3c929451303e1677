package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const dummyCredential = "labmanager-dummy-credential"

// BcryptPasswordHasher hashes and verifies credentials with bcrypt.
type BcryptPasswordHasher struct {
	cost     int
	generate func(password []byte, cost int) ([]byte, error)

	dummyMu   sync.Mutex
	dummyHash []byte
}

func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost, generate: bcrypt.GenerateFromPassword}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := h.generate([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to generate password hash: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		// Mismatch and malformed hash are reported the same way.
		return fmt.Errorf("password verification failed")
	}
	return nil
}

// VerifyDummy spends the same bcrypt work as Verify against a fixed hash.
// Callers use it when the account does not exist so both paths take equal time.
// The fixed hash is built on first use; a failed build is retried next time.
func (h *BcryptPasswordHasher) VerifyDummy(password string) error {
	hash, err := h.dummy()
	if err != nil {
		return err
	}
	_ = bcrypt.CompareHashAndPassword(hash, []byte(password))
	return nil
}

func (h *BcryptPasswordHasher) dummy() ([]byte, error) {
	h.dummyMu.Lock()
	defer h.dummyMu.Unlock()
	if h.dummyHash != nil {
		return h.dummyHash, nil
	}
	hash, err := h.generate([]byte(dummyCredential), h.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dummy hash: %w", err)
	}
	h.dummyHash = hash
	return hash, nil
}
