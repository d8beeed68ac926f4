package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinBcryptCost     = 10
	MaxBcryptCost     = 14
	DefaultBcryptCost = 12
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

type BcryptHasher struct {
	cost int
}

var _ PasswordHasher = (*BcryptHasher)(nil)

// NewBcryptHasher clamps cost into [MinBcryptCost, MaxBcryptCost]
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrHashFailed().WithDetail("reason", "empty password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrHashFailed().WithDetail("reason", "password longer than 72 bytes")
		}
		return "", ErrRegistry.NewWithCause(CodeHashFailed, err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
