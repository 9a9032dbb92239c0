package auth

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

type MemStore struct {
	mu     sync.RWMutex
	byName map[string]Account
}

func NewMemStore() *MemStore {
	return &MemStore{byName: make(map[string]Account)}
}

func NewStore() AccountStore {
	return NewMemStore()
}

func (s *MemStore) Create(ctx context.Context, name, password, id string) error {
	name = normalizeName(name)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byName[name]; ok {
		return ErrNameExists
	}

	s.byName[name] = Account{ID: id, Name: name, Hash: hash}
	return nil
}

func (s *MemStore) Verify(ctx context.Context, name, password string) (Account, error) {
	name = normalizeName(name)

	s.mu.RLock()
	a, ok := s.byName[name]
	s.mu.RUnlock()

	if !ok {
		return Account{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(a.Hash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}

	return a, nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
