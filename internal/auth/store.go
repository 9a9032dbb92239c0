package auth

import (
	"context"
	"errors"
)

var (
	ErrNameExists         = errors.New("name already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Account struct {
	ID   string
	Name string
	Hash []byte
}

type AccountStore interface {
	Create(ctx context.Context, name, password, id string) error
	Verify(ctx context.Context, name, password string) (Account, error)
}
