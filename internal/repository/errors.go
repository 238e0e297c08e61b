package repository

import (
	"errors"

	"gorm.io/gorm"
)

// Error taxonomy shared by the whole backend. Handlers map these onto HTTP
// status codes; nothing below the façade ever talks in status codes.
var (
	ErrNotFound             = errors.New("not found")
	ErrMultipleResults      = errors.New("multiple results found")
	ErrDuplicateKey         = errors.New("duplicate key")
	ErrValidation           = errors.New("validation failed")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidToken         = errors.New("invalid token")
)

// translate rewrites store-level errors into the taxonomy above so callers
// never have to depend on gorm error values.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	}
	return err
}
