package catalog

import "errors"

var (
	ErrNotFound      = errors.New("catalog record not found")
	ErrAlreadyExists = errors.New("catalog record already exists")
	ErrRefNotFound   = errors.New("referenced catalog record not found")
	ErrInvalidSeed   = errors.New("invalid seed data")
)
