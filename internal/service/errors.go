package service

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the services. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrMissingRequiredField = errors.New("email y password son requeridos")
	ErrMissingCategoryName  = errors.New("name es requerido")
	ErrMissingFile          = errors.New("falta el archivo")
	ErrInvalidCategoryID    = errors.New("category_id debe ser un número")
	ErrCategoryNotFound     = errors.New("category_id no existe")
	ErrDuplicateEmail       = errors.New("el email ya está registrado")
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrFileNotFound         = errors.New("archivo no existe")
	ErrEmptyQuery           = errors.New("q es requerido")
	ErrPersistence          = errors.New("persistence failure")
)

// persistenceErr tags a store failure so callers can tell it from validation errors.
func persistenceErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
