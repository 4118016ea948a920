package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrStorage      = errors.New("error de almacenamiento")
)

// Invalid devuelve un error de validación con detalle; errors.Is(err, ErrInvalidInput) sigue siendo true.
func Invalid(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, detail)
}

// IsDomainError indica si err ya es uno de los errores de dominio conocidos.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUserNotFound, ErrInvalidInput, ErrDuplicate,
		ErrUnauthorized, ErrForbidden, ErrConflict, ErrStorage,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// StorageError envuelve un fallo de infraestructura como ErrStorage conservando la causa.
// Los errores de dominio se devuelven sin cambios.
func StorageError(err error) error {
	if err == nil || IsDomainError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
