package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// stockColumn traduce el campo del dominio a la columna SQL. Nunca se interpola texto del cliente.
func stockColumn(field entity.StockField) (string, error) {
	switch field {
	case entity.FieldStockTokyo:
		return "stock_tokyo", nil
	case entity.FieldStockOsaka:
		return "stock_osaka", nil
	}
	return "", fmt.Errorf("campo de stock desconocido: %q", field)
}

// validID: un id que no es UUID equivale a "no existe".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
