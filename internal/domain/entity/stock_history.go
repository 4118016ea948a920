package entity

import "time"

// StockHistory registro inmutable de un cambio de stock (valor anterior y nuevo de un campo).
type StockHistory struct {
	ID        string
	VariantID string
	Field     StockField
	OldValue  int
	NewValue  int
	ChangedBy string // UserID del actor; vacío si no se conoce
	CreatedAt time.Time
}

// StockHistoryEntry historial unido con la variante y su producto, para mostrar.
type StockHistoryEntry struct {
	StockHistory
	Color       string
	ProductID   string
	ProductName string
}
