package dto

import "time"

// SetStockRequest body para PATCH /api/variants/:id/stock.
// Field: stockTokyo | stockOsaka (también tokyo | osaka). Value es obligatorio.
type SetStockRequest struct {
	Field           string `json:"field"`
	Value           *int   `json:"value"`
	ExpectedVersion *int64 `json:"expected_version,omitempty"`
}

// StockHistoryResponse un cambio de stock unido con su variante y producto.
type StockHistoryResponse struct {
	ID          string    `json:"id"`
	VariantID   string    `json:"variant_id"`
	Field       string    `json:"field"`
	OldValue    int       `json:"old_value"`
	NewValue    int       `json:"new_value"`
	ChangedBy   string    `json:"changed_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Color       string    `json:"color"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
}

// StockHistoryListResponse historial, más reciente primero.
type StockHistoryListResponse struct {
	Items []StockHistoryResponse `json:"items"`
	Limit int                    `json:"limit"`
}

// LowStockItemResponse variante por debajo de su mínimo con la cantidad sugerida de reposición.
type LowStockItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   string `json:"variant_id"`
	Color       string `json:"color"`
	StockTokyo  int    `json:"stock_tokyo"`
	StockOsaka  int    `json:"stock_osaka"`
	TotalStock  int    `json:"total_stock"`
	MinStock    int    `json:"min_stock"`
	Deficit     int    `json:"deficit"`  // MinStock - TotalStock
	Priority    int    `json:"priority"` // 1 = más urgente
}
