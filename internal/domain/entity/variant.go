package entity

import (
	"strings"
	"time"
)

// StockField identifica la columna de stock por ubicación.
type StockField string

// Ubicaciones con stock propio.
const (
	FieldStockTokyo StockField = "stockTokyo"
	FieldStockOsaka StockField = "stockOsaka"
)

// ParseStockField acepta el nombre del campo (stockTokyo, stockOsaka) o la ubicación (tokyo, osaka).
func ParseStockField(s string) (StockField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stocktokyo", "tokyo":
		return FieldStockTokyo, true
	case "stockosaka", "osaka":
		return FieldStockOsaka, true
	}
	return "", false
}

// Variant es una opción de color de un producto con stock independiente en Tokio y Osaka.
// MinStock es el umbral de alerta; el total se deriva (ver domain/inventory).
type Variant struct {
	ID         string
	ProductID  string
	Color      string
	StockTokyo int
	StockOsaka int
	MinStock   int
	Position   int   // orden en que se agregó al producto
	Version    int64 // se incrementa con cada escritura de stock
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Stock devuelve la cantidad actual del campo indicado.
func (v Variant) Stock(field StockField) int {
	if field == FieldStockOsaka {
		return v.StockOsaka
	}
	return v.StockTokyo
}

// SetStock asigna la cantidad del campo indicado.
func (v *Variant) SetStock(field StockField, value int) {
	if field == FieldStockOsaka {
		v.StockOsaka = value
		return
	}
	v.StockTokyo = value
}
