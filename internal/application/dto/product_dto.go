package dto

import "time"

// VariantInput datos de una variante en alta o edición. ID vacío = variante nueva.
type VariantInput struct {
	ID         string `json:"id,omitempty"`
	Color      string `json:"color"`
	StockTokyo int    `json:"stock_tokyo"`
	StockOsaka int    `json:"stock_osaka"`
	MinStock   int    `json:"min_stock"`
}

// CreateProductRequest entrada para crear un producto con al menos una variante.
type CreateProductRequest struct {
	Name     string         `json:"name"`
	ImageURL *string        `json:"image_url,omitempty"`
	Variants []VariantInput `json:"variants"`
}

// UpdateProductRequest reemplaza nombre/imagen y reconcilia variantes (las omitidas se conservan).
type UpdateProductRequest struct {
	Name     string         `json:"name"`
	ImageURL *string        `json:"image_url,omitempty"`
	Variants []VariantInput `json:"variants"`
}

// VariantResponse salida de una variante con valores derivados.
type VariantResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Color      string    `json:"color"`
	StockTokyo int       `json:"stock_tokyo"`
	StockOsaka int       `json:"stock_osaka"`
	MinStock   int       `json:"min_stock"`
	TotalStock int       `json:"total_stock"`
	IsLowStock bool      `json:"is_low_stock"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProductResponse salida de un producto con sus variantes en orden de alta.
type ProductResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ImageURL  *string           `json:"image_url"`
	Variants  []VariantResponse `json:"variants"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ProductListResponse lista de productos (más nuevos primero).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}
