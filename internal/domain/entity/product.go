package entity

import "time"

// Product representa un artículo del catálogo; el stock vive en sus variantes (una por color).
type Product struct {
	ID        string
	Name      string
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
	Variants  []Variant // ordenadas por Position (orden de alta)
}
