// Package memstore implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory y en los tests de los casos de uso y de HTTP.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/zaiko-api/internal/application/inventory"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type productRow struct {
	product entity.Product // sin Variants
	seq     int64
}

type state struct {
	products map[string]productRow
	variants map[string]entity.Variant
	history  []entity.StockHistory // en orden de inserción
	users    map[string]entity.User
	seq      int64
}

func newState() *state {
	return &state{
		products: make(map[string]productRow),
		variants: make(map[string]entity.Variant),
		users:    make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := &state{
		products: make(map[string]productRow, len(s.products)),
		variants: make(map[string]entity.Variant, len(s.variants)),
		history:  make([]entity.StockHistory, len(s.history)),
		users:    make(map[string]entity.User, len(s.users)),
		seq:      s.seq,
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.variants {
		c.variants[k] = v
	}
	copy(c.history, s.history)
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

// Store almacén en memoria. Las transacciones se serializan con un mutex: cada Run trabaja
// sobre una copia del estado y la publica solo si fn termina sin error.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{st: newState(), now: time.Now}
}

// access ejecuta fn sobre el estado que corresponda (global con lock, o la copia de una tx).
type access func(fn func(st *state) error) error

// direct opera sobre el estado publicado. Las escrituras fuera de tx también son atómicas.
func (s *Store) direct(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	if err := fn(work); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	historyRepo repository.StockHistoryRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	acc := func(f func(st *state) error) error { return f(work) }
	if err := fn(
		&ProductRepo{acc: acc},
		&VariantRepo{acc: acc, now: s.now},
		&StockHistoryRepo{acc: acc},
	); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Products devuelve el repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{acc: s.direct} }

// Variants devuelve el repositorio de variantes fuera de transacción.
func (s *Store) Variants() *VariantRepo { return &VariantRepo{acc: s.direct, now: s.now} }

// History devuelve el repositorio de historial fuera de transacción.
func (s *Store) History() *StockHistoryRepo { return &StockHistoryRepo{acc: s.direct} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{acc: s.direct} }
