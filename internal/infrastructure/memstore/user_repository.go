package memstore

import (
	"context"

	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria, indexados por ID.
type UserRepo struct {
	acc access
}

// Upsert crea el usuario o, si el username ya existe, actualiza hash y rol conservando el ID.
func (r *UserRepo) Upsert(_ context.Context, user *entity.User) error {
	return r.acc(func(st *state) error {
		for id, u := range st.users {
			if u.Username == user.Username {
				u.PasswordHash = user.PasswordHash
				u.Role = user.Role
				u.UpdatedAt = user.UpdatedAt
				st.users[id] = u
				*user = u
				return nil
			}
		}
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.acc(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.acc(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}
