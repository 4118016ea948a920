package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/zaiko-api/internal/application/dto"
	"github.com/jhoicas/zaiko-api/internal/domain"
	"github.com/jhoicas/zaiko-api/internal/domain/entity"
	"github.com/jhoicas/zaiko-api/internal/domain/repository"
	"github.com/jhoicas/zaiko-api/pkg/jwt"
)

var compareHash = bcrypt.CompareHashAndPassword

// dummyHash se compara cuando el usuario no existe: el login tarda lo mismo exista o no.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("zaiko-login-dummy"), bcrypt.DefaultCost)
	return h
})

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login y alta de usuarios (seed).
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// EnsureUser crea o actualiza un usuario con password hasheado con bcrypt.
// Rol vacío = guest.
func (uc *AuthUseCase) EnsureUser(ctx context.Context, username, password, role string) (*dto.UserResponse, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.Invalid("username y password son requeridos")
	}
	if role == "" {
		role = entity.RoleGuest
	}
	if role != entity.RoleAdmin && role != entity.RoleGuest {
		return nil, domain.Invalid("rol inválido: " + role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Upsert(ctx, user); err != nil {
		return nil, domain.StorageError(err)
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT con el rol y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, domain.StorageError(err)
	}
	if user == nil {
		_ = compareHash(dummyHash(), []byte(in.Password))
		return nil, domain.ErrUserNotFound
	}
	if err := compareHash([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
