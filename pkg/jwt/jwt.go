package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken envuelve cualquier fallo de validación del token.
var ErrInvalidToken = errors.New("jwt: token inválido")

const leeway = 30 * time.Second

// Claims del token de sesión.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | guest
}

var parser = jwt.NewParser(
	jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	jwt.WithExpirationRequired(),
	jwt.WithLeeway(leeway),
)

// Generate firma un token HS256 para userID con el rol indicado.
// expMinutes negativo produce un token ya vencido (útil en tests).
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errors.New("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y vencimiento y devuelve userID y role.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", errors.New("jwt: secret vacío")
	}
	var claims Claims
	_, err = parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.UserID == "" {
		return "", "", fmt.Errorf("%w: sin user_id", ErrInvalidToken)
	}
	return claims.UserID, claims.Role, nil
}
