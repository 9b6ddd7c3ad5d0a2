package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalido = errors.New("jwt: token inválido")
	ErrTokenExpirado = errors.New("jwt: token expirado")
	errSecretVacio   = errors.New("jwt: secret vacío")
)

// Claims del token de sesión. Role viaja en el token para que RequireRole decida sin ir a la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | asesor | cliente
}

// Generate firma un token HS256 para el usuario con vigencia de expMinutes.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", errSecretVacio
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

// Parse valida firma y vigencia. Un token vencido devuelve ErrTokenExpirado; cualquier otro
// problema, ErrTokenInvalido.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errSecretVacio
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpirado
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	case !token.Valid || claims.UserID == "":
		return nil, ErrTokenInvalido
	}
	return claims, nil
}
