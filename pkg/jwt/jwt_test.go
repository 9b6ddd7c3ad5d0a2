package jwt_test

import (
	"testing"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assecol/seguros-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "asesor", "seguros-api", 5)
	require.NoError(t, err)

	claims, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "asesor", claims.Role)
	assert.Equal(t, "seguros-api", claims.Issuer)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "user-1", "admin", "seguros-api", 5)
	require.NoError(t, err)
	_, err = jwt.Parse("otro-secreto", token)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalido)
}

func TestParse_Expirado(t *testing.T) {
	vencido, err := jwt.Generate("secreto", "user-1", "admin", "seguros-api", -1)
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", vencido)
	assert.ErrorIs(t, err, jwt.ErrTokenExpirado)
}

func TestParse_AlgoritmoNoPermitido(t *testing.T) {
	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS512, jwt.Claims{UserID: "user-1", Role: "admin"})
	s, err := tok.SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, err = jwt.Parse("secreto", s)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalido)
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "admin", "x", 5)
	assert.Error(t, err)
	_, err = jwt.Parse("", "token")
	assert.Error(t, err)
}
