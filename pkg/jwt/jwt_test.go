package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Restaurante-api/pkg/jwt"
)

func TestIssuer_GenerateParse(t *testing.T) {
	is := jwt.Issuer{Secret: "s3cr3t", Issuer: "restaurante-api", ExpMinutes: 5}
	token, err := is.Generate(jwt.Claims{UserID: "u1", Role: "admin", RestaurantID: "r1", RestaurantCode: "123456"})
	require.NoError(t, err)

	claims, err := is.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "r1", claims.RestaurantID)
	assert.Equal(t, "123456", claims.RestaurantCode)
}

func TestIssuer_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Issuer{Secret: "a", ExpMinutes: 5}.Generate(jwt.Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = jwt.Issuer{Secret: "b"}.Parse(token)
	assert.Error(t, err)
}

func TestIssuer_Expirado(t *testing.T) {
	is := jwt.Issuer{Secret: "a", ExpMinutes: -1}
	token, err := is.Generate(jwt.Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = is.Parse(token)
	assert.Error(t, err)
}

func TestIssuer_OtroEmisor(t *testing.T) {
	token, err := jwt.Issuer{Secret: "a", Issuer: "otro", ExpMinutes: 5}.Generate(jwt.Claims{UserID: "u1"})
	require.NoError(t, err)

	_, err = jwt.Issuer{Secret: "a", Issuer: "restaurante-api"}.Parse(token)
	assert.Error(t, err)
}

func TestIssuer_SecretVacio(t *testing.T) {
	_, err := jwt.Issuer{}.Generate(jwt.Claims{UserID: "u1"})
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
	_, err = jwt.Issuer{}.Parse("x.y.z")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
