package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret se devuelve si no hay secreto configurado.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Role y RestaurantCode son informativos: el middleware recarga el usuario en cada petición.
type Claims struct {
	jwt.RegisteredClaims
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	RestaurantID   string `json:"restaurant_id,omitempty"`
	RestaurantCode string `json:"restaurant_code,omitempty"`
}

// Issuer datos fijos para emitir tokens.
type Issuer struct {
	Secret     string
	Issuer     string
	ExpMinutes int
}

// Generate genera un token HS256 firmado con los claims dados. Completa Subject, fechas e Issuer.
func (is Issuer) Generate(c Claims) (string, error) {
	if is.Secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    is.Issuer,
		Subject:   c.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(is.ExpMinutes) * time.Minute)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(is.Secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func (is Issuer) Parse(tokenString string) (*Claims, error) {
	if is.Secret == "" {
		return nil, ErrEmptySecret
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if is.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(is.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(is.Secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
