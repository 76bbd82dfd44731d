package usecase

import (
	"context"
	"crypto/rand"
	"math/big"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// RestaurantTxRunner ejecuta fn dentro de una transacción, con repos atados a esa tx.
// Garantiza que un restaurante y su perfil se crean juntos o no se crea ninguno.
type RestaurantTxRunner interface {
	RunRestaurant(ctx context.Context, fn func(
		restaurants repository.RestaurantRepository,
		profiles repository.ProfileRepository,
	) error) error
}

// DecisionObserver recibe cada decisión de acceso (métricas). code vacío = permitido.
type DecisionObserver interface {
	ObserveDecision(resource access.Resource, action access.Action, code string)
}

// CodeGenerator genera códigos únicos de restaurante.
type CodeGenerator func() (string, error)

// RandomCode genera un código de entity.UniqueCodeLength dígitos decimales.
func RandomCode() (string, error) {
	buf := make([]byte, entity.UniqueCodeLength)
	ten := big.NewInt(10)
	for i := range buf {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buf[i] = byte('0' + n.Int64())
	}
	return string(buf), nil
}
