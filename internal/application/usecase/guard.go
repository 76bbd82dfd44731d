package usecase

import (
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Guard es el único punto por el que los casos de uso consultan la compuerta de acceso.
// Notifica cada decisión al observer (si hay) sin alterarla.
type Guard struct {
	gate     *access.Gate
	observer DecisionObserver
}

// NewGuard construye el guard. observer puede ser nil.
func NewGuard(gate *access.Gate, observer DecisionObserver) *Guard {
	if gate == nil {
		gate = access.NewGate()
	}
	return &Guard{gate: gate, observer: observer}
}

// Authorize delega en access.Gate.
func (g *Guard) Authorize(actor *entity.User, req access.Request) (access.Decision, error) {
	d, err := g.gate.Authorize(actor, req)
	if g.observer != nil {
		code := ""
		if ae, ok := access.AsError(err); ok {
			code = ae.Code
		}
		g.observer.ObserveDecision(req.Resource, req.Action, code)
	}
	return d, err
}
