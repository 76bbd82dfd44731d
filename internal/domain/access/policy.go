// Package access implementa el control de acceso por rol y restaurante:
// la tabla de permisos por rol, el alcance (scope) de registros visibles y
// la compuerta (Gate) que combina ambos en una única decisión.
//
// Todo el paquete es puro: no hace I/O ni guarda estado, y puede evaluarse
// concurrentemente sin sincronización.
package access

import (
	"slices"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// Action clase de acción sobre un recurso.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsWrite informa si la acción modifica datos.
func (a Action) IsWrite() bool { return a != ActionRead }

// Resource tipo de recurso protegido.
type Resource string

const (
	ResourceRestaurant Resource = "restaurant"
	ResourceUser       Resource = "user"
	ResourceProfile    Resource = "restaurant_profile"
	// ResourceCredential solo admite ActionUpdate (rotación de contraseña).
	ResourceCredential Resource = "credential"
)

// Resources devuelve todos los tipos de recurso.
func Resources() []Resource {
	return []Resource{ResourceRestaurant, ResourceUser, ResourceProfile, ResourceCredential}
}

// Actions devuelve todas las clases de acción.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// Reach alcance máximo de los registros sobre los que un rol puede actuar.
type Reach uint8

const (
	ReachNone   Reach = iota
	ReachSelf         // solo el propio usuario
	ReachTenant       // registros del propio restaurante
	ReachAll          // sin restricción
)

type rule struct {
	actions []Action
	reach   Reach
}

var crud = []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

var staffRules = map[Resource]rule{
	ResourceRestaurant: {actions: []Action{ActionRead}, reach: ReachTenant},
	ResourceUser:       {actions: []Action{ActionRead}, reach: ReachSelf},
	ResourceProfile:    {actions: []Action{ActionRead}, reach: ReachTenant},
	ResourceCredential: {actions: []Action{ActionUpdate}, reach: ReachSelf},
}

// policy es la tabla cerrada rol → recurso → (acciones, alcance).
// Un rol o recurso ausente no tiene permiso alguno.
var policy = map[entity.Role]map[Resource]rule{
	entity.RoleSuperAdmin: {
		ResourceRestaurant: {actions: crud, reach: ReachAll},
		ResourceUser:       {actions: crud, reach: ReachAll},
		ResourceProfile:    {actions: crud, reach: ReachAll},
		ResourceCredential: {actions: []Action{ActionUpdate}, reach: ReachAll},
	},
	entity.RoleAdmin: {
		ResourceRestaurant: {actions: []Action{ActionRead}, reach: ReachTenant},
		ResourceUser:       {actions: crud, reach: ReachTenant},
		ResourceProfile:    {actions: []Action{ActionRead, ActionUpdate}, reach: ReachTenant},
		ResourceCredential: {actions: []Action{ActionUpdate}, reach: ReachTenant},
	},
	entity.RoleCook:       staffRules,
	entity.RoleWaiter:     staffRules,
	entity.RoleAccountant: staffRules,
}

// Allowed informa si el rol puede intentar la acción sobre el tipo de recurso,
// sin mirar datos concretos.
func Allowed(role entity.Role, action Action, resource Resource) bool {
	r, ok := policy[role][resource]
	return ok && slices.Contains(r.actions, action)
}

// ReachOf devuelve el alcance del rol sobre el tipo de recurso (ReachNone si no tiene reglas).
func ReachOf(role entity.Role, resource Resource) Reach {
	r, ok := policy[role][resource]
	if !ok {
		return ReachNone
	}
	return r.reach
}

// CanAssignRole informa si el rol del solicitante puede crear usuarios con
// el rol pedido o reasignarlo. super_admin asigna cualquier rol válido; el
// resto solo roles operativos.
func CanAssignRole(actor, requested entity.Role) bool {
	if !requested.Valid() {
		return false
	}
	if actor == entity.RoleSuperAdmin {
		return true
	}
	return requested.IsOperational()
}
