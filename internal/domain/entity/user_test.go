package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func TestParseRole(t *testing.T) {
	cases := map[string]struct {
		want entity.Role
		ok   bool
	}{
		"super_admin": {entity.RoleSuperAdmin, true},
		"Admin":       {entity.RoleAdmin, true},
		" cook ":      {entity.RoleCook, true},
		"waiter":      {entity.RoleWaiter, true},
		"accountant":  {entity.RoleAccountant, true},
		"superadmin":  {"", false},
		"":            {"", false},
		"chef":        {"", false},
	}
	for in, tc := range cases {
		got, ok := entity.ParseRole(in)
		assert.Equal(t, tc.ok, ok, "ParseRole(%q)", in)
		assert.Equal(t, tc.want, got, "ParseRole(%q)", in)
	}
}

func TestRole_IsOperational(t *testing.T) {
	assert.False(t, entity.RoleSuperAdmin.IsOperational())
	assert.False(t, entity.RoleAdmin.IsOperational())
	assert.True(t, entity.RoleCook.IsOperational())
	assert.True(t, entity.RoleWaiter.IsOperational())
	assert.True(t, entity.RoleAccountant.IsOperational())
	assert.False(t, entity.Role("chef").IsOperational())
}

func TestUser_TenantID(t *testing.T) {
	empty := ""
	rid := "r-1"
	assert.Equal(t, "", (&entity.User{}).TenantID())
	assert.Equal(t, "", (&entity.User{RestaurantID: &empty}).TenantID())
	assert.Equal(t, "r-1", (&entity.User{RestaurantID: &rid}).TenantID())
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "Ana.Perez@example.com", entity.NormalizeEmail("  Ana.Perez@EXAMPLE.com "))
	assert.Equal(t, "sin-arroba", entity.NormalizeEmail("sin-arroba"))
}
