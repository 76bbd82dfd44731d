package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

func TestResolveScope(t *testing.T) {
	cases := []struct {
		name     string
		user     *entity.User
		resource access.Resource
		want     access.Scope
	}{
		{"nil", nil, access.ResourceUser, access.None()},
		{"super_admin", newUser("sa", entity.RoleSuperAdmin, ""), access.ResourceUser, access.All()},
		{"super_admin con restaurante sigue sin restricción", newUser("sa", entity.RoleSuperAdmin, restaurantA), access.ResourceRestaurant, access.All()},
		{"admin", newUser("a", entity.RoleAdmin, restaurantA), access.ResourceUser, access.Tenant(restaurantA)},
		{"cook sobre usuarios", newUser("c", entity.RoleCook, restaurantA), access.ResourceUser,
			access.Scope{Mode: access.ScopeTenant, TenantID: restaurantA, UserID: "c"}},
		{"cook sobre perfiles", newUser("c", entity.RoleCook, restaurantA), access.ResourceProfile, access.Tenant(restaurantA)},
		{"admin sin restaurante", newUser("a", entity.RoleAdmin, ""), access.ResourceUser, access.None()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, access.ResolveScope(tc.user, tc.resource))
		})
	}
}

func TestScope_Matches(t *testing.T) {
	a := access.Target{ID: "1", TenantID: restaurantA}
	b := access.Target{ID: "2", TenantID: restaurantB}
	orphan := access.Target{ID: "3"}

	assert.True(t, access.All().Matches(a))
	assert.True(t, access.All().Matches(orphan))

	assert.True(t, access.Tenant(restaurantA).Matches(a))
	assert.False(t, access.Tenant(restaurantA).Matches(b))
	assert.False(t, access.Tenant(restaurantA).Matches(orphan))

	self := access.Scope{Mode: access.ScopeTenant, TenantID: restaurantA, UserID: "1"}
	assert.True(t, self.Matches(a))
	assert.False(t, self.Matches(access.Target{ID: "9", TenantID: restaurantA}))

	assert.False(t, access.None().Matches(a))
	assert.False(t, access.Tenant("").Matches(orphan), "un restaurante vacío no coincide con registros sin restaurante")
	assert.True(t, access.Tenant("").IsEmpty())
}

func TestTargets(t *testing.T) {
	rid := restaurantA
	assert.Equal(t, access.Target{ID: "u", TenantID: restaurantA},
		access.TargetOfUser(&entity.User{ID: "u", RestaurantID: &rid}))
	assert.Equal(t, access.Target{ID: restaurantA, TenantID: restaurantA},
		access.TargetOfRestaurant(&entity.Restaurant{ID: restaurantA}))
	assert.Equal(t, access.Target{ID: restaurantB, TenantID: restaurantB},
		access.TargetOfProfile(&entity.RestaurantProfile{RestaurantID: restaurantB}))
}
