package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/access"
)

func TestScopeClause(t *testing.T) {
	cases := []struct {
		name     string
		scope    access.Scope
		wantCond string
		wantArgs []any
	}{
		{"todo", access.All(), "TRUE", nil},
		{"ninguno", access.None(), "FALSE", nil},
		{"restaurante vacío", access.Tenant(""), "FALSE", nil},
		{"restaurante", access.Tenant("r1"), "restaurant_id = $3", []any{"r1"}},
		{"solo sí mismo", access.Scope{Mode: access.ScopeTenant, TenantID: "r1", UserID: "u1"},
			"restaurant_id = $3 AND id = $4", []any{"r1", "u1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cond, args := scopeClause(tc.scope, "restaurant_id", "id", 3)
			assert.Equal(t, tc.wantCond, cond)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestPageClause(t *testing.T) {
	clause, args := pageClause(20, 40, 2)
	assert.Equal(t, " LIMIT $2 OFFSET $3", clause)
	assert.Equal(t, []any{20, 40}, args)

	clause, args = pageClause(0, 5, 1)
	assert.Equal(t, " OFFSET $1", clause)
	assert.Equal(t, []any{5}, args)

	clause, args = pageClause(10, -3, 1)
	assert.Equal(t, " LIMIT $1 OFFSET $2", clause)
	assert.Equal(t, []any{10, 0}, args)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\%b\_c\\`, escapeLike(`a%b_c\`))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID("6f1c2d2e-8a4b-4c53-9a31-0f3c1b7e2a10"))
	assert.False(t, validID("no-existe"))
	assert.False(t, validID(""))
}
