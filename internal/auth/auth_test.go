package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorizedOwnerPassesEverything(t *testing.T) {
	claims := Claims{Role: RoleOwner}

	assert.True(t, claims.Authorized(RoleManager))
	assert.True(t, claims.Authorized(RoleAccountant))
	assert.True(t, claims.Authorized())
}

func TestAuthorizedMatchesListedRole(t *testing.T) {
	claims := Claims{Role: RoleSupervisor}

	assert.True(t, claims.Authorized(RoleManager, RoleSupervisor))
	assert.False(t, claims.Authorized(RoleManager, RoleCo))
}

func TestAuthorizedEmptyListRejectsNonOwner(t *testing.T) {
	claims := Claims{Role: RoleEmployee}

	assert.False(t, claims.Authorized())
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleOwner, RoleCo, RoleManager, RoleSupervisor, RoleEmployee, RoleAccountant} {
		assert.True(t, ValidRole(role), role)
	}

	assert.False(t, ValidRole("ADMIN"))
	assert.False(t, ValidRole("employee"))
	assert.False(t, ValidRole(""))
}
