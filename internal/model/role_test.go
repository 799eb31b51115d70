package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"Manager", "Sales", "Finance", "Admin"} {
		role, err := ParseRole(valid)
		require.NoError(t, err)
		assert.Equal(t, Role(valid), role)
	}

	for _, invalid := range []string{"", "manager", "Superuser", "MANAGER"} {
		_, err := ParseRole(invalid)
		assert.Error(t, err, "%q must be rejected", invalid)
	}
}

func TestSingletonRoles(t *testing.T) {
	assert.True(t, RoleManager.Singleton())
	assert.True(t, RoleFinance.Singleton())
	assert.False(t, RoleSales.Singleton())
	assert.False(t, RoleAdmin.Singleton())
}

func TestCostPriceVisibility(t *testing.T) {
	assert.True(t, RoleManager.SeesCostPrice())
	assert.True(t, RoleFinance.SeesCostPrice())
	assert.False(t, RoleSales.SeesCostPrice())
	assert.False(t, RoleAdmin.SeesCostPrice())
}
