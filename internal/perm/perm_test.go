package perm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsForCoversEveryModule(t *testing.T) {
	for _, role := range Roles() {
		perms := DefaultsFor(role)
		require.Len(t, perms, len(Modules), role)
		for i, p := range perms {
			assert.Equal(t, Modules[i], p.Module, "module order must be stable")
		}
	}
}

func TestAdminHasFullAccess(t *testing.T) {
	for _, p := range DefaultsFor(RoleAdmin) {
		assert.True(t, p.Create && p.Read && p.Update && p.Delete, p.Module)
	}
}

func TestUnknownRoleIsReadOnly(t *testing.T) {
	perms := DefaultsFor("intern")
	require.Len(t, perms, len(Modules))
	for _, p := range perms {
		assert.False(t, p.Create, p.Module)
		assert.True(t, p.Read, p.Module)
		assert.False(t, p.Update, p.Module)
		assert.False(t, p.Delete, p.Module)
	}
}

func TestRoleGaps(t *testing.T) {
	byModule := func(role string) map[string]ModulePermission {
		m := make(map[string]ModulePermission)
		for _, p := range DefaultsFor(role) {
			m[p.Module] = p
		}
		return m
	}

	housekeeping := byModule(RoleHousekeeping)
	// Housekeeping touches rooms and laundry; everything else is read-only.
	assert.True(t, housekeeping["Rooms"].Update)
	assert.True(t, housekeeping["Laundry"].Create)
	assert.False(t, housekeeping["Bookings"].Create)
	assert.False(t, housekeeping["Reports"].Update)

	accountant := byModule(RoleAccountant)
	assert.True(t, accountant["Reports"].Create)
	assert.False(t, accountant["Bookings"].Create)

	manager := byModule(RoleManager)
	assert.True(t, manager["Bookings"].Delete)
	assert.False(t, manager["Rooms"].Delete)

	receptionist := byModule(RoleReceptionist)
	assert.True(t, receptionist["Bookings"].Create)
	assert.False(t, receptionist["Bookings"].Delete)
	// Reports is absent from the receptionist grid, so it gets the
	// read-only default.
	assert.True(t, receptionist["Reports"].Read)
	assert.False(t, receptionist["Reports"].Create)
}
