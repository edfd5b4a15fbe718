package inventory_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/internal/domain"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

func newAdmin() (*inventory.AdminUseCase, *fakeStartRepo, *fakeSettingsRepo) {
	starts := newFakeStartRepo()
	settings := newFakeSettingsRepo()
	return inventory.NewAdminUseCase(starts, settings), starts, settings
}

func TestAdmin_SetStartQtyUpsert(t *testing.T) {
	admin, starts, _ := newAdmin()

	rec, err := admin.SetStartQty(keyP10(), 50)
	require.NoError(t, err)
	assert.Equal(t, 50, rec.StartQty)

	// Segundo upsert sobre la misma clave: actualiza, no duplica.
	rec, err = admin.SetStartQty(keyP10(), 80)
	require.NoError(t, err)
	assert.Equal(t, 80, rec.StartQty)

	all, err := starts.List()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAdmin_SetMinQtyNoPisaElStart(t *testing.T) {
	admin, _, _ := newAdmin()

	_, err := admin.SetStartQty(keyP10(), 50)
	require.NoError(t, err)
	rec, err := admin.SetMinQty(keyP10(), 10)
	require.NoError(t, err)

	assert.Equal(t, 50, rec.StartQty)
	assert.Equal(t, 10, rec.MinQty)
}

func TestAdmin_RecortaEspaciosDeLaClave(t *testing.T) {
	admin, starts, _ := newAdmin()

	_, err := admin.SetStartQty(entity.InventoryKey{
		BaseType: "  P ",
		Category: " Wandfarbe",
		Size:     "10 Liter  ",
	}, 50)
	require.NoError(t, err)

	all, err := starts.List()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keyP10(), all[0].Key())
}

func TestAdmin_ValidaLaClave(t *testing.T) {
	admin, _, _ := newAdmin()

	casos := []entity.InventoryKey{
		{BaseType: "", Category: "Wandfarbe", Size: "10 Liter"},
		{BaseType: "P", Category: "", Size: "10 Liter"},
		{BaseType: "P", Category: "Wandfarbe", Size: ""},
		{BaseType: "   ", Category: "Wandfarbe", Size: "10 Liter"},
		{BaseType: strings.Repeat("x", 61), Category: "Wandfarbe", Size: "10 Liter"},
		{BaseType: "P", Category: strings.Repeat("x", 121), Size: "10 Liter"},
		{BaseType: "P", Category: "Wandfarbe", Size: strings.Repeat("x", 61)},
	}
	for _, key := range casos {
		_, err := admin.SetStartQty(key, 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "clave %q", key.String())
	}
}

func TestAdmin_RechazaCantidadesNegativas(t *testing.T) {
	admin, _, _ := newAdmin()

	_, err := admin.SetStartQty(keyP10(), -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = admin.SetMinQty(keyP10(), -5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Cero es válido en ambos.
	_, err = admin.SetStartQty(keyP10(), 0)
	assert.NoError(t, err)
	_, err = admin.SetMinQty(keyP10(), 0)
	assert.NoError(t, err)
}

func TestAdmin_DefaultFrom(t *testing.T) {
	admin, _, _ := newAdmin()

	// Sin settings todavía: nil sin error.
	got, err := admin.GetDefaultFrom()
	require.NoError(t, err)
	assert.Nil(t, got)

	from := mustDate("2026-07-01")
	s, err := admin.SetDefaultFrom(&from)
	require.NoError(t, err)
	require.NotNil(t, s.DefaultFrom)

	got, err = admin.GetDefaultFrom()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Equal(from))

	// nil limpia el corte.
	_, err = admin.SetDefaultFrom(nil)
	require.NoError(t, err)
	got, err = admin.GetDefaultFrom()
	require.NoError(t, err)
	assert.Nil(t, got)
}
