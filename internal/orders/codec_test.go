package orders

import (
	"testing"

	"graphics2prints_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCartItemsSingleEncoded(t *testing.T) {
	items := DecodeCartItems(`[{"name":"Flyers","quantity":2},{"name":"Mugs","quantity":12}]`)

	require.Len(t, items, 2)
	assert.Equal(t, models.OrderItem{Name: "Flyers", Quantity: 2}, items[0])
	assert.Equal(t, models.OrderItem{Name: "Mugs", Quantity: 12}, items[1])
}

func TestDecodeCartItemsDoubleEncoded(t *testing.T) {
	// Tableau JSON de chaînes JSON : le front encode parfois chaque ligne
	// une fois de trop. Le résultat doit être identique au simple encodage.
	double := `["{\"name\":\"Flyers\",\"quantity\":2}","{\"name\":\"Mugs\",\"quantity\":12}"]`
	single := `[{"name":"Flyers","quantity":2},{"name":"Mugs","quantity":12}]`

	assert.Equal(t, DecodeCartItems(single), DecodeCartItems(double))
}

func TestDecodeCartItemsMalformed(t *testing.T) {
	for _, raw := range []string{"pas du json", "{", "", "   ", "null"} {
		items := DecodeCartItems(raw)
		require.NotNil(t, items, "entrée %q", raw)
		assert.Empty(t, items, "entrée %q", raw)
	}
}

func TestDecodeCartItemsSkipsUnreadableElements(t *testing.T) {
	items := DecodeCartItems(`[{"name":"Flyers","quantity":2}, 42, {"quantity":3}]`)

	// 42 n'est ni un objet ni une chaîne, {"quantity":3} n'a pas de nom :
	// les deux sont ignorés sans faire échouer le reste.
	require.Len(t, items, 1)
	assert.Equal(t, "Flyers", items[0].Name)
}

func TestDecodeCartItemsOpaqueString(t *testing.T) {
	// Une chaîne qui n'est pas du JSON est gardée comme nom opaque plutôt
	// que perdue : le paiement est déjà capturé.
	items := DecodeCartItems(`["Stickers ronds"]`)

	require.Len(t, items, 1)
	assert.Equal(t, "Stickers ronds", items[0].Name)
	assert.Zero(t, items[0].Quantity)
}
