package shop_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartMergesLines(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)

	a := product("prod-a", 10000)
	b := product("prod-b", 5000)

	require.NoError(t, st.AddToCart(a))
	require.NoError(t, st.AddToCart(a))
	require.NoError(t, st.AddToCart(a))
	require.NoError(t, st.AddToCart(b))
	st.Flush()

	cart := st.Cart()
	require.Len(t, cart, 2, "one line per distinct product id")
	assert.Equal(t, 3, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity)

	// remote rows mirror the merged lines once the queue settles
	assert.Equal(t, 3, g.cartRows["prod-a"].Quantity)
	assert.Equal(t, 1, g.cartRows["prod-b"].Quantity)
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	require.NoError(t, st.AddToCart(product("prod-a", 10000)))

	for _, n := range []int{0, -5, -1} {
		require.NoError(t, st.UpdateQuantity("prod-a", n))
		cart := st.Cart()
		require.Len(t, cart, 1, "clamp must never remove the line")
		assert.Equal(t, 1, cart[0].Quantity)
	}

	require.NoError(t, st.UpdateQuantity("prod-a", 7))
	st.Flush()
	assert.Equal(t, 7, st.Cart()[0].Quantity)
	assert.Equal(t, 7, g.cartRows["prod-a"].Quantity)
}

func TestSelectionSubsetOfCart(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	require.NoError(t, st.AddToCart(product("prod-a", 10000)))
	require.NoError(t, st.AddToCart(product("prod-b", 5000)))

	// toggling an unknown id never leaks into the set
	st.ToggleSelectCartItem("ghost")
	assert.Empty(t, st.SelectedIDs())

	st.SelectAllCartItems()
	assert.Equal(t, []string{"prod-a", "prod-b"}, st.SelectedIDs())

	st.DeselectAllCartItems()
	assert.Empty(t, st.SelectedIDs())

	st.ToggleSelectCartItem("prod-b")
	assert.Equal(t, []string{"prod-b"}, st.SelectedIDs())
	st.ToggleSelectCartItem("prod-b")
	assert.Empty(t, st.SelectedIDs())
}

func TestRemoveFromCartDropsSelection(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	require.NoError(t, st.AddToCart(product("prod-a", 10000)))
	st.SelectAllCartItems()

	require.NoError(t, st.RemoveFromCart("prod-a"))
	st.Flush()

	assert.Empty(t, st.Cart())
	assert.Empty(t, st.SelectedIDs())
	_, remote := g.cartRows["prod-a"]
	assert.False(t, remote)

	// unknown id is a no-op, not an error
	require.NoError(t, st.RemoveFromCart("prod-a"))
}

func TestCartCompensationOnRemoteFailure(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	g.failOn("Cart.Upsert")

	require.NoError(t, st.AddToCart(product("prod-a", 10000)))
	st.Flush()

	// the optimistic insert was reversed once the remote write failed
	assert.Empty(t, st.Cart())
	assert.Empty(t, g.cartRows)
}

func TestMidQueueFailureRollsBackOnlyItsOwnStep(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	g.failNth("Cart.Upsert", 2)

	p := product("prod-a", 10000)
	require.NoError(t, st.AddToCart(p))
	require.NoError(t, st.AddToCart(p))
	require.NoError(t, st.AddToCart(p))
	st.Flush()

	// the failed middle write steps back one unit; the later write that
	// settled remotely is not rewound beneath
	assert.Equal(t, 2, st.Cart()[0].Quantity)
	assert.Equal(t, 3, g.cartRows["prod-a"].Quantity)
}

func TestQuantityCompensationOnRemoteFailure(t *testing.T) {
	g := newMockGW()
	st := signedInStore(t, g)
	require.NoError(t, st.AddToCart(product("prod-a", 10000)))
	st.Flush()

	g.failOn("Cart.SetQuantity")
	require.NoError(t, st.UpdateQuantity("prod-a", 9))
	st.Flush()

	assert.Equal(t, 1, st.Cart()[0].Quantity, "failed remote write restores prior quantity")
}
