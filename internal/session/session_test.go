package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sofaLine() CartLine {
	return CartLine{FurnitureItemID: 1, Name: "Linen Sofa", PriceCents: 3500000, Quantity: 1}
}

func tableLine() CartLine {
	return CartLine{FurnitureItemID: 2, Name: "Oak Dining Table", PriceCents: 12000000, Quantity: 1}
}

func TestAddIncrementsExistingLine(t *testing.T) {
	sess := New("test-session")

	sess.Add(sofaLine())
	sess.Add(sofaLine())

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 2, sess.ItemCount())
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	sess := New("test-session")

	line := sofaLine()
	line.Quantity = 0
	sess.Add(line)

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	sess := New("test-session")

	sess.Add(sofaLine())
	sess.Add(tableLine())
	sess.Add(sofaLine())

	lines := sess.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, uint(1), lines[0].FurnitureItemID)
	assert.Equal(t, uint(2), lines[1].FurnitureItemID)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())
	sess.Add(tableLine())

	sess.SetQuantity(1, 0)

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, uint(2), lines[0].FurnitureItemID)
}

func TestSetQuantityNegativeRemovesLine(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())

	sess.SetQuantity(1, -3)

	assert.Empty(t, sess.Lines())
}

func TestSetQuantityReplacesQuantity(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())

	sess.SetQuantity(1, 5)

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestSetQuantityUnknownItemIsNoOp(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())

	sess.SetQuantity(99, 4)

	lines := sess.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestRemoveUnknownItemIsNoOp(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())

	sess.Remove(99)

	assert.Len(t, sess.Lines(), 1)
}

func TestTotalCents(t *testing.T) {
	sess := New("test-session")

	assert.Equal(t, int64(0), sess.TotalCents())

	sofa := sofaLine()
	sofa.Quantity = 2
	sess.Add(sofa)
	sess.Add(tableLine())

	// 2 * 3,500,000 + 1 * 12,000,000
	assert.Equal(t, int64(19000000), sess.TotalCents())

	sess.SetQuantity(2, 3)
	assert.Equal(t, int64(43000000), sess.TotalCents())
}

func TestClearEmptiesCart(t *testing.T) {
	sess := New("test-session")
	sess.Add(sofaLine())
	sess.Add(tableLine())

	sess.Clear()

	assert.Empty(t, sess.Lines())
	assert.Equal(t, int64(0), sess.TotalCents())
}

func TestToggleFavorite(t *testing.T) {
	sess := New("test-session")

	assert.True(t, sess.ToggleFavorite(7))
	assert.Contains(t, sess.Favorites(), uint(7))

	assert.False(t, sess.ToggleFavorite(7))
	assert.Empty(t, sess.Favorites())
}

func TestBeginCheckoutSingleFlight(t *testing.T) {
	sess := New("single-flight-session")
	t.Cleanup(sess.EndCheckout)

	assert.True(t, sess.BeginCheckout())
	assert.False(t, sess.BeginCheckout())

	sess.EndCheckout()
	assert.True(t, sess.BeginCheckout())
}

func TestBeginCheckoutSharedAcrossSessionCopies(t *testing.T) {
	// The Redis store deserializes a fresh Session object per request, so
	// two concurrent submissions for the same session arrive on distinct
	// copies. The guard is keyed by ID and must block the second copy.
	first := New("copied-session")
	second := New("copied-session")
	t.Cleanup(first.EndCheckout)

	require.True(t, first.BeginCheckout())
	assert.False(t, second.BeginCheckout())

	first.EndCheckout()
	assert.True(t, second.BeginCheckout())
	second.EndCheckout()
}

func TestSessionJSONRoundTrip(t *testing.T) {
	sess := New("round-trip")
	sess.Add(sofaLine())
	sess.ToggleFavorite(3)

	raw, err := json.Marshal(sess)
	require.NoError(t, err)

	restored := New("")
	require.NoError(t, json.Unmarshal(raw, restored))

	assert.Equal(t, "round-trip", restored.ID)
	assert.Equal(t, sess.Lines(), restored.Lines())
	assert.Equal(t, []uint{3}, restored.Favorites())
}

func TestMemoryStoreGetOrCreate(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess, err := store.GetOrCreate(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)

	again, err := store.GetOrCreate(ctx, sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, again)

	fresh, err := store.GetOrCreate(ctx, "unknown-id")
	require.NoError(t, err)
	assert.NotEqual(t, "unknown-id", fresh.ID)
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore(time.Nanosecond)
	ctx := context.Background()

	_, err := store.GetOrCreate(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	sess, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, sess)
}
