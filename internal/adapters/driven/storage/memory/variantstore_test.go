package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/culturebridge-labs/culturebridge/internal/core/domain"
)

func spec(id string) domain.VariantSpec {
	return domain.VariantSpec{
		ID:        id,
		State:     domain.PipelineState{RunID: "run-" + id},
		CreatedAt: time.Now().UTC(),
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	store := NewVariantStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, spec("var_a")))

	got, err := store.Get(ctx, "var_a")
	require.NoError(t, err)
	assert.Equal(t, "var_a", got.ID)
	assert.Equal(t, "run-var_a", got.State.RunID)
}

func TestPutIsIdempotentOnRetry(t *testing.T) {
	store := NewVariantStore()
	ctx := context.Background()

	first := spec("var_a")
	first.State.RunID = "original"
	require.NoError(t, store.Put(ctx, first))

	retry := spec("var_a")
	retry.State.RunID = "retry"
	require.NoError(t, store.Put(ctx, retry))

	got, err := store.Get(ctx, "var_a")
	require.NoError(t, err)
	assert.Equal(t, "original", got.State.RunID, "second put must not overwrite")
}

func TestGetUnknownVariant(t *testing.T) {
	store := NewVariantStore()

	_, err := store.Get(context.Background(), "var_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSorted(t *testing.T) {
	store := NewVariantStore()
	ctx := context.Background()

	for _, id := range []string{"var_c", "var_a", "var_b"} {
		require.NoError(t, store.Put(ctx, spec(id)))
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"var_a", "var_b", "var_c"}, ids)
}

func TestDelete(t *testing.T) {
	store := NewVariantStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, spec("var_a")))
	require.NoError(t, store.Delete(ctx, "var_a"))

	_, err := store.Get(ctx, "var_a")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "var_a"), domain.ErrNotFound)
}
