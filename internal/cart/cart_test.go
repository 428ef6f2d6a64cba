package cart

import (
	"context"
	"errors"
	"testing"

	"reservation_service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	data    map[string]string
	failSet bool
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	val, ok := f.data[key]
	if !ok {
		return "", storage.ErrKeyNotFound
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key string, value string) error {
	if f.failSet {
		return errors.New("kv is down")
	}
	f.data[key] = value
	return nil
}

func TestAdd_SameNameCollapsesToOneLine(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Add(ctx, "Nyama Choma", 12.50))
	}

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 5, s.TotalCount())
}

func TestRemoveThenAdd_StartsFresh(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	require.NoError(t, s.Add(ctx, "Ugali", 3.00))
	require.NoError(t, s.Increase(ctx, "Ugali"))
	require.NoError(t, s.Increase(ctx, "Ugali"))
	require.NoError(t, s.Remove(ctx, "Ugali"))
	require.NoError(t, s.Add(ctx, "Ugali", 3.00))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestDecrease_FlooredAtOne(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	require.NoError(t, s.Add(ctx, "Samosa", 1.50))
	require.NoError(t, s.Decrease(ctx, "Samosa"))
	require.NoError(t, s.Decrease(ctx, "Samosa"))

	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)

	t.Run("unknown name is a no-op", func(t *testing.T) {
		require.NoError(t, s.Decrease(ctx, "Chapati"))
		assert.Len(t, s.Lines(), 1)
	})
}

func TestIncrease_UnknownItem(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	err := s.Increase(ctx, "Mandazi")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	require.NoError(t, s.Add(ctx, "Pilau", 8.00))
	require.NoError(t, s.Add(ctx, "Chai", 1.20))
	require.NoError(t, s.Clear(ctx))

	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalCount())
	assert.Equal(t, 0.0, s.TotalPrice())
}

func TestTotalPrice_RoundedToCents(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, newFakeKV())

	require.NoError(t, s.Add(ctx, "Tilapia", 10.10))
	require.NoError(t, s.Increase(ctx, "Tilapia"))
	require.NoError(t, s.Increase(ctx, "Tilapia"))

	// 3 * 10.10 accumulates float noise without rounding.
	assert.Equal(t, 30.30, s.TotalPrice())
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	kvStore := newFakeKV()

	s := New(ctx, kvStore)
	require.NoError(t, s.Add(ctx, "Nyama Choma", 12.50))
	require.NoError(t, s.Add(ctx, "Chai", 1.20))
	require.NoError(t, s.Increase(ctx, "Chai"))

	reloaded := New(ctx, kvStore)
	assert.Equal(t, s.TotalCount(), reloaded.TotalCount())
	assert.Equal(t, s.TotalPrice(), reloaded.TotalPrice())
	assert.Equal(t, s.Lines(), reloaded.Lines())
}

func TestLoad_BrokenDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	kvStore := newFakeKV()
	kvStore.data[StorageKey] = "{not json"

	s := New(ctx, kvStore)
	assert.Empty(t, s.Lines())
	assert.Equal(t, 0, s.TotalCount())
}

func TestMutations_PersistEveryTime(t *testing.T) {
	ctx := context.Background()
	kvStore := newFakeKV()
	s := New(ctx, kvStore)

	require.NoError(t, s.Add(ctx, "Pilau", 8.00))
	assert.Contains(t, kvStore.data[StorageKey], "Pilau")

	require.NoError(t, s.Remove(ctx, "Pilau"))
	assert.NotContains(t, kvStore.data[StorageKey], "Pilau")
}

func TestPersistFailure_Surfaces(t *testing.T) {
	ctx := context.Background()
	kvStore := newFakeKV()
	s := New(ctx, kvStore)

	kvStore.failSet = true
	assert.Error(t, s.Add(ctx, "Chai", 1.20))
}
