package cache_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajwalsh/piggy/internal/cache"
)

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()

	s, err := cache.New(afero.NewMemMapFs(), "cache")
	require.NoError(t, err)

	return s
}

func TestStore_GetSet(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	require.NoError(t, s.Set("snapshot:user-a", []byte(`{"goals":[]}`)))

	got, err := s.Get("snapshot:user-a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"goals":[]}`), got)
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("k:a", []byte("1")))
	require.NoError(t, s.Remove("k:a"))

	_, err := s.Get("k:a")
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	// Removing a missing key is not an error.
	assert.NoError(t, s.Remove("k:a"))
}

func TestStore_PurgeUserScoped(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(cache.Key("snapshot", "user-a"), []byte("a")))
	require.NoError(t, s.Set(cache.Key("onboarding", "user-a"), []byte("a")))
	require.NoError(t, s.Set(cache.Key("snapshot", "user-b"), []byte("b")))
	require.NoError(t, s.Set("legacy-untagged", []byte("x")))

	require.NoError(t, s.PurgeUserScoped("user-b"))

	// user-b entries survive, everything else is gone.
	_, err := s.Get(cache.Key("snapshot", "user-b"))
	assert.NoError(t, err)

	_, err = s.Get(cache.Key("snapshot", "user-a"))
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	_, err = s.Get(cache.Key("onboarding", "user-a"))
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	_, err = s.Get("legacy-untagged")
	assert.ErrorIs(t, err, cache.ErrNoEntry)

	current, err := s.CurrentUser()
	require.NoError(t, err)
	assert.Equal(t, "user-b", current)
}

func TestStore_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	s := newTestStore(t)

	require.NoError(t, cache.PutJSON(s, "p:user-a", &payload{Name: "x", Count: 3}))

	got, err := cache.GetJSON[payload](s, "p:user-a")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Name)
	assert.Equal(t, 3, got.Count)

	_, err = cache.GetJSON[payload](s, "p:missing")
	assert.ErrorIs(t, err, cache.ErrNoEntry)
}

func TestStore_KeysMatching(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set("snapshot:a", []byte("1")))
	require.NoError(t, s.Set("snapshot:b", []byte("2")))
	require.NoError(t, s.Set("onboarding:a", []byte("3")))

	keys, err := s.KeysMatching(func(key string) bool {
		return len(key) > 9 && key[:9] == "snapshot:"
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"snapshot:a", "snapshot:b"}, keys)
}
