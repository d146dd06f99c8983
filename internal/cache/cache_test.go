package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyBuilding(t *testing.T) {
	assert.Equal(t, "products", Key("products"))
	assert.Equal(t, "products:category:pescados", Key("products", "category", "pescados"))
	assert.Equal(t, "products:slug:polpa-acai", Key("products", "slug", "polpa-acai"))
}

func TestGetMissesOnAbsentKey(t *testing.T) {
	c := New()

	_, ok := c.Get("products")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	c := New()
	c.Set("settings", "site-config")

	v, ok := c.Get("settings")
	require.True(t, ok)
	assert.Equal(t, "site-config", v)
}

func TestInvalidateMarksTableKeysStale(t *testing.T) {
	c := New()
	c.Set(Key("products"), []string{"all"})
	c.Set(Key("products", "category", "pescados"), []string{"tilapia"})
	c.Set(Key("settings"), "untouched")

	c.Invalidate("products")

	// Stale entries miss, forcing the caller back to the database
	_, ok := c.Get(Key("products"))
	assert.False(t, ok)
	_, ok = c.Get(Key("products", "category", "pescados"))
	assert.False(t, ok)
	assert.True(t, c.IsStale(Key("products", "category", "pescados")))

	// Other tables keep serving
	v, ok := c.Get(Key("settings"))
	require.True(t, ok)
	assert.Equal(t, "untouched", v)
}

func TestInvalidateDoesNotMatchPrefixOfLongerTable(t *testing.T) {
	c := New()
	c.Set("pedidos", "a")
	c.Set("pedidos_archive", "b")

	c.Invalidate("pedidos")

	_, ok := c.Get("pedidos")
	assert.False(t, ok)
	_, ok = c.Get("pedidos_archive")
	assert.True(t, ok)
}

func TestSetClearsStaleMark(t *testing.T) {
	c := New()
	key := Key("products", "category", "pescados")

	c.Set(key, []string{"tilapia"})
	c.Invalidate("products")
	require.True(t, c.IsStale(key))

	// A refetch after invalidation replaces the value wholesale
	c.Set(key, []string{"tilapia", "camarao"})

	v, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, []string{"tilapia", "camarao"}, v)
	assert.False(t, c.IsStale(key))
}
