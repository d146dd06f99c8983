package notify

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushNewestFirst(t *testing.T) {
	c := NewCenter(0)

	c.Push(TypeInfo, "Primeiro", "m1", false)
	c.Push(TypeSuccess, "Segundo", "m2", false)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Segundo", list[0].Title)
	assert.Equal(t, "Primeiro", list[1].Title)
	assert.NotEmpty(t, list[0].ID)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestCapDropsOldest(t *testing.T) {
	c := NewCenter(0)

	for i := 1; i <= 7; i++ {
		c.Push(TypeInfo, fmt.Sprintf("n%d", i), "", false)
	}

	list := c.List()
	require.Len(t, list, maxNotifications)
	assert.Equal(t, "n7", list[0].Title)
	assert.Equal(t, "n3", list[len(list)-1].Title)
}

func TestRemoveByID(t *testing.T) {
	c := NewCenter(0)

	n := c.Push(TypeWarning, "Conexão perdida", "", true)
	c.Push(TypeInfo, "Outro", "", false)

	c.Remove(n.ID)

	list := c.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Outro", list[0].Title)
}

func TestAutoDismissSkipsPersistent(t *testing.T) {
	c := NewCenter(20 * time.Millisecond)

	c.Push(TypeWarning, "Conexão perdida", "", true)
	c.Push(TypeInfo, "Produto atualizado", "", false)

	require.Eventually(t, func() bool {
		return len(c.List()) == 1
	}, time.Second, 5*time.Millisecond)

	list := c.List()
	assert.Equal(t, "Conexão perdida", list[0].Title)
	assert.True(t, list[0].Persistent)
}
