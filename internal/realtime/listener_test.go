package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"frutbras-service/internal/cache"
	"frutbras-service/internal/models"
	"frutbras-service/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProber struct {
	mu  sync.Mutex
	err error
}

func (p *stubProber) Probe(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *stubProber) setErr(err error) {
	p.mu.Lock()
	p.err = err
	p.mu.Unlock()
}

func newTestListener() (*Listener, *cache.QueryCache, *notify.Center) {
	qc := cache.New()
	center := notify.NewCenter(0)
	l := NewListener(qc, center, &stubProber{}, time.Hour)
	return l, qc, center
}

func TestDispatchReachesSubscribers(t *testing.T) {
	l, _, _ := newTestListener()

	var got *models.TableChangedEvent
	l.Subscribe(models.TableProducts, func(ctx context.Context, e *models.TableChangedEvent) {
		got = e
	})

	l.Dispatch(context.Background(), &models.TableChangedEvent{
		Table:     models.TableProducts,
		Operation: models.OpInsert,
		RecordID:  "p1",
	})

	require.NotNil(t, got)
	assert.Equal(t, "p1", got.RecordID)
}

func TestDispatchDropsUnwatchedTables(t *testing.T) {
	l, _, _ := newTestListener()

	// No subscription for recipes; must not panic
	l.Dispatch(context.Background(), &models.TableChangedEvent{
		Table:     models.TableRecipes,
		Operation: models.OpUpdate,
	})
}

func TestUnsubscribeAll(t *testing.T) {
	l, _, _ := newTestListener()

	calls := 0
	l.Subscribe(models.TablePedidos, func(ctx context.Context, e *models.TableChangedEvent) {
		calls++
	})
	l.UnsubscribeAll()

	l.Dispatch(context.Background(), &models.TableChangedEvent{Table: models.TablePedidos})
	assert.Zero(t, calls)
}

func TestDefaultWatchersInvalidateAndNotify(t *testing.T) {
	l, qc, center := newTestListener()
	l.Start()
	defer l.Stop()

	qc.Set(cache.Key(models.TableProducts, "category", "pescados"), []string{"tilapia"})

	row, err := json.Marshal(map[string]string{"name": "Filé de Tilápia"})
	require.NoError(t, err)

	l.Dispatch(context.Background(), &models.TableChangedEvent{
		Table:     models.TableProducts,
		Operation: models.OpInsert,
		RecordID:  "p1",
		New:       row,
	})

	// Derived queries are stale until the next read refetches them
	_, ok := qc.Get(cache.Key(models.TableProducts, "category", "pescados"))
	assert.False(t, ok)

	list := center.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "Produto adicionado", list[0].Title)
	assert.Contains(t, list[0].Message, "Filé de Tilápia")
}

func TestPedidoWatcherNotifiesWithShortID(t *testing.T) {
	l, _, center := newTestListener()
	l.Start()
	defer l.Stop()

	l.Dispatch(context.Background(), &models.TableChangedEvent{
		Table:     models.TablePedidos,
		Operation: models.OpInsert,
		RecordID:  "3f9c1a2b-4d5e-6f70-8192-a3b4c5d6e7f8",
	})

	list := center.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "Novo pedido", list[0].Title)
	assert.Contains(t, list[0].Message, "#d6e7f8")
}

func TestSetOnlineTransitions(t *testing.T) {
	l, _, center := newTestListener()

	assert.True(t, l.Online())

	l.SetOnline(false)
	assert.False(t, l.Online())

	list := center.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Conexão perdida", list[0].Title)
	assert.True(t, list[0].Persistent)

	// Repeated offline reports do not pile up notices
	l.SetOnline(false)
	assert.Len(t, center.List(), 1)

	// Recovery removes the persistent offline notice even after repeated
	// failure reports; only the restoration notice remains.
	l.SetOnline(true)
	assert.True(t, l.Online())

	list = center.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Conexão restaurada", list[0].Title)
	assert.False(t, list[0].Persistent)
}

func TestProbeFailureFlipsOffline(t *testing.T) {
	qc := cache.New()
	center := notify.NewCenter(0)
	prober := &stubProber{err: errors.New("connection refused")}
	l := NewListener(qc, center, prober, 10*time.Millisecond)

	l.Start()
	defer l.Stop()

	require.Eventually(t, func() bool {
		return !l.Online()
	}, time.Second, 5*time.Millisecond)

	prober.setErr(nil)
	require.Eventually(t, func() bool {
		return l.Online()
	}, time.Second, 5*time.Millisecond)
}
