package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"frutbras-service/internal/cache"
	"frutbras-service/internal/models"
	"frutbras-service/internal/notify"
	"frutbras-service/internal/util"

	"go.uber.org/zap"
)

// Prober is the lightweight backend reachability check the listener polls
type Prober interface {
	Probe(ctx context.Context) error
}

// Listener keeps cached query results consistent with remote state and
// surfaces change notifications. It owns its goroutines: Start launches the
// connectivity probe, Stop tears everything down. Subscriptions are explicit;
// nothing here is ambient module state.
type Listener struct {
	cache  *cache.QueryCache
	center *notify.Center
	prober Prober
	logger *zap.Logger

	probeInterval time.Duration

	mu              sync.Mutex
	subs            map[string][]func(context.Context, *models.TableChangedEvent)
	online          bool
	offlineNoticeID string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewListener creates a listener wired to the query cache and notification
// center. Call Start to install the default table watchers and begin probing.
func NewListener(qc *cache.QueryCache, center *notify.Center, prober Prober, probeInterval time.Duration) *Listener {
	return &Listener{
		cache:         qc,
		center:        center,
		prober:        prober,
		probeInterval: probeInterval,
		subs:          make(map[string][]func(context.Context, *models.TableChangedEvent)),
		online:        true,
		logger:        util.GetLogger(),
	}
}

// Subscribe registers a callback for change events on a table
func (l *Listener) Subscribe(table string, fn func(context.Context, *models.TableChangedEvent)) {
	l.mu.Lock()
	l.subs[table] = append(l.subs[table], fn)
	l.mu.Unlock()
}

// UnsubscribeAll drops every registered subscription
func (l *Listener) UnsubscribeAll() {
	l.mu.Lock()
	l.subs = make(map[string][]func(context.Context, *models.TableChangedEvent))
	l.mu.Unlock()
}

// Start installs the default watchers for the four monitored tables and
// launches the connectivity probe goroutine.
func (l *Listener) Start() {
	l.Subscribe(models.TableProducts, l.onProductsChange)
	l.Subscribe(models.TableSettings, l.onSettingsChange)
	l.Subscribe(models.TablePedidos, l.onPedidosChange)
	l.Subscribe(models.TableAuditLogs, l.onAuditLogsChange)

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel

	l.wg.Add(1)
	go l.probeLoop(ctx)

	l.logger.Info("Realtime listener started",
		zap.Duration("probe_interval", l.probeInterval))
}

// Stop cancels the probe goroutine and clears all subscriptions
func (l *Listener) Stop() {
	if l.cancel != nil {
		l.cancel()
	}
	l.wg.Wait()
	l.UnsubscribeAll()
	l.logger.Info("Realtime listener stopped")
}

// Dispatch fans a change event out to the table's subscribers. Events for
// tables nobody watches are dropped.
func (l *Listener) Dispatch(ctx context.Context, event *models.TableChangedEvent) {
	l.mu.Lock()
	fns := make([]func(context.Context, *models.TableChangedEvent), len(l.subs[event.Table]))
	copy(fns, l.subs[event.Table])
	l.mu.Unlock()

	for _, fn := range fns {
		fn(ctx, event)
	}
}

// SetOnline records a reachability change reported from outside the probe,
// the counterpart of the browser's online/offline events.
func (l *Listener) SetOnline(online bool) {
	l.mu.Lock()
	was := l.online
	l.online = online
	if was == online {
		// Repeated reports in the same state must leave the stored
		// offline-notice id intact for the eventual recovery.
		l.mu.Unlock()
		return
	}
	noticeID := l.offlineNoticeID
	l.offlineNoticeID = ""
	l.mu.Unlock()

	if online {
		if noticeID != "" {
			l.center.Remove(noticeID)
		}
		l.center.Push(notify.TypeSuccess, "Conexão restaurada",
			"Sincronização em tempo real ativa novamente.", false)
		return
	}

	n := l.center.Push(notify.TypeWarning, "Conexão perdida",
		"Trabalhando offline. Alterações serão sincronizadas quando a conexão for restaurada.", true)

	l.mu.Lock()
	l.offlineNoticeID = n.ID
	l.mu.Unlock()
}

// Online reports the last known reachability state
func (l *Listener) Online() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.online
}

func (l *Listener) probeLoop(ctx context.Context) {
	defer l.wg.Done()

	ticker := time.NewTicker(l.probeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			err := l.prober.Probe(probeCtx)
			cancel()

			if err != nil {
				util.ConnectivityProbeFailures.Inc()
				l.logger.Warn("Connectivity probe failed", zap.Error(err))
				l.SetOnline(false)
			} else {
				l.SetOnline(true)
			}
		}
	}
}

func (l *Listener) onProductsChange(ctx context.Context, event *models.TableChangedEvent) {
	l.cache.Invalidate(models.TableProducts)

	name := rowName(event.New)
	switch event.Operation {
	case models.OpInsert:
		l.center.Push(notify.TypeSuccess, "Produto adicionado",
			fmt.Sprintf("Novo produto %q foi criado.", name), false)
	case models.OpUpdate:
		l.center.Push(notify.TypeInfo, "Produto atualizado",
			fmt.Sprintf("Produto %q foi modificado.", name), false)
	case models.OpDelete:
		l.center.Push(notify.TypeError, "Produto removido",
			"Produto foi excluído do sistema.", false)
	}
}

func (l *Listener) onSettingsChange(ctx context.Context, event *models.TableChangedEvent) {
	l.cache.Invalidate(models.TableSettings)

	if event.Operation == models.OpUpdate {
		l.center.Push(notify.TypeInfo, "Configurações atualizadas",
			"As configurações do site foram modificadas em tempo real.", false)
	}
}

func (l *Listener) onPedidosChange(ctx context.Context, event *models.TableChangedEvent) {
	l.cache.Invalidate(models.TablePedidos)

	switch event.Operation {
	case models.OpInsert:
		l.center.Push(notify.TypeSuccess, "Novo pedido",
			fmt.Sprintf("Pedido #%s foi criado.", shortID(event.RecordID)), false)
	case models.OpUpdate:
		l.center.Push(notify.TypeInfo, "Pedido atualizado",
			fmt.Sprintf("Status do pedido #%s foi alterado.", shortID(event.RecordID)), false)
	}
}

func (l *Listener) onAuditLogsChange(ctx context.Context, event *models.TableChangedEvent) {
	l.cache.Invalidate(models.TableAuditLogs)
}

// rowName extracts the display name from a row payload, best effort
func rowName(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var row struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &row); err != nil {
		return ""
	}
	return row.Name
}

func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
