package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frutbras-service/internal/broker"
	"frutbras-service/internal/cart"
	"frutbras-service/internal/models"
	"frutbras-service/internal/redisclient"
	"frutbras-service/internal/store"
	"frutbras-service/internal/util"

	"go.uber.org/zap"
)

// PedidoService handles checkout and the admin's pedido management
type PedidoService struct {
	store   *store.Store
	redis   *redisclient.Client
	changes *broker.ChangePublisher
	carts   *cart.Sessions
	logger  *zap.Logger
}

// NewPedidoService creates a new pedido service
func NewPedidoService(st *store.Store, redis *redisclient.Client, changes *broker.ChangePublisher, carts *cart.Sessions) *PedidoService {
	return &PedidoService{
		store:   st,
		redis:   redis,
		changes: changes,
		carts:   carts,
		logger:  util.GetLogger(),
	}
}

// BuildPedido freezes a cart and customer info into the pedido payload. An
// empty cart still produces a valid pedido with no lines and a zero total.
func BuildPedido(c cart.Cart, info models.CustomerInfo, now time.Time) (*models.Pedido, error) {
	clienteInfo, err := json.Marshal(c.ClienteInfo(info, now))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cliente info: %w", err)
	}

	itens, err := json.Marshal(c.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal itens: %w", err)
	}

	return &models.Pedido{
		ClienteInfo: clienteInfo,
		Itens:       itens,
		ValorTotal:  c.Total,
		Status:      models.PedidoStatusPendente,
	}, nil
}

// SubmitOrder validates the customer info, snapshots the session's cart into
// a pedido and records it. The cart is cleared only after the pedido is
// stored; any failure leaves the cart untouched.
func (s *PedidoService) SubmitOrder(ctx context.Context, sessionID string, info models.CustomerInfo) (*models.Pedido, error) {
	ctx, span := util.StartSpan(ctx, "PedidoService.SubmitOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	if err := ValidateCustomerInfo(info); err != nil {
		util.PedidosFailedTotal.WithLabelValues("invalid_customer_info").Inc()
		return nil, err
	}

	c, err := s.carts.Load(ctx, sessionID, "")
	if err != nil {
		util.PedidosFailedTotal.WithLabelValues("cart_load").Inc()
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	pedido, err := BuildPedido(c, info, time.Now())
	if err != nil {
		util.PedidosFailedTotal.WithLabelValues("snapshot").Inc()
		return nil, err
	}

	numero, err := s.redis.NextPedidoNumber(ctx)
	if err != nil {
		util.PedidosFailedTotal.WithLabelValues("numero").Inc()
		return nil, err
	}
	pedido.NumeroPedido = numero

	if err := s.store.CreatePedido(ctx, pedido); err != nil {
		util.PedidosFailedTotal.WithLabelValues("db_error").Inc()
		return nil, err
	}

	util.PedidosCreatedTotal.Inc()
	s.logger.Info("Pedido created",
		zap.String("pedido_id", pedido.ID),
		zap.String("numero_pedido", pedido.NumeroPedido),
		zap.Float64("valor_total", pedido.ValorTotal))

	s.publishChange(ctx, models.OpInsert, pedido.ID, nil, pedido)

	cleared := c.Clear()
	if err := s.carts.Save(ctx, sessionID, cleared); err != nil {
		// The pedido is recorded; a stale cart snapshot is the lesser harm.
		s.logger.Error("Failed to clear cart after checkout",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	return pedido, nil
}

// GetPedido retrieves a pedido by ID, or nil
func (s *PedidoService) GetPedido(ctx context.Context, id string) (*models.Pedido, error) {
	return s.store.GetPedidoByID(ctx, id)
}

// ListPedidos retrieves all pedidos, optionally filtered by status
func (s *PedidoService) ListPedidos(ctx context.Context, status string) ([]models.Pedido, error) {
	if status == "" {
		return s.store.ListPedidos(ctx)
	}
	if !models.ValidPedidoStatus(status) {
		return nil, fmt.Errorf("unknown pedido status: %s", status)
	}
	return s.store.ListPedidosByStatus(ctx, status)
}

// UpdateStatus sets a pedido's status, the only field the admin may edit
func (s *PedidoService) UpdateStatus(ctx context.Context, id, status string) (*models.Pedido, error) {
	if !models.ValidPedidoStatus(status) {
		return nil, fmt.Errorf("unknown pedido status: %s", status)
	}

	updated, err := s.store.UpdatePedidoStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	util.PedidoStatusUpdatesTotal.WithLabelValues(status).Inc()
	s.publishChange(ctx, models.OpUpdate, id, nil, updated)
	return updated, nil
}

// DeletePedido removes a pedido on explicit admin request
func (s *PedidoService) DeletePedido(ctx context.Context, id string) error {
	if err := s.store.DeletePedido(ctx, id); err != nil {
		return err
	}

	s.publishChange(ctx, models.OpDelete, id, nil, nil)
	return nil
}

func (s *PedidoService) publishChange(ctx context.Context, op, recordID string, old, new interface{}) {
	if s.changes == nil {
		return
	}
	if err := s.changes.PublishTableChange(ctx, models.TablePedidos, op, recordID, old, new); err != nil {
		s.logger.Error("Failed to publish pedido change",
			zap.String("operation", op),
			zap.Error(err))
	}
}
