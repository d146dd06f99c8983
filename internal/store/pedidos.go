package store

import (
	"context"
	"database/sql"
	"fmt"

	"frutbras-service/internal/models"
)

// CreatePedido inserts a submitted order with its checkout-time snapshots
func (s *Store) CreatePedido(ctx context.Context, pedido *models.Pedido) error {
	query := `
		INSERT INTO pedidos (numero_pedido, cliente_info, itens, valor_total, status, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, pedido, query,
		pedido.NumeroPedido, pedido.ClienteInfo, pedido.Itens,
		pedido.ValorTotal, pedido.Status, pedido.UserID)
	if err != nil {
		return fmt.Errorf("failed to create pedido: %w", err)
	}

	s.recordAudit(ctx, models.TablePedidos, models.OpInsert, pedido.ID, nil, pedido)
	return nil
}

// GetPedidoByID retrieves a pedido by ID. Returns nil when not found.
func (s *Store) GetPedidoByID(ctx context.Context, id string) (*models.Pedido, error) {
	var pedido models.Pedido
	err := s.db.GetContext(ctx, &pedido, "SELECT * FROM pedidos WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pedido, nil
}

// ListPedidos retrieves all pedidos, newest first
func (s *Store) ListPedidos(ctx context.Context) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := s.db.SelectContext(ctx, &pedidos,
		"SELECT * FROM pedidos ORDER BY created_at DESC")
	return pedidos, err
}

// ListPedidosByStatus retrieves pedidos with a given status, newest first
func (s *Store) ListPedidosByStatus(ctx context.Context, status string) ([]models.Pedido, error) {
	var pedidos []models.Pedido
	err := s.db.SelectContext(ctx, &pedidos,
		"SELECT * FROM pedidos WHERE status = $1 ORDER BY created_at DESC", status)
	return pedidos, err
}

// UpdatePedidoStatus is the only mutation the admin performs on a pedido
func (s *Store) UpdatePedidoStatus(ctx context.Context, id, status string) (*models.Pedido, error) {
	old, err := s.GetPedidoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if old == nil {
		return nil, fmt.Errorf("pedido not found: %s", id)
	}

	var updated models.Pedido
	err = s.db.GetContext(ctx, &updated,
		"UPDATE pedidos SET status = $1, updated_at = NOW() WHERE id = $2 RETURNING *",
		status, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update pedido status: %w", err)
	}

	s.recordAudit(ctx, models.TablePedidos, models.OpUpdate, id, old, &updated)
	return &updated, nil
}

// DeletePedido removes a pedido. Only reachable through an explicit admin action.
func (s *Store) DeletePedido(ctx context.Context, id string) error {
	old, err := s.GetPedidoByID(ctx, id)
	if err != nil {
		return err
	}
	if old == nil {
		return fmt.Errorf("pedido not found: %s", id)
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM pedidos WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete pedido: %w", err)
	}

	s.recordAudit(ctx, models.TablePedidos, models.OpDelete, id, old, nil)
	return nil
}
