package service

import (
	"encoding/json"
	"testing"
	"time"

	"frutbras-service/internal/cart"
	"frutbras-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPedidoFreezesCart(t *testing.T) {
	product := models.Product{
		ID:    "prod-acai",
		Name:  "Polpa de Açaí",
		Price: 89.90,
		Unit:  models.UnitPacote,
	}
	c := cart.New().
		WithCampaign("verao2026").
		Add(product, 3, models.UnitPacote)

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	pedido, err := BuildPedido(c, validInfo(), now)
	require.NoError(t, err)

	assert.InDelta(t, 269.70, pedido.ValorTotal, 0.001)
	assert.Equal(t, models.PedidoStatusPendente, pedido.Status)

	var itens []models.PedidoItem
	require.NoError(t, json.Unmarshal(pedido.Itens, &itens))
	require.Len(t, itens, 1)
	assert.Equal(t, "prod-acai", itens[0].ProductID)
	assert.Equal(t, 3, itens[0].Quantity)
	assert.InDelta(t, 269.70, itens[0].Total, 0.001)

	var info models.ClienteInfo
	require.NoError(t, json.Unmarshal(pedido.ClienteInfo, &info))
	assert.Equal(t, "Maria Souza", info.Name)
	assert.Equal(t, 3, info.TotalItems)
	assert.Equal(t, "verao2026", info.UTMCampaign)
	assert.Equal(t, "2026-03-14T12:00:00Z", info.Timestamp)
}

func TestBuildPedidoEmptyCart(t *testing.T) {
	// An empty cart is still a valid pedido: no lines, zero total
	pedido, err := BuildPedido(cart.New(), validInfo(), time.Now())
	require.NoError(t, err)

	assert.Zero(t, pedido.ValorTotal)
	assert.Equal(t, models.PedidoStatusPendente, pedido.Status)

	var itens []models.PedidoItem
	require.NoError(t, json.Unmarshal(pedido.Itens, &itens))
	assert.Empty(t, itens)
}
