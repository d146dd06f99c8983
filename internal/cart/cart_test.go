package cart

import (
	"encoding/json"
	"testing"
	"time"

	"frutbras-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acai() models.Product {
	return models.Product{
		ID:       "prod-acai",
		Slug:     "polpa-acai",
		Name:     "Polpa de Açaí",
		Price:    89.90,
		Unit:     models.UnitPacote,
		Category: models.CategoryPolpas,
		Stock:    20,
		Visible:  true,
	}
}

func tilapia() models.Product {
	return models.Product{
		ID:       "prod-tilapia",
		Slug:     "file-tilapia",
		Name:     "Filé de Tilápia",
		Price:    45.50,
		Unit:     models.UnitKg,
		Category: models.CategoryPescados,
		Stock:    8,
		Visible:  true,
	}
}

func TestAddMergesSameProductAndUnit(t *testing.T) {
	c := New().Add(acai(), 2, models.UnitPacote)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.InDelta(t, 179.80, c.Total, 0.001)
	assert.Equal(t, 2, c.TotalItems)

	c = c.Add(acai(), 1, models.UnitPacote)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
	assert.InDelta(t, 269.70, c.Total, 0.001)
	assert.Equal(t, 3, c.TotalItems)
}

func TestAddSameProductDifferentUnitIsSeparateLine(t *testing.T) {
	c := New().
		Add(acai(), 1, models.UnitPacote).
		Add(acai(), 1, models.UnitCaixa)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.TotalItems)
}

func TestTotalsAlwaysRecomputed(t *testing.T) {
	c := New().
		Add(acai(), 2, models.UnitPacote).
		Add(tilapia(), 1, models.UnitKg)

	assert.InDelta(t, 89.90*2+45.50, c.Total, 0.001)
	assert.Equal(t, 3, c.TotalItems)

	c = c.UpdateQuantity("prod-tilapia", 3)
	assert.InDelta(t, 89.90*2+45.50*3, c.Total, 0.001)
	assert.Equal(t, 5, c.TotalItems)

	c = c.Remove("prod-acai")
	assert.InDelta(t, 45.50*3, c.Total, 0.001)
	assert.Equal(t, 3, c.TotalItems)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := New().Add(acai(), 2, models.UnitPacote)

	c = c.UpdateQuantity("prod-acai", 0)
	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.TotalItems)

	c = New().Add(acai(), 2, models.UnitPacote).UpdateQuantity("prod-acai", -1)
	assert.Empty(t, c.Items)
}

func TestRemoveDropsEveryLineForProduct(t *testing.T) {
	c := New().
		Add(acai(), 1, models.UnitPacote).
		Add(acai(), 1, models.UnitCaixa).
		Add(tilapia(), 1, models.UnitKg)

	c = c.Remove("prod-acai")

	require.Len(t, c.Items, 1)
	assert.Equal(t, "prod-tilapia", c.Items[0].Product.ID)
}

func TestClearKeepsCampaignTag(t *testing.T) {
	c := New().
		WithCampaign("verao2026").
		Add(acai(), 2, models.UnitPacote)

	c = c.Clear()

	assert.Empty(t, c.Items)
	assert.Zero(t, c.Total)
	assert.Zero(t, c.TotalItems)
	assert.Equal(t, "verao2026", c.UTMCampaign)
}

func TestCartJSONRoundTrip(t *testing.T) {
	c := New().
		WithCampaign("instagram").
		Add(acai(), 2, models.UnitPacote)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Cart
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, c.Total, decoded.Total)
	assert.Equal(t, c.TotalItems, decoded.TotalItems)
	assert.Equal(t, c.UTMCampaign, decoded.UTMCampaign)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "prod-acai", decoded.Items[0].Product.ID)
	assert.Equal(t, models.UnitPacote, decoded.Items[0].SelectedOption)
}

func TestSnapshotFreezesLines(t *testing.T) {
	c := New().
		Add(acai(), 2, models.UnitPacote).
		Add(tilapia(), 1, models.UnitKg)

	itens := c.Snapshot()

	require.Len(t, itens, 2)
	assert.Equal(t, "Polpa de Açaí", itens[0].ProductName)
	assert.InDelta(t, 179.80, itens[0].Total, 0.001)
	assert.Equal(t, models.UnitKg, itens[1].Unit)
	assert.InDelta(t, 45.50, itens[1].Total, 0.001)
}

func TestClienteInfoSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	c := New().
		WithCampaign("promo-pescados").
		Add(tilapia(), 2, models.UnitKg)

	info := c.ClienteInfo(models.CustomerInfo{Name: "João Lima", Email: "joao@example.com"}, now)

	assert.Equal(t, "João Lima", info.Name)
	assert.Equal(t, 2, info.TotalItems)
	assert.Equal(t, "2026-03-14T12:00:00Z", info.Timestamp)
	assert.Equal(t, "promo-pescados", info.UTMCampaign)
}
