package cart

import (
	"time"

	"frutbras-service/internal/models"
)

// Item is one cart line: a product, a chosen sale unit and a quantity
type Item struct {
	Product        models.Product `json:"product"`
	Quantity       int            `json:"quantity"`
	SelectedOption string         `json:"selectedOption"`
}

// Cart is the full cart state. Total and TotalItems are always recomputed
// from the lines, never adjusted incrementally. UTMCampaign is the campaign
// tag captured from the page URL; it survives Clear.
type Cart struct {
	Items       []Item  `json:"items"`
	Total       float64 `json:"total"`
	TotalItems  int     `json:"totalItems"`
	UTMCampaign string  `json:"utmCampaign,omitempty"`
}

// New returns an empty cart
func New() Cart {
	return Cart{Items: []Item{}}
}

// Add merges quantity into an existing line with the same product and sale
// unit, or appends a new line. Callers clamp quantity to at least 1.
func (c Cart) Add(product models.Product, quantity int, option string) Cart {
	items := make([]Item, len(c.Items))
	copy(items, c.Items)

	merged := false
	for i := range items {
		if items[i].Product.ID == product.ID && items[i].SelectedOption == option {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{Product: product, Quantity: quantity, SelectedOption: option})
	}

	return c.withItems(items)
}

// Remove drops every line for the given product id
func (c Cart) Remove(productID string) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, item := range c.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}
	return c.withItems(items)
}

// UpdateQuantity sets the quantity on every line for the product. A quantity
// of zero or below behaves as Remove.
func (c Cart) UpdateQuantity(productID string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(productID)
	}

	items := make([]Item, len(c.Items))
	copy(items, c.Items)
	for i := range items {
		if items[i].Product.ID == productID {
			items[i].Quantity = quantity
		}
	}
	return c.withItems(items)
}

// Clear empties the cart. The campaign tag is kept so a follow-up order from
// the same visit still carries it.
func (c Cart) Clear() Cart {
	return c.withItems([]Item{})
}

// WithCampaign returns the cart with the campaign tag set. Used when a
// utm_campaign URL value overrides whatever was persisted.
func (c Cart) WithCampaign(tag string) Cart {
	c.UTMCampaign = tag
	return c
}

func (c Cart) withItems(items []Item) Cart {
	total := 0.0
	totalItems := 0
	for _, item := range items {
		total += item.Product.Price * float64(item.Quantity)
		totalItems += item.Quantity
	}
	c.Items = items
	c.Total = total
	c.TotalItems = totalItems
	return c
}

// Snapshot freezes the cart lines into the pedido item shape
func (c Cart) Snapshot() []models.PedidoItem {
	itens := make([]models.PedidoItem, 0, len(c.Items))
	for _, item := range c.Items {
		itens = append(itens, models.PedidoItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			Unit:        item.SelectedOption,
			Price:       item.Product.Price,
			Total:       item.Product.Price * float64(item.Quantity),
		})
	}
	return itens
}

// ClienteInfo builds the customer snapshot embedded into a pedido
func (c Cart) ClienteInfo(info models.CustomerInfo, now time.Time) models.ClienteInfo {
	return models.ClienteInfo{
		CustomerInfo: info,
		TotalItems:   c.TotalItems,
		Timestamp:    now.UTC().Format(time.RFC3339),
		UTMCampaign:  c.UTMCampaign,
	}
}
