package service

import (
	"context"
	"fmt"

	"frutbras-service/internal/cart"
	"frutbras-service/internal/models"
	"frutbras-service/internal/store"
	"frutbras-service/internal/util"
)

// CartService applies cart transitions for a session: load, mutate through
// the pure reducer, persist. Quantities are clamped to at least 1 on add.
type CartService struct {
	sessions *cart.Sessions
	store    *store.Store
}

// NewCartService creates a new cart service
func NewCartService(sessions *cart.Sessions, st *store.Store) *CartService {
	return &CartService{sessions: sessions, store: st}
}

// Get returns the session's cart, applying a utm_campaign override when the
// page load carried one.
func (s *CartService) Get(ctx context.Context, sessionID, utmCampaign string) (cart.Cart, error) {
	c, err := s.sessions.Load(ctx, sessionID, utmCampaign)
	if err != nil {
		return cart.New(), err
	}
	if utmCampaign != "" {
		// Persist the override so later transitions and reloads keep it
		if err := s.sessions.Save(ctx, sessionID, c); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Add puts quantity of a product into the cart under the chosen sale unit
func (s *CartService) Add(ctx context.Context, sessionID, utmCampaign, productID string, quantity int, option string) (cart.Cart, error) {
	if !validUnit(option) {
		return cart.New(), fmt.Errorf("unknown sale unit: %s", option)
	}
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return cart.New(), err
	}

	c, err := s.sessions.Load(ctx, sessionID, utmCampaign)
	if err != nil {
		return cart.New(), err
	}

	c = c.Add(*product, quantity, option)
	if err := s.sessions.Save(ctx, sessionID, c); err != nil {
		return c, err
	}

	util.CartOperationsTotal.WithLabelValues("add").Inc()
	return c, nil
}

// Remove drops every line for the product
func (s *CartService) Remove(ctx context.Context, sessionID, productID string) (cart.Cart, error) {
	c, err := s.sessions.Load(ctx, sessionID, "")
	if err != nil {
		return cart.New(), err
	}

	c = c.Remove(productID)
	if err := s.sessions.Save(ctx, sessionID, c); err != nil {
		return c, err
	}

	util.CartOperationsTotal.WithLabelValues("remove").Inc()
	return c, nil
}

// UpdateQuantity sets the quantity for the product's lines; zero or below removes
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (cart.Cart, error) {
	c, err := s.sessions.Load(ctx, sessionID, "")
	if err != nil {
		return cart.New(), err
	}

	c = c.UpdateQuantity(productID, quantity)
	if err := s.sessions.Save(ctx, sessionID, c); err != nil {
		return c, err
	}

	util.CartOperationsTotal.WithLabelValues("update_quantity").Inc()
	return c, nil
}

// Clear empties the cart, keeping the campaign tag
func (s *CartService) Clear(ctx context.Context, sessionID string) (cart.Cart, error) {
	c, err := s.sessions.Load(ctx, sessionID, "")
	if err != nil {
		return cart.New(), err
	}

	c = c.Clear()
	if err := s.sessions.Save(ctx, sessionID, c); err != nil {
		return c, err
	}

	util.CartOperationsTotal.WithLabelValues("clear").Inc()
	return c, nil
}

func validUnit(option string) bool {
	switch option {
	case models.UnitPacote, models.UnitCaixa, models.UnitKg, models.UnitUnidade:
		return true
	}
	return false
}
