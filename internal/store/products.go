package store

import (
	"context"
	"database/sql"
	"fmt"

	"frutbras-service/internal/models"
)

// ListVisibleProducts retrieves visible products ordered by position
func (s *Store) ListVisibleProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE visible = true ORDER BY position ASC")
	return products, err
}

// ListProductsByCategory retrieves visible products in a category ordered by position
func (s *Store) ListProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products WHERE category = $1 AND visible = true ORDER BY position ASC",
		category)
	return products, err
}

// ListAllProducts retrieves every product, hidden ones included, for the admin panel
func (s *Store) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT * FROM products ORDER BY position ASC")
	return products, err
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductBySlug retrieves a visible product by slug. Returns nil when no
// visible product carries the slug.
func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE slug = $1 AND visible = true", slug)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct creates a new product at the end of the display order
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (slug, name, description, price, unit, category, stock, visible, position, images, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM products), $9, $10)
		RETURNING id, position, created_at, updated_at`

	err := s.db.GetContext(ctx, product, query,
		product.Slug, product.Name, product.Description, product.Price, product.Unit,
		product.Category, product.Stock, product.Visible, product.Images, product.Rating)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.recordAudit(ctx, models.TableProducts, models.OpInsert, product.ID, nil, product)
	return nil
}

// UpdateProduct updates all editable product fields
func (s *Store) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	old, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE products
		SET slug = $1, name = $2, description = $3, price = $4, unit = $5,
			category = $6, stock = $7, visible = $8, images = $9, rating = $10,
			updated_at = NOW()
		WHERE id = $11
		RETURNING *`

	var updated models.Product
	err = s.db.GetContext(ctx, &updated, query,
		product.Slug, product.Name, product.Description, product.Price, product.Unit,
		product.Category, product.Stock, product.Visible, product.Images, product.Rating, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.recordAudit(ctx, models.TableProducts, models.OpUpdate, id, old, &updated)
	return &updated, nil
}

// SetProductPosition moves one product to a new display position. Reordering
// issues one call per moved product; each succeeds or fails on its own.
func (s *Store) SetProductPosition(ctx context.Context, id string, position int) error {
	old, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}
	if old.Position == position {
		return nil
	}

	var updated models.Product
	err = s.db.GetContext(ctx, &updated,
		"UPDATE products SET position = $1, updated_at = NOW() WHERE id = $2 RETURNING *",
		position, id)
	if err != nil {
		return fmt.Errorf("failed to set product position: %w", err)
	}

	s.recordAudit(ctx, models.TableProducts, models.OpUpdate, id, old, &updated)
	return nil
}

// SwapProductPositions swaps the display positions of two products within a
// transaction, keeping the position sequence dense.
func (s *Store) SwapProductPositions(ctx context.Context, idA, idB string) error {
	a, err := s.GetProductByID(ctx, idA)
	if err != nil {
		return err
	}
	b, err := s.GetProductByID(ctx, idB)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET position = $1, updated_at = NOW() WHERE id = $2",
		b.Position, idA); err != nil {
		return fmt.Errorf("failed to swap position of %s: %w", idA, err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE products SET position = $1, updated_at = NOW() WHERE id = $2",
		a.Position, idB); err != nil {
		return fmt.Errorf("failed to swap position of %s: %w", idB, err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.recordAudit(ctx, models.TableProducts, models.OpUpdate, idA, a, nil)
	s.recordAudit(ctx, models.TableProducts, models.OpUpdate, idB, b, nil)
	return nil
}

// DeleteProduct deletes a product by ID
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	old, err := s.GetProductByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.recordAudit(ctx, models.TableProducts, models.OpDelete, id, old, nil)
	return nil
}
