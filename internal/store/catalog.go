package store

import (
	"context"
	"database/sql"
	"fmt"

	"frutbras-service/internal/models"
)

// ListCategories retrieves all categories ordered by display position
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories,
		"SELECT * FROM categories ORDER BY position ASC")
	return categories, err
}

// GetCategoryByID retrieves a category by ID
func (s *Store) GetCategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := s.db.GetContext(ctx, &category, "SELECT * FROM categories WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("category not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a category's editable fields
func (s *Store) UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	old, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated models.Category
	err = s.db.GetContext(ctx, &updated, `
		UPDATE categories
		SET name = $1, description = $2, image = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING *`,
		category.Name, category.Description, category.Image, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.recordAudit(ctx, models.TableCategories, models.OpUpdate, id, old, &updated)
	return &updated, nil
}

// SwapCategoryPositions swaps the display positions of two categories
func (s *Store) SwapCategoryPositions(ctx context.Context, idA, idB string) error {
	a, err := s.GetCategoryByID(ctx, idA)
	if err != nil {
		return err
	}
	b, err := s.GetCategoryByID(ctx, idB)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE categories SET position = $1, updated_at = NOW() WHERE id = $2",
		b.Position, idA); err != nil {
		return fmt.Errorf("failed to swap position of %s: %w", idA, err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE categories SET position = $1, updated_at = NOW() WHERE id = $2",
		a.Position, idB); err != nil {
		return fmt.Errorf("failed to swap position of %s: %w", idB, err)
	}

	return tx.Commit()
}

// ListVisibleRecipes retrieves visible recipes, newest first, for the storefront
func (s *Store) ListVisibleRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.SelectContext(ctx, &recipes,
		"SELECT * FROM recipes WHERE visible = true ORDER BY created_at DESC")
	return recipes, err
}

// ListAllRecipes retrieves every recipe for the admin panel
func (s *Store) ListAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.SelectContext(ctx, &recipes,
		"SELECT * FROM recipes ORDER BY created_at DESC")
	return recipes, err
}

// GetRecipeByID retrieves a recipe by ID
func (s *Store) GetRecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.GetContext(ctx, &recipe, "SELECT * FROM recipes WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe creates a new recipe
func (s *Store) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	query := `
		INSERT INTO recipes (name, description, image, difficulty, prep_time, servings,
			rating, category, ingredients, instructions, visible, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, recipe, query,
		recipe.Name, recipe.Description, recipe.Image, recipe.Difficulty, recipe.PrepTime,
		recipe.Servings, recipe.Rating, recipe.Category, recipe.Ingredients,
		recipe.Instructions, recipe.Visible, recipe.Featured)
	if err != nil {
		return fmt.Errorf("failed to create recipe: %w", err)
	}

	s.recordAudit(ctx, models.TableRecipes, models.OpInsert, recipe.ID, nil, recipe)
	return nil
}

// UpdateRecipe updates all editable recipe fields
func (s *Store) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) (*models.Recipe, error) {
	old, err := s.GetRecipeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var updated models.Recipe
	err = s.db.GetContext(ctx, &updated, `
		UPDATE recipes
		SET name = $1, description = $2, image = $3, difficulty = $4, prep_time = $5,
			servings = $6, rating = $7, category = $8, ingredients = $9,
			instructions = $10, visible = $11, featured = $12, updated_at = NOW()
		WHERE id = $13
		RETURNING *`,
		recipe.Name, recipe.Description, recipe.Image, recipe.Difficulty, recipe.PrepTime,
		recipe.Servings, recipe.Rating, recipe.Category, recipe.Ingredients,
		recipe.Instructions, recipe.Visible, recipe.Featured, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.recordAudit(ctx, models.TableRecipes, models.OpUpdate, id, old, &updated)
	return &updated, nil
}

// DeleteRecipe deletes a recipe by ID
func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	old, err := s.GetRecipeByID(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1", id); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	s.recordAudit(ctx, models.TableRecipes, models.OpDelete, id, old, nil)
	return nil
}
