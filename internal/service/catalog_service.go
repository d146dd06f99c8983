package service

import (
	"context"
	"fmt"

	"frutbras-service/internal/broker"
	"frutbras-service/internal/cache"
	"frutbras-service/internal/models"
	"frutbras-service/internal/store"
	"frutbras-service/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves products, categories, recipes and settings through
// the query cache. Reads go cache-first; mutations hit the store, then
// publish a change event so every instance invalidates and refetches.
type CatalogService struct {
	store   *store.Store
	cache   *cache.QueryCache
	changes *broker.ChangePublisher
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store, qc *cache.QueryCache, changes *broker.ChangePublisher) *CatalogService {
	return &CatalogService{
		store:   st,
		cache:   qc,
		changes: changes,
		logger:  util.GetLogger(),
	}
}

// GetVisibleProducts returns the storefront product list, position order
func (s *CatalogService) GetVisibleProducts(ctx context.Context) ([]models.Product, error) {
	key := cache.Key(models.TableProducts)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Product), nil
	}

	products, err := s.store.ListVisibleProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, products)
	return products, nil
}

// GetProductsByCategory returns visible products of one category
func (s *CatalogService) GetProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	key := cache.Key(models.TableProducts, "category", category)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Product), nil
	}

	products, err := s.store.ListProductsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, products)
	return products, nil
}

// GetAllProducts returns every product for the admin panel
func (s *CatalogService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	key := cache.Key(models.TableProducts, "all")
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Product), nil
	}

	products, err := s.store.ListAllProducts(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, products)
	return products, nil
}

// GetProductBySlug returns a visible product by slug, or nil
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	key := cache.Key(models.TableProducts, "slug", slug)
	if v, ok := s.cache.Get(key); ok {
		return v.(*models.Product), nil
	}

	product, err := s.store.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, product)
	return product, nil
}

// CreateProduct creates a product and announces the change
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableProducts)
	s.publishChange(ctx, models.TableProducts, models.OpInsert, product.ID, nil, product)
	return nil
}

// UpdateProduct updates a product and announces the change
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, product *models.Product) (*models.Product, error) {
	if err := validateProduct(product); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateProduct(ctx, id, product)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(models.TableProducts)
	s.publishChange(ctx, models.TableProducts, models.OpUpdate, id, nil, updated)
	return updated, nil
}

// DeleteProduct deletes a product and announces the change
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableProducts)
	s.publishChange(ctx, models.TableProducts, models.OpDelete, id, nil, nil)
	return nil
}

// ReorderProducts applies the given display order by issuing one position
// update per moved product. Updates succeed or fail independently; the first
// error is reported but earlier updates stay applied.
func (s *CatalogService) ReorderProducts(ctx context.Context, orderedIDs []string) error {
	var firstErr error
	for position, id := range orderedIDs {
		if err := s.store.SetProductPosition(ctx, id, position); err != nil {
			s.logger.Error("Failed to reposition product",
				zap.String("product_id", id),
				zap.Int("position", position),
				zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.publishChange(ctx, models.TableProducts, models.OpUpdate, id, nil, nil)
	}
	s.cache.Invalidate(models.TableProducts)
	return firstErr
}

// SwapProducts swaps the display positions of two products
func (s *CatalogService) SwapProducts(ctx context.Context, idA, idB string) error {
	if err := s.store.SwapProductPositions(ctx, idA, idB); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableProducts)
	s.publishChange(ctx, models.TableProducts, models.OpUpdate, idA, nil, nil)
	s.publishChange(ctx, models.TableProducts, models.OpUpdate, idB, nil, nil)
	return nil
}

// GetCategories returns all categories in display order
func (s *CatalogService) GetCategories(ctx context.Context) ([]models.Category, error) {
	key := cache.Key(models.TableCategories)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Category), nil
	}

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, categories)
	return categories, nil
}

// UpdateCategory updates a category and announces the change
func (s *CatalogService) UpdateCategory(ctx context.Context, id string, category *models.Category) (*models.Category, error) {
	updated, err := s.store.UpdateCategory(ctx, id, category)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(models.TableCategories)
	s.publishChange(ctx, models.TableCategories, models.OpUpdate, id, nil, updated)
	return updated, nil
}

// SwapCategories swaps the display positions of two categories
func (s *CatalogService) SwapCategories(ctx context.Context, idA, idB string) error {
	if err := s.store.SwapCategoryPositions(ctx, idA, idB); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableCategories)
	s.publishChange(ctx, models.TableCategories, models.OpUpdate, idA, nil, nil)
	s.publishChange(ctx, models.TableCategories, models.OpUpdate, idB, nil, nil)
	return nil
}

// GetVisibleRecipes returns the storefront recipe list
func (s *CatalogService) GetVisibleRecipes(ctx context.Context) ([]models.Recipe, error) {
	key := cache.Key(models.TableRecipes)
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Recipe), nil
	}

	recipes, err := s.store.ListVisibleRecipes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, recipes)
	return recipes, nil
}

// GetAllRecipes returns every recipe for the admin panel
func (s *CatalogService) GetAllRecipes(ctx context.Context) ([]models.Recipe, error) {
	key := cache.Key(models.TableRecipes, "all")
	if v, ok := s.cache.Get(key); ok {
		return v.([]models.Recipe), nil
	}

	recipes, err := s.store.ListAllRecipes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, recipes)
	return recipes, nil
}

// CreateRecipe creates a recipe and announces the change
func (s *CatalogService) CreateRecipe(ctx context.Context, recipe *models.Recipe) error {
	if err := s.store.CreateRecipe(ctx, recipe); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableRecipes)
	s.publishChange(ctx, models.TableRecipes, models.OpInsert, recipe.ID, nil, recipe)
	return nil
}

// UpdateRecipe updates a recipe and announces the change
func (s *CatalogService) UpdateRecipe(ctx context.Context, id string, recipe *models.Recipe) (*models.Recipe, error) {
	updated, err := s.store.UpdateRecipe(ctx, id, recipe)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(models.TableRecipes)
	s.publishChange(ctx, models.TableRecipes, models.OpUpdate, id, nil, updated)
	return updated, nil
}

// DeleteRecipe deletes a recipe and announces the change
func (s *CatalogService) DeleteRecipe(ctx context.Context, id string) error {
	if err := s.store.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(models.TableRecipes)
	s.publishChange(ctx, models.TableRecipes, models.OpDelete, id, nil, nil)
	return nil
}

// GetSettings returns the site settings row, or nil before first configuration
func (s *CatalogService) GetSettings(ctx context.Context) (*models.Settings, error) {
	key := cache.Key(models.TableSettings)
	if v, ok := s.cache.Get(key); ok {
		return v.(*models.Settings), nil
	}

	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, settings)
	return settings, nil
}

// UpdateSettings writes the settings row and announces the change
func (s *CatalogService) UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	updated, err := s.store.UpdateSettings(ctx, settings)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(models.TableSettings)
	s.publishChange(ctx, models.TableSettings, models.OpUpdate, updated.ID, nil, updated)
	return updated, nil
}

// GetAuditLogs returns audit rows for the admin viewer
func (s *CatalogService) GetAuditLogs(ctx context.Context, filter store.AuditLogFilter) ([]models.AuditLog, error) {
	return s.store.ListAuditLogs(ctx, filter)
}

// publishChange announces a mutation on the change feed. Publish failures are
// logged and swallowed: the mutation itself already succeeded, and staleness
// is bounded by the next change or restart.
func (s *CatalogService) publishChange(ctx context.Context, table, op, recordID string, old, new interface{}) {
	if s.changes == nil {
		return
	}
	if err := s.changes.PublishTableChange(ctx, table, op, recordID, old, new); err != nil {
		s.logger.Error("Failed to publish table change",
			zap.String("table", table),
			zap.String("operation", op),
			zap.Error(err))
	}
}

func validateProduct(p *models.Product) error {
	if p.Name == "" {
		return fmt.Errorf("product name is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product price must not be negative")
	}
	if p.Stock < 0 {
		return fmt.Errorf("product stock must not be negative")
	}
	return nil
}
