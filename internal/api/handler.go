package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"frutbras-service/internal/models"
	"frutbras-service/internal/notify"
	"frutbras-service/internal/realtime"
	"frutbras-service/internal/service"
	"frutbras-service/internal/store"
	"frutbras-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Session carts are keyed by this header; the storefront sends a random id
// it keeps alongside its local cart copy.
const sessionHeader = "X-Cart-Session"

// Handler contains HTTP handlers
type Handler struct {
	catalog  *service.CatalogService
	pedidos  *service.PedidoService
	carts    *service.CartService
	cep      *service.CEPClient
	center   *notify.Center
	listener *realtime.Listener
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalog *service.CatalogService,
	pedidos *service.PedidoService,
	carts *service.CartService,
	cep *service.CEPClient,
	center *notify.Center,
	listener *realtime.Listener,
) *Handler {
	return &Handler{
		catalog:  catalog,
		pedidos:  pedidos,
		carts:    carts,
		cep:      cep,
		center:   center,
		listener: listener,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.GET("/products/slug/:slug", h.getProductBySlug)
		v1.GET("/categories", h.listCategories)
		v1.GET("/recipes", h.listRecipes)
		v1.GET("/settings", h.getSettings)
		v1.GET("/cep/:cep", h.lookupCEP)

		v1.GET("/cart", h.getCart)
		v1.POST("/cart/items", h.addCartItem)
		v1.PUT("/cart/items/:productId", h.updateCartItem)
		v1.DELETE("/cart/items/:productId", h.removeCartItem)
		v1.DELETE("/cart", h.clearCart)
		v1.POST("/checkout", h.checkout)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(actorMiddleware())
	{
		admin.GET("/products", h.adminListProducts)
		admin.POST("/products", h.createProduct)
		admin.PUT("/products/:id", h.updateProduct)
		admin.DELETE("/products/:id", h.deleteProduct)
		admin.POST("/products/reorder", h.reorderProducts)
		admin.POST("/products/swap", h.swapProducts)

		admin.PUT("/categories/:id", h.updateCategory)
		admin.POST("/categories/swap", h.swapCategories)

		admin.GET("/recipes", h.adminListRecipes)
		admin.POST("/recipes", h.createRecipe)
		admin.PUT("/recipes/:id", h.updateRecipe)
		admin.DELETE("/recipes/:id", h.deleteRecipe)

		admin.GET("/pedidos", h.listPedidos)
		admin.GET("/pedidos/:id", h.getPedido)
		admin.PUT("/pedidos/:id/status", h.updatePedidoStatus)
		admin.DELETE("/pedidos/:id", h.deletePedido)

		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.updateSettings)

		admin.GET("/audit-logs", h.listAuditLogs)
		admin.GET("/notifications", h.listNotifications)
		admin.DELETE("/notifications/:id", h.dismissNotification)
		admin.GET("/status", h.connectionStatus)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	var (
		products []models.Product
		err      error
	)

	if category := c.Query("category"); category != "" {
		products, err = h.catalog.GetProductsByCategory(c.Request.Context(), category)
	} else {
		products, err = h.catalog.GetVisibleProducts(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *Handler) getProductBySlug(c *gin.Context) {
	product, err := h.catalog.GetProductBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get product",
			"details": err.Error(),
		})
		return
	}
	if product == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) listCategories(c *gin.Context) {
	categories, err := h.catalog.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list categories",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) listRecipes(c *gin.Context) {
	recipes, err := h.catalog.GetVisibleRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list recipes",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.catalog.GetSettings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// lookupCEP resolves a postal code. A failed lookup is not an error: the
// response carries found=false and empty fields for manual entry.
func (h *Handler) lookupCEP(c *gin.Context) {
	address, found := h.cep.Lookup(c.Request.Context(), c.Param("cep"))
	c.JSON(http.StatusOK, gin.H{
		"found":   found,
		"address": address,
	})
}

func (h *Handler) getCart(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.carts.Get(c.Request.Context(), sessionID, c.Query("utm_campaign"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to load cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": result})
}

type addCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
	Option    string `json:"option" binding:"required,oneof=pacote caixa kg unidade"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.carts.Add(c.Request.Context(), sessionID, c.Query("utm_campaign"),
		req.ProductID, req.Quantity, req.Option)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to add item",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": result})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	result, err := h.carts.UpdateQuantity(c.Request.Context(), sessionID, c.Param("productId"), req.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update quantity",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": result})
}

func (h *Handler) removeCartItem(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.carts.Remove(c.Request.Context(), sessionID, c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to remove item",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": result})
}

func (h *Handler) clearCart(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.carts.Clear(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to clear cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"cart": result})
}

func (h *Handler) checkout(c *gin.Context) {
	sessionID, ok := h.sessionID(c)
	if !ok {
		return
	}

	var info models.CustomerInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	pedido, err := h.pedidos.SubmitOrder(c.Request.Context(), sessionID, info)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":  "Validation failed",
				"fields": vErr.Fields,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to submit order",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"pedido": pedido})
}

func (h *Handler) adminListProducts(c *gin.Context) {
	products, err := h.catalog.GetAllProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list products",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

type productRequest struct {
	Slug        string   `json:"slug" binding:"required"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"min=0"`
	Unit        string   `json:"unit" binding:"required,oneof=pacote caixa kg unidade"`
	Category    string   `json:"category" binding:"required,oneof=polpas frutas-congeladas gelo-saborizado pescados"`
	Stock       int      `json:"stock" binding:"min=0"`
	Visible     bool     `json:"visible"`
	Images      []string `json:"images"`
	Rating      float64  `json:"rating"`
}

func (r *productRequest) toModel() *models.Product {
	return &models.Product{
		Slug:        r.Slug,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Unit:        r.Unit,
		Category:    r.Category,
		Stock:       r.Stock,
		Visible:     r.Visible,
		Images:      r.Images,
		Rating:      r.Rating,
	}
}

func (h *Handler) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product := req.toModel()
	if err := h.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) updateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete product",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	ProductIDs []string `json:"product_ids" binding:"required,min=1"`
}

// reorderProducts applies a full display order. Per-item updates are
// independent; a partial failure leaves the successful moves applied.
func (h *Handler) reorderProducts(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalog.ReorderProducts(c.Request.Context(), req.ProductIDs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Reorder partially failed",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

type swapRequest struct {
	IDA string `json:"id_a" binding:"required"`
	IDB string `json:"id_b" binding:"required"`
}

func (h *Handler) swapProducts(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalog.SwapProducts(c.Request.Context(), req.IDA, req.IDB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to swap products",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (h *Handler) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	category, err := h.catalog.UpdateCategory(c.Request.Context(), c.Param("id"), &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update category",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) swapCategories(c *gin.Context) {
	var req swapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := h.catalog.SwapCategories(c.Request.Context(), req.IDA, req.IDB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to swap categories",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) adminListRecipes(c *gin.Context) {
	recipes, err := h.catalog.GetAllRecipes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list recipes",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

type recipeRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=Fácil Médio Difícil"`
	PrepTime     string   `json:"prep_time"`
	Servings     string   `json:"servings"`
	Rating       float64  `json:"rating"`
	Category     string   `json:"category"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Visible      bool     `json:"visible"`
	Featured     bool     `json:"featured"`
}

func (r *recipeRequest) toModel() *models.Recipe {
	return &models.Recipe{
		Name:         r.Name,
		Description:  r.Description,
		Image:        r.Image,
		Difficulty:   r.Difficulty,
		PrepTime:     r.PrepTime,
		Servings:     r.Servings,
		Rating:       r.Rating,
		Category:     r.Category,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		Visible:      r.Visible,
		Featured:     r.Featured,
	}
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	recipe := req.toModel()
	if err := h.catalog.CreateRecipe(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create recipe",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (h *Handler) updateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	recipe, err := h.catalog.UpdateRecipe(c.Request.Context(), c.Param("id"), req.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update recipe",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

func (h *Handler) deleteRecipe(c *gin.Context) {
	if err := h.catalog.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete recipe",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listPedidos(c *gin.Context) {
	pedidos, err := h.pedidos.ListPedidos(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list pedidos",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pedidos": pedidos})
}

func (h *Handler) getPedido(c *gin.Context) {
	pedido, err := h.pedidos.GetPedido(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get pedido",
			"details": err.Error(),
		})
		return
	}
	if pedido == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pedido not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pedido": pedido})
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=pendente confirmado entregue cancelado"`
}

func (h *Handler) updatePedidoStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	pedido, err := h.pedidos.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update pedido status",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pedido": pedido})
}

func (h *Handler) deletePedido(c *gin.Context) {
	if err := h.pedidos.DeletePedido(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to delete pedido",
			"details": err.Error(),
		})
		return
	}

	c.Status(http.StatusNoContent)
}

type settingsRequest struct {
	SiteName            string            `json:"site_name" binding:"required"`
	Logo                string            `json:"logo"`
	HeroImageURL        string            `json:"hero_image_url"`
	RecipesHeroImageURL string            `json:"recipes_hero_image_url"`
	WhatsApp            string            `json:"whatsapp"`
	Email               string            `json:"email" binding:"omitempty,email"`
	Phone               string            `json:"phone"`
	Colors              map[string]string `json:"colors"`
	SEODefault          gin.H             `json:"seo_default"`
	PaymentMethods      []gin.H           `json:"payment_methods"`
	DeliveryFees        []gin.H           `json:"delivery_fees"`
	AboutPageContent    gin.H             `json:"about_page_content"`
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	settings := &models.Settings{
		SiteName:            req.SiteName,
		Logo:                req.Logo,
		HeroImageURL:        req.HeroImageURL,
		RecipesHeroImageURL: req.RecipesHeroImageURL,
		WhatsApp:            req.WhatsApp,
		Email:               req.Email,
		Phone:               req.Phone,
	}
	if err := marshalJSONFields(settings, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid settings content",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.catalog.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to update settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": updated})
}

// marshalJSONFields packs the structured settings blocks into the row's JSON
// columns. Absent blocks become JSON null, which the store writes as-is.
func marshalJSONFields(settings *models.Settings, req settingsRequest) error {
	pack := func(dst *types.JSONText, src interface{}) error {
		b, err := json.Marshal(src)
		if err != nil {
			return err
		}
		*dst = types.JSONText(b)
		return nil
	}

	if err := pack(&settings.Colors, req.Colors); err != nil {
		return err
	}
	if err := pack(&settings.SEODefault, req.SEODefault); err != nil {
		return err
	}
	if err := pack(&settings.PaymentMethods, req.PaymentMethods); err != nil {
		return err
	}
	if err := pack(&settings.DeliveryFees, req.DeliveryFees); err != nil {
		return err
	}
	return pack(&settings.AboutPageContent, req.AboutPageContent)
}

func (h *Handler) listAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	logs, err := h.catalog.GetAuditLogs(c.Request.Context(), store.AuditLogFilter{
		Table:     c.Query("table"),
		Operation: c.Query("operation"),
		Limit:     limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to list audit logs",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"audit_logs": logs})
}

func (h *Handler) listNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notifications": h.center.List()})
}

func (h *Handler) dismissNotification(c *gin.Context) {
	h.center.Remove(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) connectionStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"online": h.listener.Online()})
}

func (h *Handler) sessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing " + sessionHeader + " header",
		})
		return "", false
	}
	return sessionID, true
}

// actorMiddleware records the acting admin for the audit trail. Admin
// authentication itself is handled upstream; the gateway forwards the
// verified identity in this header.
func actorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if email := c.GetHeader("X-Admin-Email"); email != "" {
			c.Request = c.Request.WithContext(store.WithActor(c.Request.Context(), email))
		}
		c.Next()
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
