package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

// Product represents a catalog product. Prices are in BRL.
type Product struct {
	ID          string         `db:"id" json:"id"`
	Slug        string         `db:"slug" json:"slug"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Price       float64        `db:"price" json:"price"`
	Unit        string         `db:"unit" json:"unit"`
	Category    string         `db:"category" json:"category"`
	Stock       int            `db:"stock" json:"stock"`
	Visible     bool           `db:"visible" json:"visible"`
	Position    int            `db:"position" json:"position"`
	Images      pq.StringArray `db:"images" json:"images"`
	Rating      float64        `db:"rating" json:"rating"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// Sale units
const (
	UnitPacote  = "pacote"
	UnitCaixa   = "caixa"
	UnitKg      = "kg"
	UnitUnidade = "unidade"
)

// Product categories
const (
	CategoryPolpas           = "polpas"
	CategoryFrutasCongeladas = "frutas-congeladas"
	CategoryGeloSaborizado   = "gelo-saborizado"
	CategoryPescados         = "pescados"
)

// Category represents a display category. Position is a dense sequence
// maintained via pairwise swaps.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Image       string    `db:"image" json:"image"`
	Position    int       `db:"position" json:"position"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Recipe represents a recipe published on the storefront
type Recipe struct {
	ID           string         `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Description  string         `db:"description" json:"description"`
	Image        string         `db:"image" json:"image"`
	Difficulty   string         `db:"difficulty" json:"difficulty"`
	PrepTime     string         `db:"prep_time" json:"prep_time"`
	Servings     string         `db:"servings" json:"servings"`
	Rating       float64        `db:"rating" json:"rating"`
	Category     string         `db:"category" json:"category"`
	Ingredients  pq.StringArray `db:"ingredients" json:"ingredients"`
	Instructions pq.StringArray `db:"instructions" json:"instructions"`
	Visible      bool           `db:"visible" json:"visible"`
	Featured     bool           `db:"featured" json:"featured"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Recipe difficulties
const (
	DifficultyFacil   = "Fácil"
	DifficultyMedio   = "Médio"
	DifficultyDificil = "Difícil"
)

// CustomerInfo is the customer snapshot embedded into a pedido. It is never
// persisted on its own.
type CustomerInfo struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Document     string `json:"document"`
	ZipCode      string `json:"zipCode"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// ClienteInfo is CustomerInfo as stored on the pedido row, enriched with
// cart aggregates and the optional campaign tag captured at load time.
type ClienteInfo struct {
	CustomerInfo
	TotalItems  int    `json:"totalItems"`
	Timestamp   string `json:"timestamp"`
	UTMCampaign string `json:"utmCampaign,omitempty"`
}

// PedidoItem is a line-item snapshot frozen at checkout time
type PedidoItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Pedido represents a submitted order. ClienteInfo and Itens are JSON
// columns holding the checkout-time snapshots.
type Pedido struct {
	ID           string         `db:"id" json:"id"`
	NumeroPedido string         `db:"numero_pedido" json:"numero_pedido"`
	ClienteInfo  types.JSONText `db:"cliente_info" json:"cliente_info"`
	Itens        types.JSONText `db:"itens" json:"itens"`
	ValorTotal   float64        `db:"valor_total" json:"valor_total"`
	Status       string         `db:"status" json:"status"`
	UserID       *string        `db:"user_id" json:"user_id,omitempty"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// Pedido statuses
const (
	PedidoStatusPendente   = "pendente"
	PedidoStatusConfirmado = "confirmado"
	PedidoStatusEntregue   = "entregue"
	PedidoStatusCancelado  = "cancelado"
)

// ValidPedidoStatus reports whether s is a known pedido status
func ValidPedidoStatus(s string) bool {
	switch s {
	case PedidoStatusPendente, PedidoStatusConfirmado, PedidoStatusEntregue, PedidoStatusCancelado:
		return true
	}
	return false
}

// Settings is the single-row site configuration. Structured content blocks
// are JSON columns edited whole by the admin settings forms.
type Settings struct {
	ID                  string         `db:"id" json:"id"`
	SiteName            string         `db:"site_name" json:"site_name"`
	Logo                string         `db:"logo" json:"logo"`
	HeroImageURL        string         `db:"hero_image_url" json:"hero_image_url"`
	RecipesHeroImageURL string         `db:"recipes_hero_image_url" json:"recipes_hero_image_url"`
	WhatsApp            string         `db:"whatsapp" json:"whatsapp"`
	Email               string         `db:"email" json:"email"`
	Phone               string         `db:"phone" json:"phone"`
	Colors              types.JSONText `db:"colors" json:"colors"`
	SEODefault          types.JSONText `db:"seo_default" json:"seo_default"`
	PaymentMethods      types.JSONText `db:"payment_methods" json:"payment_methods"`
	DeliveryFees        types.JSONText `db:"delivery_fees" json:"delivery_fees"`
	AboutPageContent    types.JSONText `db:"about_page_content" json:"about_page_content"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updated_at"`
}

// AuditLog is one append-only audit row recorded on every mutation.
// The application only ever reads these back.
type AuditLog struct {
	ID        string         `db:"id" json:"id"`
	TableName string         `db:"table_name" json:"table_name"`
	Operation string         `db:"operation" json:"operation"`
	RecordID  string         `db:"record_id" json:"record_id"`
	OldData   types.JSONText `db:"old_data" json:"old_data,omitempty"`
	NewData   types.JSONText `db:"new_data" json:"new_data,omitempty"`
	UserEmail *string        `db:"user_email" json:"user_email,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
