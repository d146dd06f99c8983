package store

import (
	"context"
	"database/sql"
	"fmt"

	"frutbras-service/internal/models"
)

// GetSettings retrieves the single settings row. Returns nil when the site
// has never been configured.
func (s *Store) GetSettings(ctx context.Context) (*models.Settings, error) {
	var settings models.Settings
	err := s.db.GetContext(ctx, &settings, "SELECT * FROM settings LIMIT 1")
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings writes the settings row, creating it when absent
func (s *Store) UpdateSettings(ctx context.Context, settings *models.Settings) (*models.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if current == nil {
		var created models.Settings
		err = s.db.GetContext(ctx, &created, `
			INSERT INTO settings (site_name, logo, hero_image_url, recipes_hero_image_url,
				whatsapp, email, phone, colors, seo_default, payment_methods,
				delivery_fees, about_page_content)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING *`,
			settings.SiteName, settings.Logo, settings.HeroImageURL, settings.RecipesHeroImageURL,
			settings.WhatsApp, settings.Email, settings.Phone, settings.Colors,
			settings.SEODefault, settings.PaymentMethods, settings.DeliveryFees,
			settings.AboutPageContent)
		if err != nil {
			return nil, fmt.Errorf("failed to create settings: %w", err)
		}

		s.recordAudit(ctx, models.TableSettings, models.OpInsert, created.ID, nil, &created)
		return &created, nil
	}

	var updated models.Settings
	err = s.db.GetContext(ctx, &updated, `
		UPDATE settings
		SET site_name = $1, logo = $2, hero_image_url = $3, recipes_hero_image_url = $4,
			whatsapp = $5, email = $6, phone = $7, colors = $8, seo_default = $9,
			payment_methods = $10, delivery_fees = $11, about_page_content = $12,
			updated_at = NOW()
		WHERE id = $13
		RETURNING *`,
		settings.SiteName, settings.Logo, settings.HeroImageURL, settings.RecipesHeroImageURL,
		settings.WhatsApp, settings.Email, settings.Phone, settings.Colors,
		settings.SEODefault, settings.PaymentMethods, settings.DeliveryFees,
		settings.AboutPageContent, current.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}

	s.recordAudit(ctx, models.TableSettings, models.OpUpdate, updated.ID, current, &updated)
	return &updated, nil
}
