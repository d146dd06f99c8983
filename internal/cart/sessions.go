package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"frutbras-service/internal/redisclient"
	"frutbras-service/internal/util"

	"go.uber.org/zap"
)

// Carts live for thirty days of inactivity, then the session is forgotten
const snapshotTTL = 30 * 24 * time.Hour

// Sessions persists cart state per session, the server-side counterpart of
// the storefront's fixed localStorage slot. Every transition is written back
// before it is acknowledged.
type Sessions struct {
	redis  *redisclient.Client
	logger *zap.Logger
}

// NewSessions creates a cart session store
func NewSessions(redis *redisclient.Client) *Sessions {
	return &Sessions{
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// Load rehydrates the cart for a session. A corrupt snapshot falls back to an
// empty cart rather than failing the request. When utmCampaign is non-empty
// (read from the page-load URL) it overrides the persisted tag.
func (s *Sessions) Load(ctx context.Context, sessionID, utmCampaign string) (Cart, error) {
	c := New()

	data, err := s.redis.LoadCartSnapshot(ctx, sessionID)
	if err != nil {
		return c, err
	}

	if data != nil {
		if err := json.Unmarshal(data, &c); err != nil {
			s.logger.Error("Discarding corrupt cart snapshot",
				zap.String("session_id", sessionID),
				zap.Error(err))
			c = New()
		}
	}

	if utmCampaign != "" {
		c = c.WithCampaign(utmCampaign)
	}

	return c, nil
}

// Save persists the cart snapshot for a session
func (s *Sessions) Save(ctx context.Context, sessionID string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	return s.redis.SaveCartSnapshot(ctx, sessionID, data, snapshotTTL)
}
