package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/angelmondragon/tradelink-backend/pkg/config"
	"github.com/angelmondragon/tradelink-backend/pkg/db/models"
	"github.com/angelmondragon/tradelink-backend/pkg/logger"
)

// eventPublisher is the slice of the Pub/Sub publisher the service needs.
type eventPublisher interface {
	Publish(ctx context.Context, msg *pubsub.Message) *pubsub.PublishResult
}

type service struct {
	repo      Repository
	publisher eventPublisher
	cfg       config.PubSubConfig
	logg      *logger.Logger
}

// NewService wires the notification sink. The publisher may be nil; events
// are then only persisted for the supplier portal.
func NewService(repo Repository, publisher *pubsub.Publisher, cfg config.PubSubConfig, logg *logger.Logger) (Sink, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{repo: repo, cfg: cfg, logg: logg}
	if publisher != nil {
		svc.publisher = publisher
	}
	return svc, nil
}

// Notify persists the portal copy and publishes to Pub/Sub. Both legs are
// best-effort; the first error is returned for logging but callers treat it
// as non-fatal.
func (s *service) Notify(ctx context.Context, event OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding notification payload: %w", err)
	}

	if err := s.repo.Create(ctx, &models.Notification{
		SupplierID: event.SupplierID,
		Event:      event.Event,
		Payload:    string(payload),
	}); err != nil {
		s.logg.Error(ctx, "persisting notification", err)
	}

	if s.publisher == nil {
		return nil
	}

	publishCtx := ctx
	if s.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		publishCtx, cancel = context.WithTimeout(ctx, s.cfg.PublishTimeout)
		defer cancel()
	}

	attrs := map[string]string{"event": event.Event}
	if event.SupplierID != nil {
		attrs["supplier_id"] = event.SupplierID.String()
	}
	result := s.publisher.Publish(publishCtx, &pubsub.Message{
		Data:       payload,
		Attributes: attrs,
	})
	if _, err := result.Get(publishCtx); err != nil {
		return fmt.Errorf("publishing supplier event: %w", err)
	}
	return nil
}
