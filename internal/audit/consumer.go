package audit

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"windasset-cloud/internal/eventbus"
	"windasset-cloud/internal/wizard/application/events"
)

// SystemActor identifies entries written by the platform itself rather
// than an authenticated user.
const SystemActor = "system"

// Consumer turns wizard lifecycle events into audit entries.
type Consumer struct {
	logger Logger
	errlog *log.Logger
}

// NewConsumer constructs a wizard event consumer.
func NewConsumer(logger Logger, errlog *log.Logger) *Consumer {
	return &Consumer{logger: logger, errlog: errlog}
}

// Register subscribes the consumer to every wizard lifecycle event.
func (c *Consumer) Register(bus eventbus.Bus) {
	bus.Subscribe(eventbus.For[events.AssetCreated](), c.onAssetCreated)
	bus.Subscribe(eventbus.For[events.AssetLinked](), c.onAssetLinked)
	bus.Subscribe(eventbus.For[events.WizardCompleted](), c.onWizardCompleted)
	bus.Subscribe(eventbus.For[events.WizardCancelled](), c.onWizardCancelled)
}

func (c *Consumer) onAssetCreated(ctx context.Context, event any) error {
	e, ok := event.(events.AssetCreated)
	if !ok {
		return nil
	}
	return c.write(ctx, e.SessionID, "asset.created", "asset", strconv.FormatInt(e.AssetID, 10), e)
}

func (c *Consumer) onAssetLinked(ctx context.Context, event any) error {
	e, ok := event.(events.AssetLinked)
	if !ok {
		return nil
	}
	return c.write(ctx, e.SessionID, "asset.linked", "project_asset", strconv.FormatInt(e.ProjectAssetID, 10), e)
}

func (c *Consumer) onWizardCompleted(ctx context.Context, event any) error {
	e, ok := event.(events.WizardCompleted)
	if !ok {
		return nil
	}
	return c.write(ctx, e.SessionID, "wizard.completed", "project_asset", strconv.FormatInt(e.ProjectAssetID, 10), e)
}

func (c *Consumer) onWizardCancelled(ctx context.Context, event any) error {
	e, ok := event.(events.WizardCancelled)
	if !ok {
		return nil
	}
	return c.write(ctx, e.SessionID, "wizard.cancelled", "wizard_session", e.SessionID, e)
}

func (c *Consumer) write(ctx context.Context, sessionID, action, resourceType, resourceID string, payload any) error {
	metadata, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	entry := Entry{
		ID:            NewID(),
		Actor:         SystemActor,
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		SessionID:     sessionID,
		Metadata:      metadata,
		PayloadDigest: DigestJSON(metadata),
		CreatedAt:     time.Now().UTC(),
	}
	if err := c.logger.Log(ctx, entry); err != nil {
		if c.errlog != nil {
			c.errlog.Printf("audit %s: %v", action, err)
		}
		return err
	}
	return nil
}
