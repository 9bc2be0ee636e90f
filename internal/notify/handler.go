// Package notify turns change events into mail for the store owner,
// according to the notification settings in force when the event arrives.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/storefront-crm/internal/domain"
	"github.com/joao-fontenele/storefront-crm/internal/settings"
)

type SettingsLoader func(ctx context.Context) (settings.Settings, error)

type Handler struct {
	sender   Sender
	settings SettingsLoader
	logger   *slog.Logger
}

func NewHandler(sender Sender, loader SettingsLoader, logger *slog.Logger) *Handler {
	return &Handler{
		sender:   sender,
		settings: loader,
		logger:   logger,
	}
}

func (h *Handler) Handle(ctx context.Context, event domain.ChangeEvent) error {
	cfg, err := h.settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if !cfg.Notifications.EmailNotifications || event.Op == domain.OpDelete || len(event.Entity) == 0 {
		return nil
	}

	mail, ok, err := compose(cfg, event)
	if err != nil {
		// Undecodable payloads are dropped, not retried.
		h.logger.Warn("skipping change event", "error", err, "event_id", event.EventID)
		return nil
	}
	if !ok {
		return nil
	}

	if err := h.sender.Send(ctx, mail); err != nil {
		h.logger.Error("failed to send notification", "error", err, "event_id", event.EventID, "subject", mail.Subject)
		return fmt.Errorf("send notification: %w", err)
	}

	h.logger.Info("notification sent",
		"event_id", event.EventID,
		"collection", event.Collection,
		"entity_id", event.EntityID,
	)
	return nil
}

func compose(cfg settings.Settings, event domain.ChangeEvent) (Mail, bool, error) {
	n := cfg.Notifications
	to := cfg.Profile.Email

	switch {
	case event.Collection == domain.CollectionOrders && event.Op == domain.OpAdd && n.OrderNotifications:
		var o domain.Order
		if err := json.Unmarshal(event.Entity, &o); err != nil {
			return Mail{}, false, fmt.Errorf("decode order: %w", err)
		}
		return Mail{
			To:      to,
			Subject: fmt.Sprintf("New order #%d", o.ID),
			Body: fmt.Sprintf("%s placed order #%d for %s %s (%d items, %s).",
				o.CustomerName, o.ID, o.Total.StringFixed(2), cfg.System.Currency, len(o.Products), o.PaymentMethod),
		}, true, nil

	case event.Collection == domain.CollectionProducts && n.LowStockAlerts:
		var p domain.Product
		if err := json.Unmarshal(event.Entity, &p); err != nil {
			return Mail{}, false, fmt.Errorf("decode product: %w", err)
		}
		if p.Stock > cfg.System.LowStockThreshold {
			return Mail{}, false, nil
		}
		return Mail{
			To:      to,
			Subject: "Low stock: " + p.Name,
			Body:    fmt.Sprintf("%s (#%d) has %d left, threshold is %d.", p.Name, p.ID, p.Stock, cfg.System.LowStockThreshold),
		}, true, nil

	case event.Collection == domain.CollectionCustomers && event.Op == domain.OpAdd && n.CustomerRegistration:
		var c domain.Customer
		if err := json.Unmarshal(event.Entity, &c); err != nil {
			return Mail{}, false, fmt.Errorf("decode customer: %w", err)
		}
		return Mail{
			To:      to,
			Subject: "New customer: " + c.Name,
			Body:    fmt.Sprintf("%s <%s> registered on %s.", c.Name, c.Email, c.RegistrationDate),
		}, true, nil
	}

	return Mail{}, false, nil
}
