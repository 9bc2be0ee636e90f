package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joao-fontenele/storefront-crm/internal/persistence"
)

const Key = "settings"

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type Notifications struct {
	EmailNotifications   bool `json:"emailNotifications"`
	OrderNotifications   bool `json:"orderNotifications"`
	LowStockAlerts       bool `json:"lowStockAlerts"`
	CustomerRegistration bool `json:"customerRegistration"`
	DailyReports         bool `json:"dailyReports"`
}

type System struct {
	Currency          string `json:"currency"`
	Timezone          string `json:"timezone"`
	Language          string `json:"language"`
	DateFormat        string `json:"dateFormat"`
	LowStockThreshold int    `json:"lowStockThreshold"`
}

type Settings struct {
	Profile       Profile       `json:"profile"`
	Notifications Notifications `json:"notifications"`
	System        System        `json:"system"`
}

func Default() Settings {
	return Settings{
		Profile: Profile{
			Name:  "Administrator",
			Email: "admin@phonestore.com",
			Phone: "+7 (999) 123-45-67",
			Role:  "Administrator",
		},
		Notifications: Notifications{
			EmailNotifications:   true,
			OrderNotifications:   true,
			LowStockAlerts:       true,
			CustomerRegistration: false,
			DailyReports:         true,
		},
		System: System{
			Currency:          "RUB",
			Timezone:          "Europe/Moscow",
			Language:          "ru",
			DateFormat:        "dd.MM.yyyy",
			LowStockThreshold: 5,
		},
	}
}

// Decode reads a settings document on top of the defaults, so fields the
// document leaves out keep their default value.
func Decode(raw []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(raw, &s); err != nil {
		return Default(), fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// Load returns the stored settings, or the defaults when nothing readable
// is stored.
func Load(ctx context.Context, kv persistence.KV, logger *slog.Logger) (Settings, error) {
	raw, err := kv.Get(ctx, Key)
	if errors.Is(err, persistence.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	s, err := Decode(raw)
	if err != nil {
		logger.Warn("stored settings unreadable, using defaults", "error", err)
	}
	return s, nil
}

func Save(ctx context.Context, kv persistence.KV, s Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := kv.Set(ctx, Key, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
