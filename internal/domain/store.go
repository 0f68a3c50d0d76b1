package domain

import "time"

// StoreConfigVersion is the current schema version for StoreConfig documents.
// Stored configs with an older version are upgraded on read.
const StoreConfigVersion = 1

// StoreConfig is the typed per-store configuration stored as JSONB.
type StoreConfig struct {
	Version         int    `json:"version"`
	Currency        string `json:"currency"`
	Timezone        string `json:"timezone"`
	ContactEmail    string `json:"contact_email,omitempty"`
	SupportPhone    string `json:"support_phone,omitempty"`
	MaintenanceMode bool   `json:"maintenance_mode"`
}

// DefaultStoreConfig returns the config applied to newly created stores.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		Version:  StoreConfigVersion,
		Currency: "USD",
		Timezone: "UTC",
	}
}

// Upgrade migrates a config read from storage to the current schema version.
func (c StoreConfig) Upgrade() StoreConfig {
	if c.Version < StoreConfigVersion {
		def := DefaultStoreConfig()
		if c.Currency == "" {
			c.Currency = def.Currency
		}
		if c.Timezone == "" {
			c.Timezone = def.Timezone
		}
		c.Version = StoreConfigVersion
	}
	return c
}

// StoreTheme holds per-store presentation settings.
type StoreTheme struct {
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	FontFamily     string `json:"font_family"`
	CustomCSS      string `json:"custom_css,omitempty"`
}

// DefaultStoreTheme returns the theme applied to newly created stores.
func DefaultStoreTheme() StoreTheme {
	return StoreTheme{
		PrimaryColor:   "#4f46e5",
		SecondaryColor: "#f43f5e",
		FontFamily:     "'Inter', sans-serif",
	}
}

// StoreAttribute is a free-form key/value attribute attached to a store.
type StoreAttribute struct {
	Name  string `json:"attribute_name"`
	Value string `json:"attribute_value"`
}

// Store represents a tenant storefront. Domain is unique across the platform
// and is how requests are mapped to a tenant.
type Store struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Domain     string           `json:"domain"`
	CategoryID string           `json:"category_id"`
	Config     StoreConfig      `json:"config"`
	Theme      StoreTheme       `json:"theme"`
	Features   []string         `json:"features,omitempty"`
	Attributes []StoreAttribute `json:"attributes,omitempty"`
	IsActive   bool             `json:"is_active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// HasFeature reports whether the store has the named feature enabled.
func (s *Store) HasFeature(name string) bool {
	for _, f := range s.Features {
		if f == name {
			return true
		}
	}
	return false
}
