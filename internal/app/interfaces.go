package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/hotelworks/hotelops/config"
	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/notify"
	"github.com/hotelworks/hotelops/internal/payg"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SettingsProvider provides system settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// ConfigManagerProvider provides configuration manager access
type ConfigManagerProvider interface {
	ConfigMgr() *ConfigManager
}

// PriceCacheProvider provides the catalog price snapshot
type PriceCacheProvider interface {
	PriceCache() *billing.PriceCache
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SettingsProvider
	SchedulerProvider
	ConfigManagerProvider
	PriceCacheProvider

	// Domain event bus and delivery infrastructure
	Bus() EventBus.Bus
	Notifier() *notify.Service
	Gateway() *payg.Client

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
	// RunSchedulerNow triggers a scheduler execution immediately by ID
	RunSchedulerNow(id int64) error
	// ReloadPriceCache re-snapshots catalog prices after a catalog edit
	ReloadPriceCache()
}
