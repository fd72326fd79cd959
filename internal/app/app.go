package app

import (
	"context"
	"os"
	"runtime/debug"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/hotelworks/hotelops/config"
	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/notify"
	"github.com/hotelworks/hotelops/internal/payg"
	"github.com/hotelworks/hotelops/pkg/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/gorm"
)

type Application struct {
	appConfig     *config.AppConfig
	gormDB        *gorm.DB
	sched         *cron.Cron
	configManager *ConfigManager
	priceCache    *billing.PriceCache
	bus           EventBus.Bus
	notifier      *notify.Service
	gateway       *payg.Client
}

// Ensure Application implements all interfaces
var (
	_ DBProvider         = (*Application)(nil)
	_ ConfigProvider     = (*Application)(nil)
	_ SettingsProvider   = (*Application)(nil)
	_ SchedulerProvider  = (*Application)(nil)
	_ PriceCacheProvider = (*Application)(nil)
	_ AppContext         = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

// OverrideDB replaces the application's database handle (used in tests).
func (a *Application) OverrideDB(db *gorm.DB) {
	a.gormDB = db
}

func (a *Application) Init(cfg *config.AppConfig) {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	// Initialize zap logger
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	zapConfig.OutputPaths = []string{"stdout"}
	if cfg.Logger.FileEnable {
		zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.Logger.Filename)
	}

	// Build logger with file rotation if enabled
	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	} else {
		logger, err = zapConfig.Build(zap.AddCaller(), zap.AddCallerSkip(1))
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)

	// Initialize metrics with workdir convention
	err = metrics.InitMetrics(cfg.System.Workdir)
	if err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	// Initialize database connection
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	a.gormDB = getDatabase(cfg.Database, cfg.System.Debug)
	zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)

	// Ensure database schema is migrated before loading configs
	if err := a.MigrateDB(false); err != nil {
		zap.S().Errorf("database migration failed: %v", err)
	}

	// wait for database initialization to complete
	go func() {
		time.Sleep(3 * time.Second)
		a.checkSuper()
		a.checkSettings()
		a.checkRoomTypes()
		a.checkLaundryCatalog()
		a.checkMembershipPlans()
		a.checkEventHalls()
		a.checkSchedulers()
		a.ReloadPriceCache()
	}()

	// Initialize the configuration manager
	a.configManager = NewConfigManager(a)

	// Catalog price snapshot used by billing estimates
	a.priceCache = billing.NewPriceCache()

	// Domain event bus feeding the notification outbox
	a.bus = EventBus.New()

	a.initNotifier()
	a.subscribeEvents()

	a.gateway = payg.NewClient(cfg.Gateway)

	a.initJob()
}

func (a *Application) initNotifier() {
	repo := notify.NewGormNotificationRepository(a.gormDB)
	logRepo := notify.NewGormNotificationLogRepository(a.gormDB)
	mailer := notify.NewSmtpMailer(a.appConfig.Smtp)

	notifier, err := notify.NewService(a.gormDB, repo, logRepo, mailer, 8)
	if err != nil {
		zap.S().Errorf("notification service init failed: %v", err)
		return
	}
	a.notifier = notifier
	notifier.Start(context.Background(), time.Minute)
}

func (a *Application) MigrateDB(track bool) (err error) {
	defer func() {
		if err1 := recover(); err1 != nil {
			if os.Getenv("GO_DEBUG_TRACE") != "" {
				debug.PrintStack()
			}
			err2, ok := err1.(error)
			if ok {
				err = err2
				zap.S().Error(err2.Error())
			}
		}
	}()
	if track {
		if err := a.gormDB.Debug().Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	} else {
		if err := a.gormDB.Migrator().AutoMigrate(domain.Tables...); err != nil {
			zap.S().Error(err)
		}
	}
	return nil
}

func (a *Application) DropAll() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
}

func (a *Application) InitDb() {
	_ = a.gormDB.Migrator().DropTable(domain.Tables...)
	err := a.gormDB.Migrator().AutoMigrate(domain.Tables...)
	if err != nil {
		zap.S().Error(err)
	}
}

// ConfigMgr returns the configuration manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// PriceCache returns the catalog price snapshot
func (a *Application) PriceCache() *billing.PriceCache {
	return a.priceCache
}

// Bus returns the domain event bus
func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Notifier returns the outbox dispatcher
func (a *Application) Notifier() *notify.Service {
	return a.notifier
}

// Gateway returns the payment gateway client
func (a *Application) Gateway() *payg.Client {
	return a.gateway
}

// GetSettingsStringValue retrieves a string configuration value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 configuration value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean configuration value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// ReloadPriceCache snapshots the laundry price matrix and single-axis
// catalogs (membership plans, room types) into the billing price cache.
func (a *Application) ReloadPriceCache() {
	prices := map[billing.PriceKey]float64{}

	var laundry []domain.LaundryPrice
	if err := a.gormDB.Find(&laundry).Error; err != nil {
		zap.L().Error("failed to load laundry prices", zap.Error(err))
	}
	for _, p := range laundry {
		prices[billing.PriceKey{CategoryID: p.CategoryId, ServiceID: p.ServiceId}] = p.Price
	}

	var plans []domain.MembershipPlan
	if err := a.gormDB.Find(&plans).Error; err != nil {
		zap.L().Error("failed to load membership plans", zap.Error(err))
	}
	for _, p := range plans {
		prices[billing.PriceKey{CategoryID: p.ID}] = p.Price
	}

	a.priceCache.Replace(prices)
	zap.L().Info("price cache reloaded", zap.Int("cells", a.priceCache.Len()))
}

// Start scheduler job runner
func (a *Application) StartBackgroundJobs(ctx context.Context) {
	a.StartSchedulerService(ctx)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}

	if a.notifier != nil {
		a.notifier.Stop()
	}

	_ = metrics.Close()
	_ = zap.L().Sync()
}
