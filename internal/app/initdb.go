package app

import (
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/perm"
	"github.com/hotelworks/hotelops/pkg/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed config_schemas.json
var configSchemasData []byte

type ConfigSchema struct {
	Key         string `json:"key"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

type ConfigSchemasJSON struct {
	Schemas []ConfigSchema `json:"schemas"`
}

func (a *Application) checkSuper() {
	const superUsername = "admin"
	const defaultPassword = "hotelops"

	hashedPassword := common.Sha256HashWithSalt(defaultPassword, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("username = ?", superUsername).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Mobile:    "0000",
			Email:     "N/A",
			Username:  superUsername,
			Password:  hashedPassword,
			Role:      perm.RoleAdmin,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("username", superUsername))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetLevel := !strings.EqualFold(operator.Level, "super")
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)

	if !resetPassword && !resetLevel && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetLevel {
		updates["level"] = "super"
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}

	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}

	zap.L().Warn("repaired default super admin account",
		zap.String("username", superUsername),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("levelReset", resetLevel),
		zap.Bool("statusEnabled", resetStatus))
}

func (a *Application) checkSettings() {
	var schemasData ConfigSchemasJSON
	if err := json.Unmarshal(configSchemasData, &schemasData); err != nil {
		zap.L().Error("failed to load config schemas from JSON", zap.Error(err))
		return
	}

	for sortid, schema := range schemasData.Schemas {
		// Key format is "category.name"
		parts := strings.SplitN(schema.Key, ".", 2)
		if len(parts) != 2 {
			zap.L().Warn("invalid config key format", zap.String("key", schema.Key))
			continue
		}

		category := parts[0]
		name := parts[1]

		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", category, name).
			Count(&count)

		if count == 0 {
			a.gormDB.Create(&domain.SysConfig{
				ID:     0,
				Sort:   sortid,
				Type:   category,
				Name:   name,
				Value:  schema.Default,
				Remark: schema.Description,
			})
			zap.L().Info("initialized config",
				zap.String("key", schema.Key),
				zap.String("default", schema.Default))
		}
	}
}

// checkRoomTypes seeds the baseline room categories on an empty database.
func (a *Application) checkRoomTypes() {
	defaultTypes := []domain.RoomType{
		{Name: "Standard", BaseRate: 15000, Capacity: 2, Remark: "Standard double room"},
		{Name: "Deluxe", BaseRate: 25000, Capacity: 2, Remark: "Deluxe room with sitting area"},
		{Name: "Executive Suite", BaseRate: 45000, Capacity: 4, Remark: "Suite with lounge and workspace"},
	}

	for _, rt := range defaultTypes {
		var count int64
		a.gormDB.Model(&domain.RoomType{}).Where("name = ?", rt.Name).Count(&count)
		if count == 0 {
			rt.ID = common.UUIDint64()
			rt.CreatedAt = time.Now()
			rt.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&rt).Error; err != nil {
				zap.L().Error("failed to create default room type", zap.String("name", rt.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default room type", zap.String("name", rt.Name))
			}
		}
	}
}

// checkLaundryCatalog seeds the laundry category and service axes. Prices are
// deliberately not seeded; the price matrix is operator data.
func (a *Application) checkLaundryCatalog() {
	defaultCategories := []domain.LaundryCategory{
		{Name: "Shirt"},
		{Name: "Trouser"},
		{Name: "Suit"},
		{Name: "Bedding"},
	}
	defaultServices := []domain.LaundryService{
		{Name: "wash"},
		{Name: "iron"},
		{Name: "dry_clean"},
		{Name: "starch"},
	}

	for _, cat := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.LaundryCategory{}).Where("name = ?", cat.Name).Count(&count)
		if count == 0 {
			cat.ID = common.UUIDint64()
			cat.CreatedAt = time.Now()
			cat.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&cat).Error; err != nil {
				zap.L().Error("failed to create default laundry category", zap.String("name", cat.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized laundry category", zap.String("name", cat.Name))
			}
		}
	}

	for _, svc := range defaultServices {
		var count int64
		a.gormDB.Model(&domain.LaundryService{}).Where("name = ?", svc.Name).Count(&count)
		if count == 0 {
			svc.ID = common.UUIDint64()
			svc.CreatedAt = time.Now()
			svc.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&svc).Error; err != nil {
				zap.L().Error("failed to create default laundry service", zap.String("name", svc.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized laundry service", zap.String("name", svc.Name))
			}
		}
	}
}

// checkMembershipPlans seeds one monthly plan per facility.
func (a *Application) checkMembershipPlans() {
	defaultPlans := []domain.MembershipPlan{
		{Facility: domain.FacilityGym, Name: "Gym Monthly", DurationDays: 30, Price: 20000},
		{Facility: domain.FacilityPool, Name: "Pool Monthly", DurationDays: 30, Price: 15000},
	}

	for _, plan := range defaultPlans {
		var count int64
		a.gormDB.Model(&domain.MembershipPlan{}).
			Where("facility = ? and name = ?", plan.Facility, plan.Name).
			Count(&count)
		if count == 0 {
			plan.ID = common.UUIDint64()
			plan.CreatedAt = time.Now()
			plan.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&plan).Error; err != nil {
				zap.L().Error("failed to create default membership plan", zap.String("name", plan.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized membership plan", zap.String("name", plan.Name))
			}
		}
	}
}

// checkEventHalls seeds one event hall so estimates work out of the box.
func (a *Application) checkEventHalls() {
	defaultHalls := []domain.EventHall{
		{Name: "Main Hall", Capacity: 200, HourlyRate: 1000, DailyRate: 5000, Status: common.ENABLED},
	}

	for _, hall := range defaultHalls {
		var count int64
		a.gormDB.Model(&domain.EventHall{}).Where("name = ?", hall.Name).Count(&count)
		if count == 0 {
			hall.ID = common.UUIDint64()
			hall.CreatedAt = time.Now()
			hall.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&hall).Error; err != nil {
				zap.L().Error("failed to create default event hall", zap.String("name", hall.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized event hall", zap.String("name", hall.Name))
			}
		}
	}
}

// checkSchedulers initializes default scheduled tasks
func (a *Application) checkSchedulers() {
	defaultSchedulers := []domain.OpsScheduler{
		{
			Name:     "Membership Expiry",
			TaskType: "membership_expiry",
			Interval: 3600, // 1 hour
			Status:   "enabled",
			Remark:   "Expires gym and pool memberships past their end date",
		},
		{
			Name:     "Booking Sweep",
			TaskType: "booking_sweep",
			Interval: 1800, // 30 minutes
			Status:   "enabled",
			Config:   `{"grace_hours": 2}`,
			Remark:   "Flags checked-in bookings that are past their check-out time",
		},
		{
			Name:     "Notification Dispatch",
			TaskType: "notify_dispatch",
			Interval: 60,
			Status:   "enabled",
			Remark:   "Delivers pending outbox notifications",
		},
	}

	for _, sched := range defaultSchedulers {
		var count int64
		a.gormDB.Model(&domain.OpsScheduler{}).
			Where("task_type = ?", sched.TaskType).
			Count(&count)

		if count == 0 {
			sched.NextRunAt = time.Now().Add(time.Duration(sched.Interval) * time.Second)
			if err := a.gormDB.Create(&sched).Error; err != nil {
				zap.L().Error("failed to create default scheduler",
					zap.String("name", sched.Name),
					zap.Error(err))
			} else {
				zap.L().Info("initialized default scheduler",
					zap.String("name", sched.Name),
					zap.String("task_type", sched.TaskType))
			}
		}
	}
}
