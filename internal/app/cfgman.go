package app

import (
	"sync"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ConfigManager caches sys_config rows and exposes typed getters.
// Values are read-through: a cache miss falls back to the database and
// repopulates the cache.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]map[string]string // category -> name -> value
}

func NewConfigManager(app *Application) *ConfigManager {
	cm := &ConfigManager{
		app:   app,
		cache: make(map[string]map[string]string),
	}
	return cm
}

// Refresh reloads the whole settings cache from the database.
func (cm *ConfigManager) Refresh() {
	var rows []domain.SysConfig
	if err := cm.app.gormDB.Find(&rows).Error; err != nil {
		zap.L().Error("failed to load sys_config", zap.Error(err))
		return
	}

	cache := make(map[string]map[string]string)
	for _, row := range rows {
		if cache[row.Type] == nil {
			cache[row.Type] = make(map[string]string)
		}
		cache[row.Type][row.Name] = row.Value
	}

	cm.mu.Lock()
	cm.cache = cache
	cm.mu.Unlock()
}

func (cm *ConfigManager) getValue(category, name string) (string, bool) {
	cm.mu.RLock()
	if group, ok := cm.cache[category]; ok {
		if v, ok := group[name]; ok {
			cm.mu.RUnlock()
			return v, true
		}
	}
	cm.mu.RUnlock()

	var row domain.SysConfig
	err := cm.app.gormDB.Where("type = ? and name = ?", category, name).First(&row).Error
	if err != nil {
		return "", false
	}

	cm.mu.Lock()
	if cm.cache[category] == nil {
		cm.cache[category] = make(map[string]string)
	}
	cm.cache[category][name] = row.Value
	cm.mu.Unlock()
	return row.Value, true
}

func (cm *ConfigManager) GetString(category, name string) string {
	v, _ := cm.getValue(category, name)
	return v
}

func (cm *ConfigManager) GetInt(category, name string) int {
	v, _ := cm.getValue(category, name)
	return cast.ToInt(v)
}

func (cm *ConfigManager) GetInt64(category, name string) int64 {
	v, _ := cm.getValue(category, name)
	return cast.ToInt64(v)
}

func (cm *ConfigManager) GetBool(category, name string) bool {
	v, _ := cm.getValue(category, name)
	return cast.ToBool(v)
}

// SetValue writes one setting through to the database and cache.
func (cm *ConfigManager) SetValue(category, name, value string) error {
	var row domain.SysConfig
	err := cm.app.gormDB.Where("type = ? and name = ?", category, name).First(&row).Error
	if err != nil {
		row = domain.SysConfig{
			Type:      category,
			Name:      name,
			Value:     value,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		if err := cm.app.gormDB.Create(&row).Error; err != nil {
			return err
		}
	} else {
		if err := cm.app.gormDB.Model(&domain.SysConfig{}).
			Where("id = ?", row.ID).
			Updates(map[string]interface{}{"value": value, "updated_at": time.Now()}).Error; err != nil {
			return err
		}
	}

	cm.mu.Lock()
	if cm.cache[category] == nil {
		cm.cache[category] = make(map[string]string)
	}
	cm.cache[category][name] = value
	cm.mu.Unlock()
	return nil
}

// DecodeGroup decodes one settings category into a typed struct, with
// weak typing so numeric and boolean strings convert cleanly.
func (cm *ConfigManager) DecodeGroup(category string, out interface{}) error {
	cm.mu.RLock()
	group := make(map[string]interface{}, len(cm.cache[category]))
	for k, v := range cm.cache[category] {
		group[k] = v
	}
	cm.mu.RUnlock()

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(group)
}
