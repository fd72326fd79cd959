package adminapi

import (
	"net/http"
	"strings"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", listSettings)
	webserver.ApiPUT("/settings", updateSetting)
}

func listSettings(c echo.Context) error {
	query := GetDB(c).Model(&domain.SysConfig{})
	if category := strings.TrimSpace(c.QueryParam("type")); category != "" {
		query = query.Where("type = ?", category)
	}
	var settings []domain.SysConfig
	if err := query.Order("sort ASC").Find(&settings).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query settings", err.Error())
	}
	return ok(c, settings)
}

func updateSetting(c echo.Context) error {
	var payload struct {
		Type  string `json:"type" form:"type"`
		Name  string `json:"name" form:"name"`
		Value string `json:"value" form:"value"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse setting parameters", nil)
	}
	if strings.TrimSpace(payload.Type) == "" || strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_KEY", "Setting type and name are required", nil)
	}

	if err := GetApp(c).ConfigMgr().SetValue(payload.Type, payload.Name, payload.Value); err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update setting", err.Error())
	}

	logOperation(c, "", "setting_update", "updated setting "+payload.Type+"."+payload.Name)
	return okMessage(c, "setting updated")
}
