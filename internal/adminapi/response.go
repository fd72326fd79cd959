package adminapi

import (
	"net/http"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hotelworks/hotelops/internal/app"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ApiResponse is the uniform envelope every admin API handler returns.
type ApiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
	Status  int         `json:"status"`
}

// ListResponse is the envelope for paginated list endpoints.
type ListResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Status   int         `json:"status"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, ApiResponse{
		Success: true,
		Data:    data,
		Status:  http.StatusOK,
	})
}

func okMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, ApiResponse{
		Success: true,
		Message: message,
		Status:  http.StatusOK,
	})
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	resp := ApiResponse{
		Success: false,
		Code:    code,
		Message: message,
		Status:  status,
	}
	if detail != nil {
		resp.Data = detail
	}
	return c.JSON(status, resp)
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, ListResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Status:   http.StatusOK,
	})
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, _ = strconv.Atoi(c.QueryParam("perPage"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

// GetApp retrieves the application context injected by the web server.
func GetApp(c echo.Context) app.AppContext {
	appCtx, _ := c.Get(webserver.AppContextKey).(app.AppContext)
	return appCtx
}

func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

// currentClaims extracts the JWT claims set by the auth middleware.
func currentClaims(c echo.Context) jwt.MapClaims {
	token, _ := c.Get("user").(*jwt.Token)
	if token == nil {
		return jwt.MapClaims{}
	}
	claims, _ := token.Claims.(jwt.MapClaims)
	if claims == nil {
		return jwt.MapClaims{}
	}
	return claims
}

func currentUsername(c echo.Context) string {
	username, _ := currentClaims(c)["usr"].(string)
	return username
}

func currentRole(c echo.Context) string {
	role, _ := currentClaims(c)["rol"].(string)
	return role
}
