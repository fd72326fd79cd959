package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/perm"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func registerAuthRoutes() {
	webserver.ApiPOST("/login", login)
	webserver.ApiGET("/me", currentOperator)
}

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResult struct {
	Token       string                  `json:"token"`
	Username    string                  `json:"username"`
	Realname    string                  `json:"realname"`
	Role        string                  `json:"role"`
	Level       string                  `json:"level"`
	Permissions []perm.ModulePermission `json:"permissions"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login parameters", nil)
	}
	if strings.TrimSpace(payload.Username) == "" || payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_CREDENTIALS", "Username and password are required", nil)
	}

	var operator domain.SysOpr
	err := GetDB(c).Where("username = ?", payload.Username).First(&operator).Error
	if err != nil {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}

	hashed := common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	if operator.Password != hashed {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if !strings.EqualFold(operator.Status, common.ENABLED) {
		return fail(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Operator account is disabled", nil)
	}

	cfg := GetApp(c).Config()
	claims := jwt.MapClaims{
		"usr": operator.Username,
		"rol": operator.Role,
		"lvl": operator.Level,
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Web.Secret))
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_FAILED", "Failed to sign session token", nil)
	}

	GetDB(c).Model(&domain.SysOpr{}).Where("id = ?", operator.ID).
		Update("last_login", time.Now())

	logOperation(c, operator.Username, "login", "operator signed in")
	zap.L().Info("operator login", zap.String("username", operator.Username))

	return ok(c, loginResult{
		Token:       signed,
		Username:    operator.Username,
		Realname:    operator.Realname,
		Role:        operator.Role,
		Level:       operator.Level,
		Permissions: perm.DefaultsFor(operator.Role),
	})
}

func currentOperator(c echo.Context) error {
	username := currentUsername(c)
	if username == "" {
		return fail(c, http.StatusUnauthorized, "NO_SESSION", "No active session", nil)
	}

	var operator domain.SysOpr
	if err := GetDB(c).Where("username = ?", username).First(&operator).Error; err != nil {
		return fail(c, http.StatusNotFound, "OPERATOR_NOT_FOUND", "Operator not found", nil)
	}

	return ok(c, map[string]interface{}{
		"operator":    operator,
		"permissions": perm.DefaultsFor(operator.Role),
	})
}

// logOperation appends one row to the operator audit trail.
func logOperation(c echo.Context, oprName, action, desc string) {
	if oprName == "" {
		oprName = currentUsername(c)
	}
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   oprName,
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
