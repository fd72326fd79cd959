package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/perm"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerEmployeeRoutes() {
	webserver.ApiGET("/employees", listEmployees)
	webserver.ApiGET("/employees/roles", listRoles)
	webserver.ApiGET("/employees/permissions/:role", rolePermissions)
	webserver.ApiGET("/employees/:id", getEmployee)
	webserver.ApiPOST("/employees", createEmployee)
	webserver.ApiPUT("/employees/:id", updateEmployee)
	webserver.ApiDELETE("/employees/:id", deleteEmployee)
}

type employeePayload struct {
	Realname string `json:"realname" form:"realname"`
	Mobile   string `json:"mobile" form:"mobile"`
	Email    string `json:"email" form:"email"`
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
	Status   string `json:"status" form:"status"`
	Remark   string `json:"remark" form:"remark"`
}

func listEmployees(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.SysOpr{})

	if role := strings.TrimSpace(c.QueryParam("role")); role != "" {
		query = query.Where("role = ?", role)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query employees", err.Error())
	}

	var employees []domain.SysOpr
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&employees).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query employees", err.Error())
	}
	return paged(c, employees, total, page, pageSize)
}

func listRoles(c echo.Context) error {
	return ok(c, perm.Roles())
}

// rolePermissions returns the default per-module capability grid for a role.
// Unknown roles get the read-only default rather than an error, so the form
// can always render.
func rolePermissions(c echo.Context) error {
	role := c.Param("role")
	return ok(c, map[string]interface{}{
		"role":        role,
		"permissions": perm.DefaultsFor(role),
	})
}

func getEmployee(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}
	var opr domain.SysOpr
	if err := GetDB(c).Where("id = ?", id).First(&opr).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query employee", err.Error())
	}
	return ok(c, map[string]interface{}{
		"employee":    opr,
		"permissions": perm.DefaultsFor(opr.Role),
	})
}

func createEmployee(c echo.Context) error {
	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee parameters", nil)
	}
	if strings.TrimSpace(payload.Username) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_USERNAME", "Username is required", nil)
	}
	if payload.Password == "" {
		return fail(c, http.StatusBadRequest, "MISSING_PASSWORD", "Password is required", nil)
	}

	var count int64
	GetDB(c).Model(&domain.SysOpr{}).Where("username = ?", payload.Username).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "USERNAME_EXISTS", "Username already exists", nil)
	}

	role := payload.Role
	if role == "" {
		role = perm.RoleReceptionist
	}
	status := payload.Status
	if status == "" {
		status = common.ENABLED
	}

	opr := domain.SysOpr{
		ID:       common.UUIDint64(),
		Realname: payload.Realname,
		Mobile:   payload.Mobile,
		Email:    payload.Email,
		Username: strings.TrimSpace(payload.Username),
		Password: common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt()),
		Role:     role,
		Level:    "normal",
		Status:   status,
		Remark:   payload.Remark,
	}
	if err := GetDB(c).Create(&opr).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create employee", err.Error())
	}

	logOperation(c, "", "employee_create", "created employee "+opr.Username)
	return ok(c, opr)
}

func updateEmployee(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}
	var opr domain.SysOpr
	if err := GetDB(c).Where("id = ?", id).First(&opr).Error; err != nil {
		return fail(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found", nil)
	}

	var payload employeePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse employee parameters", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if payload.Realname != "" {
		updates["realname"] = payload.Realname
	}
	if payload.Mobile != "" {
		updates["mobile"] = payload.Mobile
	}
	if payload.Email != "" {
		updates["email"] = payload.Email
	}
	if payload.Password != "" {
		updates["password"] = common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt())
	}
	if payload.Role != "" {
		if strings.EqualFold(opr.Level, "super") && payload.Role != perm.RoleAdmin {
			return fail(c, http.StatusConflict, "SUPER_LOCKED", "Super admin role cannot be changed", nil)
		}
		updates["role"] = payload.Role
	}
	if payload.Status != "" {
		if strings.EqualFold(opr.Level, "super") && !strings.EqualFold(payload.Status, common.ENABLED) {
			return fail(c, http.StatusConflict, "SUPER_LOCKED", "Super admin cannot be disabled", nil)
		}
		updates["status"] = payload.Status
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := GetDB(c).Model(&opr).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update employee", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&opr)
	logOperation(c, "", "employee_update", "updated employee "+opr.Username)
	return ok(c, opr)
}

func deleteEmployee(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid employee ID", nil)
	}

	var opr domain.SysOpr
	if err := GetDB(c).Where("id = ?", id).First(&opr).Error; err != nil {
		return fail(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", "Employee not found", nil)
	}
	if strings.EqualFold(opr.Level, "super") {
		return fail(c, http.StatusConflict, "SUPER_LOCKED", "Super admin cannot be deleted", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.SysOpr{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete employee", err.Error())
	}
	logOperation(c, "", "employee_delete", "deleted employee "+opr.Username)
	return c.NoContent(http.StatusNoContent)
}
