package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerMembershipRoutes() {
	webserver.ApiGET("/memberships/plans", listMembershipPlans)
	webserver.ApiPOST("/memberships/plans", createMembershipPlan)
	webserver.ApiPUT("/memberships/plans/:id", updateMembershipPlan)
	webserver.ApiDELETE("/memberships/plans/:id", deleteMembershipPlan)

	webserver.ApiGET("/memberships", listMemberships)
	webserver.ApiGET("/memberships/:id", getMembership)
	webserver.ApiPOST("/memberships", createMembership)
	webserver.ApiPOST("/memberships/:id/cancel", cancelMembership)
	webserver.ApiPOST("/memberships/:id/renew", renewMembership)
}

type membershipPlanPayload struct {
	Facility     string  `json:"facility" form:"facility"`
	Name         string  `json:"name" form:"name"`
	DurationDays int     `json:"duration_days" form:"duration_days"`
	Price        float64 `json:"price" form:"price"`
	Remark       string  `json:"remark" form:"remark"`
}

func validFacility(facility string) bool {
	return facility == domain.FacilityGym || facility == domain.FacilityPool
}

func listMembershipPlans(c echo.Context) error {
	query := GetDB(c).Model(&domain.MembershipPlan{})
	if facility := strings.TrimSpace(c.QueryParam("facility")); facility != "" {
		query = query.Where("facility = ?", facility)
	}
	var plans []domain.MembershipPlan
	if err := query.Order("facility ASC, name ASC").Find(&plans).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query plans", err.Error())
	}
	return ok(c, plans)
}

func createMembershipPlan(c echo.Context) error {
	var payload membershipPlanPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse plan parameters", nil)
	}
	if !validFacility(payload.Facility) {
		return fail(c, http.StatusBadRequest, "INVALID_FACILITY", "Facility must be gym or pool", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Plan name is required", nil)
	}
	if payload.DurationDays <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_DURATION", "Plan duration must be positive", nil)
	}
	if payload.Price < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Plan price cannot be negative", nil)
	}

	var count int64
	GetDB(c).Model(&domain.MembershipPlan{}).
		Where("facility = ? AND name = ?", payload.Facility, payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NAME_EXISTS", "Plan name already exists for this facility", nil)
	}

	plan := domain.MembershipPlan{
		ID:           common.UUIDint64(),
		Facility:     payload.Facility,
		Name:         strings.TrimSpace(payload.Name),
		DurationDays: payload.DurationDays,
		Price:        payload.Price,
		Remark:       payload.Remark,
	}
	if err := GetDB(c).Create(&plan).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create plan", err.Error())
	}

	GetApp(c).ReloadPriceCache()
	return ok(c, plan)
}

func updateMembershipPlan(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid plan ID", nil)
	}
	var plan domain.MembershipPlan
	if err := GetDB(c).Where("id = ?", id).First(&plan).Error; err != nil {
		return fail(c, http.StatusNotFound, "PLAN_NOT_FOUND", "Plan not found", nil)
	}

	var payload membershipPlanPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse plan parameters", nil)
	}

	updates := map[string]interface{}{"updated_at": time.Now()}
	if strings.TrimSpace(payload.Name) != "" {
		updates["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.DurationDays > 0 {
		updates["duration_days"] = payload.DurationDays
	}
	if payload.Price > 0 {
		updates["price"] = payload.Price
	}
	if payload.Remark != "" {
		updates["remark"] = payload.Remark
	}

	if err := GetDB(c).Model(&plan).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update plan", err.Error())
	}
	GetDB(c).Where("id = ?", id).First(&plan)
	GetApp(c).ReloadPriceCache()
	return ok(c, plan)
}

func deleteMembershipPlan(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid plan ID", nil)
	}

	var active int64
	GetDB(c).Model(&domain.Membership{}).
		Where("plan_id = ? AND status = ?", id, domain.MembershipActive).Count(&active)
	if active > 0 {
		return fail(c, http.StatusConflict, "PLAN_IN_USE", "Plan has active memberships", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.MembershipPlan{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete plan", err.Error())
	}
	GetApp(c).ReloadPriceCache()
	return c.NoContent(http.StatusNoContent)
}

type membershipPayload struct {
	GuestId   int64  `json:"guest_id,string" form:"guest_id"`
	PlanId    int64  `json:"plan_id,string" form:"plan_id"`
	StartDate string `json:"start_date" form:"start_date"`
	Remark    string `json:"remark" form:"remark"`
}

func listMemberships(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Membership{})

	if facility := strings.TrimSpace(c.QueryParam("facility")); facility != "" {
		query = query.Where("facility = ?", facility)
	}
	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if guestID := strings.TrimSpace(c.QueryParam("guest_id")); guestID != "" {
		query = query.Where("guest_id = ?", guestID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query memberships", err.Error())
	}

	var memberships []domain.Membership
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&memberships).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query memberships", err.Error())
	}
	return paged(c, memberships, total, page, pageSize)
}

func getMembership(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership ID", nil)
	}
	var membership domain.Membership
	if err := GetDB(c).Where("id = ?", id).First(&membership).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", "Membership not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query membership", err.Error())
	}
	return ok(c, membership)
}

func createMembership(c echo.Context) error {
	var payload membershipPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse membership parameters", nil)
	}

	db := GetDB(c)
	var guest domain.Guest
	if err := db.Where("id = ?", payload.GuestId).First(&guest).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_GUEST", "Guest does not exist", nil)
	}
	var plan domain.MembershipPlan
	if err := db.Where("id = ?", payload.PlanId).First(&plan).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_PLAN", "Plan does not exist", nil)
	}

	startDate := time.Now()
	if payload.StartDate != "" {
		parsed, err := billing.ParseDate(payload.StartDate)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_START", "Unable to parse start date", nil)
		}
		startDate = parsed
	}

	var overlapping int64
	db.Model(&domain.Membership{}).
		Where("guest_id = ? AND facility = ? AND status = ?",
			payload.GuestId, plan.Facility, domain.MembershipActive).
		Count(&overlapping)
	if overlapping > 0 {
		return fail(c, http.StatusConflict, "ALREADY_MEMBER",
			"Guest already has an active "+plan.Facility+" membership", nil)
	}

	if err := billing.ValidateCharge(plan.Price, 0); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE", err.Error(), nil)
	}

	membership := domain.Membership{
		ID:            common.UUIDint64(),
		GuestId:       payload.GuestId,
		PlanId:        payload.PlanId,
		Facility:      plan.Facility,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, plan.DurationDays),
		Status:        domain.MembershipActive,
		TotalAmount:   plan.Price,
		PaidAmount:    0,
		PaymentStatus: string(billing.ClassifyPayment(plan.Price, 0)),
		Reference:     billing.NewReference("MBR"),
		Remark:        payload.Remark,
	}
	if err := db.Create(&membership).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create membership", err.Error())
	}

	logOperation(c, "", "membership_create", "created membership "+membership.Reference)
	return ok(c, membership)
}

func cancelMembership(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership ID", nil)
	}

	var membership domain.Membership
	if err := GetDB(c).Where("id = ?", id).First(&membership).Error; err != nil {
		return fail(c, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", "Membership not found", nil)
	}
	if membership.Status != domain.MembershipActive {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Only active memberships can be cancelled", nil)
	}

	if err := GetDB(c).Model(&membership).Updates(map[string]interface{}{
		"status":     domain.MembershipCancelled,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CANCEL_FAILED", "Failed to cancel membership", err.Error())
	}

	logOperation(c, "", "membership_cancel", "cancelled membership "+membership.Reference)
	membership.Status = domain.MembershipCancelled
	return ok(c, membership)
}

// renewMembership opens a fresh membership continuing from the old end date,
// priced at the plan's current rate.
func renewMembership(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid membership ID", nil)
	}
	db := GetDB(c)

	var old domain.Membership
	if err := db.Where("id = ?", id).First(&old).Error; err != nil {
		return fail(c, http.StatusNotFound, "MEMBERSHIP_NOT_FOUND", "Membership not found", nil)
	}
	if old.Status == domain.MembershipCancelled {
		return fail(c, http.StatusConflict, "INVALID_STATE", "Cancelled memberships cannot be renewed", nil)
	}

	var plan domain.MembershipPlan
	if err := db.Where("id = ?", old.PlanId).First(&plan).Error; err != nil {
		return fail(c, http.StatusConflict, "PLAN_GONE", "Original plan no longer exists", nil)
	}

	startDate := old.EndDate
	if startDate.Before(time.Now()) {
		startDate = time.Now()
	}

	renewal := domain.Membership{
		ID:            common.UUIDint64(),
		GuestId:       old.GuestId,
		PlanId:        old.PlanId,
		Facility:      old.Facility,
		StartDate:     startDate,
		EndDate:       startDate.AddDate(0, 0, plan.DurationDays),
		Status:        domain.MembershipActive,
		TotalAmount:   plan.Price,
		PaidAmount:    0,
		PaymentStatus: string(billing.ClassifyPayment(plan.Price, 0)),
		Reference:     billing.NewReference("MBR"),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if old.Status == domain.MembershipActive {
			if err := tx.Model(&domain.Membership{}).Where("id = ?", old.ID).
				Update("status", domain.MembershipExpired).Error; err != nil {
				return err
			}
		}
		return tx.Create(&renewal).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "RENEW_FAILED", "Failed to renew membership", err.Error())
	}

	logOperation(c, "", "membership_renew", "renewed membership "+old.Reference)
	return ok(c, renewal)
}
