package adminapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

func registerLaundryRoutes() {
	webserver.ApiGET("/laundry/categories", listLaundryCategories)
	webserver.ApiPOST("/laundry/categories", createLaundryCategory)
	webserver.ApiDELETE("/laundry/categories/:id", deleteLaundryCategory)

	webserver.ApiGET("/laundry/services", listLaundryServices)
	webserver.ApiPOST("/laundry/services", createLaundryService)
	webserver.ApiDELETE("/laundry/services/:id", deleteLaundryService)

	webserver.ApiGET("/laundry/prices", listLaundryPrices)
	webserver.ApiPOST("/laundry/prices", upsertLaundryPrice)
	webserver.ApiDELETE("/laundry/prices/:id", deleteLaundryPrice)

	webserver.ApiGET("/laundry/orders", listLaundryOrders)
	webserver.ApiGET("/laundry/orders/:id", getLaundryOrder)
	webserver.ApiPOST("/laundry/orders", createLaundryOrder)
	webserver.ApiPUT("/laundry/orders/:id/status", updateLaundryOrderStatus)
}

func listLaundryCategories(c echo.Context) error {
	var categories []domain.LaundryCategory
	if err := GetDB(c).Order("name ASC").Find(&categories).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories", err.Error())
	}
	return ok(c, categories)
}

func createLaundryCategory(c echo.Context) error {
	var payload struct {
		Name   string `json:"name" form:"name"`
		Remark string `json:"remark" form:"remark"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse category parameters", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Category name is required", nil)
	}

	var count int64
	GetDB(c).Model(&domain.LaundryCategory{}).Where("name = ?", payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NAME_EXISTS", "Category name already exists", nil)
	}

	cat := domain.LaundryCategory{
		ID:     common.UUIDint64(),
		Name:   strings.TrimSpace(payload.Name),
		Remark: payload.Remark,
	}
	if err := GetDB(c).Create(&cat).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create category", err.Error())
	}
	return ok(c, cat)
}

func deleteLaundryCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID", nil)
	}

	var priced int64
	GetDB(c).Model(&domain.LaundryPrice{}).Where("category_id = ?", id).Count(&priced)
	if priced > 0 {
		return fail(c, http.StatusConflict, "CATEGORY_IN_USE", "Category has price entries", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.LaundryCategory{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete category", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func listLaundryServices(c echo.Context) error {
	var services []domain.LaundryService
	if err := GetDB(c).Order("name ASC").Find(&services).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}
	return ok(c, services)
}

func createLaundryService(c echo.Context) error {
	var payload struct {
		Name   string `json:"name" form:"name"`
		Remark string `json:"remark" form:"remark"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service parameters", nil)
	}
	if strings.TrimSpace(payload.Name) == "" {
		return fail(c, http.StatusBadRequest, "MISSING_NAME", "Service name is required", nil)
	}

	var count int64
	GetDB(c).Model(&domain.LaundryService{}).Where("name = ?", payload.Name).Count(&count)
	if count > 0 {
		return fail(c, http.StatusConflict, "NAME_EXISTS", "Service name already exists", nil)
	}

	svc := domain.LaundryService{
		ID:     common.UUIDint64(),
		Name:   strings.TrimSpace(payload.Name),
		Remark: payload.Remark,
	}
	if err := GetDB(c).Create(&svc).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create service", err.Error())
	}
	return ok(c, svc)
}

func deleteLaundryService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}

	var priced int64
	GetDB(c).Model(&domain.LaundryPrice{}).Where("service_id = ?", id).Count(&priced)
	if priced > 0 {
		return fail(c, http.StatusConflict, "SERVICE_IN_USE", "Service has price entries", nil)
	}

	if err := GetDB(c).Where("id = ?", id).Delete(&domain.LaundryService{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete service", err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func listLaundryPrices(c echo.Context) error {
	query := GetDB(c).Model(&domain.LaundryPrice{})
	if cat := strings.TrimSpace(c.QueryParam("category_id")); cat != "" {
		query = query.Where("category_id = ?", cat)
	}
	var prices []domain.LaundryPrice
	if err := query.Order("category_id ASC, service_id ASC").Find(&prices).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query prices", err.Error())
	}
	return ok(c, prices)
}

// upsertLaundryPrice sets one cell of the category x service price matrix
// and refreshes the in-memory price snapshot.
func upsertLaundryPrice(c echo.Context) error {
	var payload struct {
		CategoryId int64   `json:"category_id,string" form:"category_id"`
		ServiceId  int64   `json:"service_id,string" form:"service_id"`
		Price      float64 `json:"price" form:"price"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse price parameters", nil)
	}
	if payload.Price < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_PRICE", "Price cannot be negative", nil)
	}

	db := GetDB(c)
	var cat domain.LaundryCategory
	if err := db.Where("id = ?", payload.CategoryId).First(&cat).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CATEGORY", "Category does not exist", nil)
	}
	var svc domain.LaundryService
	if err := db.Where("id = ?", payload.ServiceId).First(&svc).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SERVICE", "Service does not exist", nil)
	}

	var price domain.LaundryPrice
	err := db.Where("category_id = ? AND service_id = ?", payload.CategoryId, payload.ServiceId).
		First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		price = domain.LaundryPrice{
			ID:         common.UUIDint64(),
			CategoryId: payload.CategoryId,
			ServiceId:  payload.ServiceId,
			Price:      payload.Price,
		}
		if err := db.Create(&price).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create price", err.Error())
		}
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query price", err.Error())
	} else {
		if err := db.Model(&price).Updates(map[string]interface{}{
			"price":      payload.Price,
			"updated_at": time.Now(),
		}).Error; err != nil {
			return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update price", err.Error())
		}
		price.Price = payload.Price
	}

	GetApp(c).ReloadPriceCache()
	return ok(c, price)
}

func deleteLaundryPrice(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid price ID", nil)
	}
	if err := GetDB(c).Where("id = ?", id).Delete(&domain.LaundryPrice{}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete price", err.Error())
	}
	GetApp(c).ReloadPriceCache()
	return c.NoContent(http.StatusNoContent)
}

type laundryItemPayload struct {
	CategoryId int64       `json:"category_id,string" form:"category_id"`
	ServiceIds []int64     `json:"service_ids" form:"service_ids"`
	Quantity   interface{} `json:"quantity" form:"quantity"`
}

type laundryOrderPayload struct {
	GuestId   int64                `json:"guest_id,string" form:"guest_id"`
	BookingId int64                `json:"booking_id,string" form:"booking_id"`
	Items     []laundryItemPayload `json:"items" form:"items"`
	Remark    string               `json:"remark" form:"remark"`
}

func listLaundryOrders(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.LaundryOrder{})

	if status := strings.TrimSpace(c.QueryParam("status")); status != "" {
		query = query.Where("status = ?", status)
	}
	if ps := strings.TrimSpace(c.QueryParam("payment_status")); ps != "" {
		query = query.Where("payment_status = ?", ps)
	}
	if guestID := strings.TrimSpace(c.QueryParam("guest_id")); guestID != "" {
		query = query.Where("guest_id = ?", guestID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}

	var orders []domain.LaundryOrder
	if err := query.Order("id DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&orders).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query orders", err.Error())
	}
	return paged(c, orders, total, page, pageSize)
}

func getLaundryOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	var order domain.LaundryOrder
	if err := GetDB(c).Where("id = ?", id).First(&order).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Laundry order not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query order", err.Error())
	}

	var items []domain.LaundryOrderItem
	GetDB(c).Where("order_id = ?", id).Find(&items)
	return ok(c, map[string]interface{}{"order": order, "items": items})
}

// createLaundryOrder prices each garment line off the catalog snapshot and
// persists the order. Financial fields are validated strictly: a quantity or
// price that would be tolerated in an estimate rejects the order here.
func createLaundryOrder(c echo.Context) error {
	var payload laundryOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order parameters", nil)
	}
	if len(payload.Items) == 0 {
		return fail(c, http.StatusBadRequest, "EMPTY_ORDER", "Order must have at least one item", nil)
	}

	db := GetDB(c)
	var guest domain.Guest
	if err := db.Where("id = ?", payload.GuestId).First(&guest).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_GUEST", "Guest does not exist", nil)
	}
	if payload.BookingId > 0 {
		var booking domain.Booking
		if err := db.Where("id = ?", payload.BookingId).First(&booking).Error; err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_BOOKING", "Booking does not exist", nil)
		}
	}

	cache := GetApp(c).PriceCache()
	lines := make([]billing.OrderLine, 0, len(payload.Items))
	items := make([]domain.LaundryOrderItem, 0, len(payload.Items))

	for _, item := range payload.Items {
		if len(item.ServiceIds) == 0 {
			return fail(c, http.StatusBadRequest, "MISSING_SERVICES", "Each item needs at least one service", nil)
		}
		components := make([]interface{}, 0, len(item.ServiceIds))
		for _, svcID := range item.ServiceIds {
			price, found := cache.Lookup(item.CategoryId, svcID)
			if !found {
				var row domain.LaundryPrice
				err := db.Where("category_id = ? AND service_id = ?", item.CategoryId, svcID).
					First(&row).Error
				if err != nil {
					return fail(c, http.StatusBadRequest, "PRICE_NOT_FOUND",
						"No price configured for the selected category and service", nil)
				}
				price = row.Price
			}
			components = append(components, price)
		}

		line := billing.OrderLine{Quantity: item.Quantity, UnitPriceComponents: components}
		lines = append(lines, line)

		if err := billing.ValidateOrderLines([]billing.OrderLine{line}); err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_ITEM", err.Error(), nil)
		}

		svcJSON, _ := json.Marshal(item.ServiceIds)
		qty := cast.ToInt(item.Quantity)
		unit := line.UnitPrice()

		items = append(items, domain.LaundryOrderItem{
			ID:         common.UUIDint64(),
			CategoryId: item.CategoryId,
			ServiceIds: string(svcJSON),
			Quantity:   qty,
			UnitPrice:  unit,
			LineTotal:  float64(qty) * unit,
		})
	}

	total := billing.CalculateTotal(lines)
	if err := billing.ValidateCharge(total, 0); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE", err.Error(), nil)
	}

	order := domain.LaundryOrder{
		ID:            common.UUIDint64(),
		GuestId:       payload.GuestId,
		BookingId:     payload.BookingId,
		Status:        domain.LaundryReceived,
		TotalAmount:   total,
		PaidAmount:    0,
		PaymentStatus: string(billing.ClassifyPayment(total, 0)),
		Reference:     billing.NewReference("LND"),
		Remark:        payload.Remark,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderId = order.ID
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create laundry order", err.Error())
	}

	logOperation(c, "", "laundry_order_create", "created laundry order "+order.Reference)
	return ok(c, map[string]interface{}{"order": order, "items": items})
}

var laundryTransitions = map[string][]string{
	domain.LaundryReceived:   {domain.LaundryProcessing, domain.LaundryCancelled},
	domain.LaundryProcessing: {domain.LaundryReady, domain.LaundryCancelled},
	domain.LaundryReady:      {domain.LaundryDelivered},
}

func updateLaundryOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}

	var payload struct {
		Status string `json:"status" form:"status"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse status parameters", nil)
	}

	var order domain.LaundryOrder
	if err := GetDB(c).Where("id = ?", id).First(&order).Error; err != nil {
		return fail(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Laundry order not found", nil)
	}

	allowed := false
	for _, next := range laundryTransitions[order.Status] {
		if next == payload.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fail(c, http.StatusConflict, "INVALID_TRANSITION",
			"Cannot move order from "+order.Status+" to "+payload.Status, nil)
	}

	if err := GetDB(c).Model(&order).Updates(map[string]interface{}{
		"status":     payload.Status,
		"updated_at": time.Now(),
	}).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to update order status", err.Error())
	}

	order.Status = payload.Status
	return ok(c, order)
}
