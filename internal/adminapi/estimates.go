package adminapi

import (
	"net/http"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

// Estimates are quotes, not ledger entries: quantities that fail to parse
// count as zero and missing catalog prices count as zero, so the front desk
// always gets a number back. Persisting the real order goes through the
// strict validation path instead.

func registerEstimateRoutes() {
	webserver.ApiPOST("/estimates/order", estimateOrder)
	webserver.ApiPOST("/estimates/stay", estimateStay)
	webserver.ApiPOST("/estimates/event", estimateEvent)
	webserver.ApiPOST("/estimates/laundry", estimateLaundry)
}

type estimateLinePayload struct {
	Quantity   interface{}   `json:"quantity"`
	UnitPrices []interface{} `json:"unit_prices"`
}

func estimateOrder(c echo.Context) error {
	var payload struct {
		Lines []estimateLinePayload `json:"lines"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse estimate parameters", nil)
	}

	lines := make([]billing.OrderLine, 0, len(payload.Lines))
	for _, l := range payload.Lines {
		lines = append(lines, billing.OrderLine{
			Quantity:            l.Quantity,
			UnitPriceComponents: l.UnitPrices,
		})
	}

	total := billing.CalculateTotal(lines)
	return ok(c, map[string]interface{}{
		"total":     total,
		"formatted": billing.FormatAmount(total),
	})
}

func estimateStay(c echo.Context) error {
	var payload struct {
		RoomTypeId int64  `json:"room_type_id,string"`
		CheckIn    string `json:"check_in"`
		CheckOut   string `json:"check_out"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse estimate parameters", nil)
	}

	checkIn, err := billing.ParseDate(payload.CheckIn)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHECK_IN", "Unable to parse check-in date", nil)
	}
	checkOut, err := billing.ParseDate(payload.CheckOut)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHECK_OUT", "Unable to parse check-out date", nil)
	}

	var rt domain.RoomType
	if err := GetDB(c).Where("id = ?", payload.RoomTypeId).First(&rt).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ROOM_TYPE", "Room type does not exist", nil)
	}

	nights := billing.Nights(checkIn, checkOut)
	total := float64(nights) * rt.BaseRate
	return ok(c, map[string]interface{}{
		"nights":    nights,
		"base_rate": rt.BaseRate,
		"total":     total,
		"formatted": billing.FormatAmount(total),
	})
}

func estimateEvent(c echo.Context) error {
	var payload struct {
		HallId     int64  `json:"hall_id,string"`
		StartAt    string `json:"start_at"`
		EndAt      string `json:"end_at"`
		ChargeType string `json:"charge_type"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse estimate parameters", nil)
	}

	startAt, err := billing.ParseDate(payload.StartAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_START", "Unable to parse start time", nil)
	}
	endAt, err := billing.ParseDate(payload.EndAt)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_END", "Unable to parse end time", nil)
	}
	if payload.ChargeType != domain.ChargeHourly && payload.ChargeType != domain.ChargeDaily {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE_TYPE", "Charge type must be hourly or daily", nil)
	}

	var hall domain.EventHall
	if err := GetDB(c).Where("id = ?", payload.HallId).First(&hall).Error; err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_HALL", "Hall does not exist", nil)
	}

	hours := billing.EventHours(startAt, endAt)
	total := billing.EventEstimate(startAt, endAt, payload.ChargeType, hall.HourlyRate, hall.DailyRate)
	days := (hours + 23) / 24
	if days < 1 {
		days = 1
	}

	return ok(c, map[string]interface{}{
		"hours":     hours,
		"days":      days,
		"total":     total,
		"formatted": billing.FormatAmount(total),
	})
}

type laundryEstimateItem struct {
	CategoryId int64       `json:"category_id,string"`
	ServiceIds []int64     `json:"service_ids"`
	Quantity   interface{} `json:"quantity"`
}

func estimateLaundry(c echo.Context) error {
	var payload struct {
		Items []laundryEstimateItem `json:"items"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse estimate parameters", nil)
	}

	cache := GetApp(c).PriceCache()
	lines := make([]billing.OrderLine, 0, len(payload.Items))
	for _, item := range payload.Items {
		components := make([]interface{}, 0, len(item.ServiceIds))
		for _, svcID := range item.ServiceIds {
			// Unpriced combinations quote as zero.
			price, _ := cache.Lookup(item.CategoryId, svcID)
			components = append(components, price)
		}
		lines = append(lines, billing.OrderLine{
			Quantity:            item.Quantity,
			UnitPriceComponents: components,
		})
	}

	total := billing.CalculateTotal(lines)
	perLine := make([]map[string]interface{}, 0, len(lines))
	for _, l := range lines {
		qty := cast.ToInt(l.Quantity)
		if qty < 0 {
			qty = 0
		}
		perLine = append(perLine, map[string]interface{}{
			"quantity":   qty,
			"unit_price": l.UnitPrice(),
			"line_total": float64(qty) * l.UnitPrice(),
		})
	}

	return ok(c, map[string]interface{}{
		"lines":     perLine,
		"total":     total,
		"formatted": billing.FormatAmount(total),
	})
}
