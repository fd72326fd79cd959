package adminapi

import (
	"net/http"
	"time"

	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/hotelworks/hotelops/pkg/metrics"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
)

func registerDashboardRoutes() {
	webserver.ApiGET("/dashboard/summary", dashboardSummary)
	webserver.ApiGET("/dashboard/revenue", dashboardRevenue)
	webserver.ApiGET("/dashboard/system", dashboardSystem)
}

// startOfDay returns midnight in t's own location. Truncate would snap
// to the UTC day boundary and shift "today" by the local offset.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// dashboardSummary returns the front-page counters: room occupancy, active
// bookings, today's arrivals and departures, and outstanding balances.
func dashboardSummary(c echo.Context) error {
	db := GetDB(c)

	var totalRooms, occupiedRooms, maintenanceRooms int64
	db.Model(&domain.Room{}).Count(&totalRooms)
	db.Model(&domain.Room{}).Where("status = ?", domain.RoomOccupied).Count(&occupiedRooms)
	db.Model(&domain.Room{}).Where("status = ?", domain.RoomMaintenance).Count(&maintenanceRooms)

	occupancy := 0.0
	if totalRooms > 0 {
		occupancy = float64(occupiedRooms) / float64(totalRooms) * 100
	}

	dayStart := startOfDay(time.Now())
	dayEnd := dayStart.Add(24 * time.Hour)

	var arrivals, departures, activeBookings int64
	db.Model(&domain.Booking{}).
		Where("status = ? AND check_in >= ? AND check_in < ?", domain.BookingReserved, dayStart, dayEnd).
		Count(&arrivals)
	db.Model(&domain.Booking{}).
		Where("status = ? AND check_out >= ? AND check_out < ?", domain.BookingCheckedIn, dayStart, dayEnd).
		Count(&departures)
	db.Model(&domain.Booking{}).
		Where("status IN ?", []string{domain.BookingReserved, domain.BookingCheckedIn}).
		Count(&activeBookings)

	var guests, activeMemberships, upcomingEvents int64
	db.Model(&domain.Guest{}).Count(&guests)
	db.Model(&domain.Membership{}).Where("status = ?", domain.MembershipActive).Count(&activeMemberships)
	db.Model(&domain.EventBooking{}).
		Where("status = ? AND start_at > ?", domain.EventScheduled, time.Now()).
		Count(&upcomingEvents)

	// Outstanding balance across every open billable record.
	type sums struct {
		Total float64
		Paid  float64
	}
	var outstanding float64
	for _, model := range []interface{}{
		&domain.Booking{}, &domain.LaundryOrder{}, &domain.Membership{}, &domain.EventBooking{},
	} {
		var s sums
		db.Model(model).Where("payment_status != ?", string(billing.StatusPaid)).
			Select("COALESCE(SUM(total_amount),0) as total, COALESCE(SUM(paid_amount),0) as paid").
			Scan(&s)
		outstanding += billing.Balance(s.Total, s.Paid)
	}

	return ok(c, map[string]interface{}{
		"rooms": map[string]interface{}{
			"total":       totalRooms,
			"occupied":    occupiedRooms,
			"maintenance": maintenanceRooms,
			"occupancy":   occupancy,
		},
		"bookings": map[string]interface{}{
			"active":     activeBookings,
			"arrivals":   arrivals,
			"departures": departures,
		},
		"guests":             guests,
		"active_memberships": activeMemberships,
		"upcoming_events":    upcomingEvents,
		"outstanding":        outstanding,
		"outstanding_fmt":    billing.FormatAmount(outstanding),
	})
}

// dashboardRevenue aggregates receipts over the last 30 days into a daily
// series with mean and median, split by source type.
func dashboardRevenue(c echo.Context) error {
	db := GetDB(c)
	since := time.Now().AddDate(0, 0, -30)

	var receipts []domain.Receipt
	if err := db.Where("issued_at >= ?", since).Order("issued_at ASC").Find(&receipts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query receipts", err.Error())
	}

	daily := make(map[string]float64)
	bySource := make(map[string]float64)
	var grand float64
	for _, r := range receipts {
		day := common.FmtDate(r.IssuedAt)
		daily[day] += r.Amount
		bySource[r.SourceType] += r.Amount
		grand += r.Amount
	}

	series := make([]map[string]interface{}, 0, 31)
	samples := make([]float64, 0, 31)
	for d := 0; d <= 30; d++ {
		day := common.FmtDate(since.AddDate(0, 0, d))
		amount := daily[day]
		series = append(series, map[string]interface{}{"date": day, "amount": amount})
		samples = append(samples, amount)
	}

	mean, _ := stats.Mean(samples)
	median, _ := stats.Median(samples)
	peak, _ := stats.Max(samples)

	return ok(c, map[string]interface{}{
		"series":       series,
		"by_source":    bySource,
		"total":        grand,
		"total_fmt":    billing.FormatAmount(grand),
		"daily_mean":   mean,
		"daily_median": median,
		"daily_peak":   peak,
	})
}

// dashboardSystem exposes the host and process gauges collected by the
// monitor jobs.
func dashboardSystem(c echo.Context) error {
	result := make(map[string]interface{})
	for _, name := range []string{
		"system_cpuuse", "system_memuse", "hotelops_cpuuse", "hotelops_memuse",
	} {
		if v, found := metrics.Latest(name); found {
			result[name] = v
		}
	}

	end := time.Now()
	start := end.Add(-time.Hour)
	cpuSeries := metrics.Range("system_cpuuse", start, end)
	points := make([]map[string]interface{}, 0, len(cpuSeries))
	for _, p := range cpuSeries {
		points = append(points, map[string]interface{}{
			"ts":    p.Timestamp,
			"value": p.Value,
		})
	}
	result["cpu_series"] = points

	return ok(c, result)
}
