package adminapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/hotelworks/hotelops/internal/app"
	"github.com/hotelworks/hotelops/internal/billing"
	"github.com/hotelworks/hotelops/internal/domain"
	"github.com/hotelworks/hotelops/internal/webserver"
	"github.com/hotelworks/hotelops/pkg/common"
	"github.com/jung-kurt/gofpdf"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

func registerReceiptRoutes() {
	webserver.ApiGET("/receipts", listReceipts)
	webserver.ApiGET("/receipts/:id", getReceipt)
	webserver.ApiGET("/receipts/:id/pdf", receiptPdf)
	webserver.ApiPOST("/receipts", issueReceipt)
}

type receiptPayload struct {
	SourceType string  `json:"source_type" form:"source_type"`
	SourceId   int64   `json:"source_id,string" form:"source_id"`
	Amount     float64 `json:"amount" form:"amount"`
	Method     string  `json:"method" form:"method"`
	GatewayRef string  `json:"gateway_ref" form:"gateway_ref"`
	Remark     string  `json:"remark" form:"remark"`
}

func listReceipts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	query := GetDB(c).Model(&domain.Receipt{})

	if st := strings.TrimSpace(c.QueryParam("source_type")); st != "" {
		query = query.Where("source_type = ?", st)
	}
	if guestID := strings.TrimSpace(c.QueryParam("guest_id")); guestID != "" {
		query = query.Where("guest_id = ?", guestID)
	}
	if ref := strings.TrimSpace(c.QueryParam("reference")); ref != "" {
		query = query.Where("reference = ?", ref)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query receipts", err.Error())
	}

	var receipts []domain.Receipt
	if err := query.Order("issued_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&receipts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query receipts", err.Error())
	}
	return paged(c, receipts, total, page, pageSize)
}

func getReceipt(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid receipt ID", nil)
	}
	var receipt domain.Receipt
	if err := GetDB(c).Where("id = ?", id).First(&receipt).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "RECEIPT_NOT_FOUND", "Receipt not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query receipt", err.Error())
	}
	return ok(c, receipt)
}

// chargeSource abstracts the four billable records a receipt can pay into.
type chargeSource struct {
	GuestId       int64
	Reference     string
	TotalAmount   float64
	PaidAmount    float64
	model         interface{}
	id            int64
}

func loadChargeSource(db *gorm.DB, sourceType string, sourceID int64) (*chargeSource, error) {
	switch sourceType {
	case domain.SourceBooking:
		var b domain.Booking
		if err := db.Where("id = ?", sourceID).First(&b).Error; err != nil {
			return nil, err
		}
		return &chargeSource{b.GuestId, b.Reference, b.TotalAmount, b.PaidAmount, &domain.Booking{}, b.ID}, nil
	case domain.SourceLaundry:
		var o domain.LaundryOrder
		if err := db.Where("id = ?", sourceID).First(&o).Error; err != nil {
			return nil, err
		}
		return &chargeSource{o.GuestId, o.Reference, o.TotalAmount, o.PaidAmount, &domain.LaundryOrder{}, o.ID}, nil
	case domain.SourceMembership:
		var m domain.Membership
		if err := db.Where("id = ?", sourceID).First(&m).Error; err != nil {
			return nil, err
		}
		return &chargeSource{m.GuestId, m.Reference, m.TotalAmount, m.PaidAmount, &domain.Membership{}, m.ID}, nil
	case domain.SourceEvent:
		var e domain.EventBooking
		if err := db.Where("id = ?", sourceID).First(&e).Error; err != nil {
			return nil, err
		}
		return &chargeSource{e.GuestId, e.Reference, e.TotalAmount, e.PaidAmount, &domain.EventBooking{}, e.ID}, nil
	}
	return nil, errors.New("unknown source type")
}

// issueReceipt records a payment against a billable record. The source row's
// paid amount and payment status move in the same transaction as the receipt
// insert, so the ledger can never drift from the receipts behind it.
func issueReceipt(c echo.Context) error {
	var payload receiptPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse receipt parameters", nil)
	}
	if payload.Amount <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_AMOUNT", "Payment amount must be positive", nil)
	}
	method := payload.Method
	if method == "" {
		method = "cash"
	}

	db := GetDB(c)
	source, err := loadChargeSource(db, payload.SourceType, payload.SourceId)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SOURCE", "Billable record not found", nil)
	}

	newPaid := source.PaidAmount + payload.Amount
	if err := billing.ValidateCharge(source.TotalAmount, newPaid); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_CHARGE", err.Error(), nil)
	}

	// Gateway payments must verify against the gateway before they count.
	if method == "gateway" {
		gateway := GetApp(c).Gateway()
		if gateway == nil || !gateway.Enabled() {
			return fail(c, http.StatusBadRequest, "GATEWAY_DISABLED", "Payment gateway is not configured", nil)
		}
		if strings.TrimSpace(payload.GatewayRef) == "" {
			return fail(c, http.StatusBadRequest, "MISSING_GATEWAY_REF", "Gateway reference is required", nil)
		}
		result, err := gateway.VerifyTransaction(c.Request().Context(), payload.GatewayRef)
		if err != nil {
			return fail(c, http.StatusBadGateway, "GATEWAY_ERROR", "Gateway verification failed", err.Error())
		}
		if result.Status != "success" {
			return fail(c, http.StatusConflict, "GATEWAY_UNSETTLED",
				"Gateway transaction is "+result.Status, nil)
		}
		if result.Amount < payload.Amount {
			return fail(c, http.StatusConflict, "GATEWAY_AMOUNT_MISMATCH",
				"Gateway settled less than the receipt amount", nil)
		}
	}

	receipt := domain.Receipt{
		ID:         common.UUIDint64(),
		Reference:  billing.NewReference("RCP"),
		SourceType: payload.SourceType,
		SourceId:   payload.SourceId,
		GuestId:    source.GuestId,
		Amount:     payload.Amount,
		Method:     method,
		GatewayRef: payload.GatewayRef,
		IssuedBy:   currentUsername(c),
		IssuedAt:   time.Now(),
		Remark:     payload.Remark,
	}

	newStatus := string(billing.ClassifyPayment(source.TotalAmount, newPaid))
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&receipt).Error; err != nil {
			return err
		}
		return tx.Model(source.model).Where("id = ?", source.id).Updates(map[string]interface{}{
			"paid_amount":    newPaid,
			"payment_status": newStatus,
			"updated_at":     time.Now(),
		}).Error
	})
	if err != nil {
		return fail(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to issue receipt", err.Error())
	}

	logOperation(c, "", "receipt_issue",
		"issued receipt "+receipt.Reference+" against "+source.Reference)
	GetApp(c).Bus().Publish(app.TopicReceiptIssued, receipt.ID)

	return ok(c, map[string]interface{}{
		"receipt":        receipt,
		"paid_amount":    newPaid,
		"payment_status": newStatus,
		"balance":        billing.Balance(source.TotalAmount, newPaid),
	})
}

// receiptPdf renders one receipt as a downloadable PDF.
func receiptPdf(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid receipt ID", nil)
	}
	db := GetDB(c)

	var receipt domain.Receipt
	if err := db.Where("id = ?", id).First(&receipt).Error; err != nil {
		return fail(c, http.StatusNotFound, "RECEIPT_NOT_FOUND", "Receipt not found", nil)
	}
	var guest domain.Guest
	db.Where("id = ?", receipt.GuestId).First(&guest)

	appCtx := GetApp(c)
	hotelName := appCtx.GetSettingsStringValue("system", "HotelName")
	footer := appCtx.GetSettingsStringValue("receipt", "FooterNote")

	source, _ := loadChargeSource(db, receipt.SourceType, receipt.SourceId)

	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.SetTitle("Receipt "+receipt.Reference, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(hotelName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Payment Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	line("Receipt No:", receipt.Reference)
	line("Issued:", common.FmtDatetime(receipt.IssuedAt))
	line("Guest:", guest.Name)
	line("For:", receipt.SourceType+" "+sourceRef(source))
	line("Method:", receipt.Method)
	if receipt.GatewayRef != "" {
		line("Gateway Ref:", receipt.GatewayRef)
	}
	pdf.Ln(2)

	// Core fonts are cp1252; the naira sign has no glyph there, so the
	// PDF prints ISO code amounts instead.
	pdf.SetFont("Helvetica", "B", 12)
	line("Amount Paid:", billing.FormatAmountCode(receipt.Amount))
	if source != nil {
		line("Balance:", billing.FormatAmountCode(billing.Balance(source.TotalAmount, source.PaidAmount)))
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, tr(footer), "", 1, "C", false, 0, "")
	if receipt.IssuedBy != "" {
		pdf.CellFormat(0, 6, "Issued by "+receipt.IssuedBy, "", 1, "C", false, 0, "")
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="receipt-`+receipt.Reference+`.pdf"`)
	c.Response().WriteHeader(http.StatusOK)
	return pdf.Output(c.Response())
}

func sourceRef(source *chargeSource) string {
	if source == nil {
		return ""
	}
	return source.Reference
}
