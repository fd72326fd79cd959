package adminapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, handler echo.HandlerFunc, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, handler(c))

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestEstimateOrder(t *testing.T) {
	body := `{"lines":[
		{"quantity":"3","unit_prices":[500,200]},
		{"quantity":2,"unit_prices":[1000]}
	]}`
	rec, envelope := postJSON(t, estimateOrder, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, envelope["success"])

	data := envelope["data"].(map[string]interface{})
	assert.InDelta(t, 4100.0, data["total"].(float64), 0.0001)
	assert.Equal(t, "₦4,100", data["formatted"])
}

func TestEstimateOrderForgivesBadQuantity(t *testing.T) {
	body := `{"lines":[
		{"quantity":"lots","unit_prices":[500]},
		{"quantity":1,"unit_prices":[250]}
	]}`
	rec, envelope := postJSON(t, estimateOrder, body)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope["data"].(map[string]interface{})
	assert.InDelta(t, 250.0, data["total"].(float64), 0.0001)
}

func TestParsePagination(t *testing.T) {
	e := echo.New()

	page, pageSize := func() (int, int) {
		req := httptest.NewRequest(http.MethodGet, "/?page=3&perPage=50", nil)
		return parsePagination(e.NewContext(req, httptest.NewRecorder()))
	}()
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, pageSize)

	page, pageSize = func() (int, int) {
		req := httptest.NewRequest(http.MethodGet, "/?page=-1&perPage=9999", nil)
		return parsePagination(e.NewContext(req, httptest.NewRecorder()))
	}()
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, pageSize)
}

func TestFailEnvelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, fail(c, http.StatusNotFound, "NOT_FOUND", "Thing not found", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "NOT_FOUND", envelope["code"])
	assert.Equal(t, "Thing not found", envelope["message"])
	assert.Equal(t, float64(http.StatusNotFound), envelope["status"])
}
