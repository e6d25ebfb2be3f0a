package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gstflow/internal/domain"
	"gstflow/internal/handler"
	"gstflow/internal/port"
	"gstflow/internal/service"
	"gstflow/internal/session"
	"gstflow/mocks"
)

func testEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := new(mocks.MockERPClient)
	client.On("BulkFetch", mock.Anything, domain.DoctypeCustomer, mock.Anything, mock.Anything).
		Return([]map[string]any{
			{"name": "CUST-001", "customer_name": "Acme Traders", "disabled": float64(0)},
		}, nil)
	client.On("BulkFetch", mock.Anything, domain.DoctypeItem, mock.Anything, mock.Anything).
		Return([]map[string]any{
			{"item_code": "WIDGET-01", "item_name": "Widget", "disabled": float64(0)},
		}, nil)

	svc := service.NewValidationService(session.NewMemoryStore(), func(port.Credentials) port.ERPClient { return client })
	h := handler.NewValidationHandler(svc)

	r := gin.New()
	r.POST("/api/v1/validations", h.Create)
	r.POST("/api/v1/validations/:id/run", h.Run)
	r.GET("/api/v1/validations/:id", h.Status)
	r.GET("/api/v1/validations/:id/report", h.Report)
	r.GET("/api/v1/validations/:id/report.csv", h.ExportReportCSV)
	r.POST("/api/v1/validations/:id/corrections", h.ApplyCorrections)
	r.DELETE("/api/v1/validations/:id", h.Delete)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSession(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/v1/validations", gin.H{
		"rows": []gin.H{
			{"Customer": "Acme Traders", "Item Code": "WIDGET-01"},
			{"Customer": "Acme Trader", "Item Code": "WIDGET-01"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			SessionID string `json:"session_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.SessionID)
	return resp.Data.SessionID
}

func TestValidationLifecycle(t *testing.T) {
	r := testEngine(t)
	id := createSession(t, r)

	run := doJSON(t, r, http.MethodPost, "/api/v1/validations/"+id+"/run", gin.H{})
	require.Equal(t, http.StatusOK, run.Code)

	var runResp struct {
		Success bool `json:"success"`
		Data    struct {
			Status  string `json:"status"`
			Summary struct {
				CanProceed bool `json:"can_proceed"`
				Warnings   int  `json:"warnings"`
			} `json:"validation_summary"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(run.Body.Bytes(), &runResp))
	assert.True(t, runResp.Success)
	assert.Equal(t, "completed", runResp.Data.Status)
	assert.True(t, runResp.Data.Summary.CanProceed)
	assert.Equal(t, 1, runResp.Data.Summary.Warnings)

	status := doJSON(t, r, http.MethodGet, "/api/v1/validations/"+id, nil)
	assert.Equal(t, http.StatusOK, status.Code)

	report := doJSON(t, r, http.MethodGet, "/api/v1/validations/"+id+"/report", nil)
	assert.Equal(t, http.StatusOK, report.Code)

	csv := doJSON(t, r, http.MethodGet, "/api/v1/validations/"+id+"/report.csv", nil)
	assert.Equal(t, http.StatusOK, csv.Code)
	assert.Contains(t, csv.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, csv.Body.String(), "Acme Trader")

	corr := doJSON(t, r, http.MethodPost, "/api/v1/validations/"+id+"/corrections", gin.H{
		"corrections": []gin.H{
			{"type": "customer", "original": "Acme Trader", "suggested": "Acme Traders"},
		},
	})
	require.Equal(t, http.StatusOK, corr.Code)
	assert.Contains(t, corr.Body.String(), `"applied":1`)

	del := doJSON(t, r, http.MethodDelete, "/api/v1/validations/"+id, nil)
	assert.Equal(t, http.StatusOK, del.Code)

	gone := doJSON(t, r, http.MethodGet, "/api/v1/validations/"+id, nil)
	assert.Equal(t, http.StatusNotFound, gone.Code)
	assert.Contains(t, gone.Body.String(), "SESSION_NOT_FOUND")
}

func TestValidationCreate_MissingRows(t *testing.T) {
	r := testEngine(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/validations", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_BODY")
}

func TestValidationRun_BadSessionID(t *testing.T) {
	r := testEngine(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/validations/not-a-uuid/run", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_SESSION_ID")
}

func TestValidationRun_HalfCredentialsRejected(t *testing.T) {
	r := testEngine(t)
	id := createSession(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/validations/"+id+"/run", gin.H{"api_key": "only-key"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_API_TOKEN")
}
