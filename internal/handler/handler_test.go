package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunboheater/piano-studio-api/internal/models"
	"github.com/yunboheater/piano-studio-api/internal/service"
	"github.com/yunboheater/piano-studio-api/pkg/response"
)

type pricingRowsMock struct{}

func (pricingRowsMock) List(context.Context) ([]models.PricingRow, error) {
	return nil, nil
}

type settingsMock struct {
	settings models.Settings
}

func (m settingsMock) Settings(context.Context) (*models.Settings, error) {
	copied := m.settings
	return &copied, nil
}

func TestSignupHandlerRejectsInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSignupHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/piano/signup", bytes.NewReader([]byte(`not json`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Signup(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityHandlerRejectsUnknownMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAvailabilityHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/piano/suggestions?mode=banana&duration=00:30:00", nil)
	c.Request = req

	handler.Suggest(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStudentHandlerRejectsUnknownCollection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewStudentHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/teacher/students?collection=alumni", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPricingHandlerReturnsTiers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pricing := service.NewPricingService(pricingRowsMock{}, settingsMock{models.Settings{RatePerMinute: 0.83}}, nil, nil)
	handler := NewPricingHandler(pricing)

	router := gin.New()
	router.GET("/piano/pricing", handler.Tiers)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/piano/pricing", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	body := w.Body.String()
	assert.Contains(t, body, "16.60")
	assert.Contains(t, body, "24.90")
	assert.Contains(t, body, "37.35")
}
