package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerificationService scripts the relay responses so the HTTP
// contract can be tested without Twilio or Redis.
type stubVerificationService struct {
	sendErr  error
	checkErr error
	valid    bool
}

func (s *stubVerificationService) SendCode(ctx context.Context, phoneNumber string) (*service.SendResult, error) {
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return &service.SendResult{SID: "VE123", PhoneNumber: phoneNumber}, nil
}

func (s *stubVerificationService) CheckCode(ctx context.Context, phoneNumber, code string) (*service.CheckResult, error) {
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	status := "pending"
	if s.valid {
		status = "approved"
	}
	return &service.CheckResult{Valid: s.valid, Status: status}, nil
}

func setupVerificationControllerTest(stub *stubVerificationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	controller := NewVerificationController(stub)

	router.POST("/api/send-verification", controller.SendVerification)
	router.POST("/api/verify-code", controller.VerifyCode)
	router.GET("/api/health", controller.Health)
	return router
}

func TestVerificationController_SendVerification(t *testing.T) {
	router := setupVerificationControllerTest(&stubVerificationService{})

	body, _ := json.Marshal(SendVerificationRequest{PhoneNumber: "11999998888"})
	req := httptest.NewRequest(http.MethodPost, "/api/send-verification", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "VE123", response["sid"])
}

func TestVerificationController_SendVerification_MissingPhone(t *testing.T) {
	router := setupVerificationControllerTest(&stubVerificationService{})

	req := httptest.NewRequest(http.MethodPost, "/api/send-verification", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestVerificationController_SendVerification_ProviderFailure(t *testing.T) {
	router := setupVerificationControllerTest(&stubVerificationService{
		sendErr: errors.New("provider unavailable"),
	})

	body, _ := json.Marshal(SendVerificationRequest{PhoneNumber: "11999998888"})
	req := httptest.NewRequest(http.MethodPost, "/api/send-verification", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestVerificationController_VerifyCode(t *testing.T) {
	tests := []struct {
		name       string
		valid      bool
		wantStatus string
	}{
		{name: "approved code", valid: true, wantStatus: "approved"},
		{name: "wrong code", valid: false, wantStatus: "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupVerificationControllerTest(&stubVerificationService{valid: tt.valid})

			body, _ := json.Marshal(VerifyCodeRequest{PhoneNumber: "11999998888", Code: "123456"})
			req := httptest.NewRequest(http.MethodPost, "/api/verify-code", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, true, response["success"])
			assert.Equal(t, tt.valid, response["valid"])
			assert.Equal(t, tt.wantStatus, response["status"])
		})
	}
}

func TestVerificationController_VerifyCode_MissingFields(t *testing.T) {
	router := setupVerificationControllerTest(&stubVerificationService{})

	body, _ := json.Marshal(map[string]string{"phoneNumber": "11999998888"})
	req := httptest.NewRequest(http.MethodPost, "/api/verify-code", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerificationController_Health(t *testing.T) {
	router := setupVerificationControllerTest(&stubVerificationService{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
