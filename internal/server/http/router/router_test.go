package router

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eparsel/eparsel/internal/domain/model"
	"github.com/eparsel/eparsel/internal/server/http/handlers"
	testhelpers "github.com/eparsel/eparsel/internal/test"
)

func TestSetupRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	facade := testhelpers.ShippingFacadeStub{
		ShipmentFacadeStub: testhelpers.ShipmentFacadeStub{
			ShipmentsFn: func(ctx context.Context, userID string) ([]model.Shipment, error) {
				return []model.Shipment{{ID: "SHIP-1", UserID: userID, TrackingCode: "EP0000001FI", CreatedAt: time.Unix(100, 0)}}, nil
			},
		},
	}
	engine := Setup(facade, logger)

	body, _ := json.Marshal(map[string]string{"login": "user", "password": "pass"})
	req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for register, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/shipments", nil)
	req.Header.Set("Authorization", "Bearer token")
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for shipments, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/user/shipments", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/track/EP0000001FI", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for public tracking, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/pickup-slots", nil)
	resp = httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 for pickup slots, got %d", resp.Code)
	}
}

var _ handlers.ShippingFacade = (*testhelpers.ShippingFacadeStub)(nil)
