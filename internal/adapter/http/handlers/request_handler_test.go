package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"manutencao_xpto/internal/adapter/http/handlers/mocks"
	"manutencao_xpto/internal/domain/entities"
	"manutencao_xpto/internal/domain/workflow"
	"manutencao_xpto/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

// asActor seeds the actor the auth middleware would have stored.
func asActor(actor entities.ActorContext) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("actor", actor)
	}
}

var testClient = entities.ActorContext{UserID: "u-1", Role: entities.RoleClient, ClientID: "client-1"}

func TestRequestHandler_CreateRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("no actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.POST("/v1/requests", h.CreateRequest)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.POST("/v1/requests", asActor(testClient), h.CreateRequest)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase rejects the actor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		tech := entities.ActorContext{UserID: "u-2", Role: entities.RoleTechnician, TechnicianID: "tech-1"}
		r.POST("/v1/requests", asActor(tech), h.CreateRequest)

		uc.EXPECT().Create(gomock.Any(), tech, gomock.Any()).Return(entities.Request{}, workflow.ErrForbidden)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{"title":"Leak","description":"Leaking pipe","location":"Apt 3","service_type":"plumbing","priority":"high"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.POST("/v1/requests", asActor(testClient), h.CreateRequest)

		now := time.Now().UTC()
		uc.EXPECT().Create(gomock.Any(), testClient, usecase.CreateRequestInput{
			ClientID:    "client-1",
			Title:       "Leak",
			Description: "Leaking pipe",
			Location:    "Apt 3",
			ServiceType: entities.ServiceTypePlumbing,
			Priority:    entities.PriorityHigh,
		}).Return(entities.Request{
			ID:          "req-1",
			ClientID:    "client-1",
			Title:       "Leak",
			Status:      entities.RequestStatusPending,
			ServiceType: entities.ServiceTypePlumbing,
			Priority:    entities.PriorityHigh,
			CreatedAt:   now,
			UpdatedAt:   now,
		}, nil)

		req := httptest.NewRequest(http.MethodPost, "/v1/requests", bytes.NewBufferString(`{"client_id":"client-1","title":"Leak","description":"Leaking pipe","location":"Apt 3","service_type":"plumbing","priority":"high"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["id"] != "req-1" {
			t.Fatalf("expected id req-1, got %v", body["id"])
		}
		if body["status"] != "pending" {
			t.Fatalf("expected status pending, got %v", body["status"])
		}
	})
}

func TestRequestHandler_ApproveRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	admin := entities.ActorContext{UserID: "u-a", Role: entities.RoleAdmin}

	t.Run("illegal transition maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.PATCH("/v1/requests/:id/approve", asActor(admin), h.ApproveRequest)

		uc.EXPECT().Approve(gomock.Any(), admin, "req-1").Return(entities.Request{}, workflow.ErrIllegalTransition)

		req := httptest.NewRequest(http.MethodPatch, "/v1/requests/req-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.PATCH("/v1/requests/:id/approve", asActor(admin), h.ApproveRequest)

		uc.EXPECT().Approve(gomock.Any(), admin, "missing").Return(entities.Request{}, usecase.ErrRequestNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/v1/requests/missing/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIRequestUseCase(ctrl)
		h := NewRequestHandler(uc)

		r := gin.New()
		r.PATCH("/v1/requests/:id/approve", asActor(admin), h.ApproveRequest)

		uc.EXPECT().Approve(gomock.Any(), admin, "req-1").
			Return(entities.Request{ID: "req-1", ClientID: "client-1", Status: entities.RequestStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/requests/req-1/approve", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body["status"] != "approved" {
			t.Fatalf("expected status approved, got %v", body["status"])
		}
	})
}
