package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/winshop/winshop/internal/currency"
	"github.com/winshop/winshop/internal/dashboard"
	"github.com/winshop/winshop/internal/models"
	"github.com/winshop/winshop/internal/services"
	"github.com/winshop/winshop/internal/storage"
)

type mockOrderService struct {
	CreateFunc    func(ctx context.Context, req *models.CreateOrderRequest) (string, error)
	ListFunc      func(ctx context.Context) ([]models.Order, error)
	UpdateFunc    func(ctx context.Context, id uuid.UUID, rawStatus string) error
	DeleteFunc    func(ctx context.Context, id uuid.UUID) error
	DashboardFunc func(ctx context.Context, criteria dashboard.Criteria, unit currency.Unit) (*services.DashboardData, error)
}

func (m *mockOrderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return "WIN123456", nil
}

func (m *mockOrderService) ListOrders(ctx context.Context) ([]models.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Order{}, nil
}

func (m *mockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, rawStatus)
	}
	return nil
}

func (m *mockOrderService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockOrderService) Dashboard(ctx context.Context, criteria dashboard.Criteria, unit currency.Unit) (*services.DashboardData, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx, criteria, unit)
	}
	return &services.DashboardData{}, nil
}

func doRequest(h echo.HandlerFunc, method, target, body string, params ...string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return rec, h(c)
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("success returns order number", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{})
		body := `{"customer":{"name":"Alice","phone":"690112233","city":"Douala"},"items":[{"name":"Nike","price":60,"quantity":2}],"totalAmount":120}`
		rec, err := doRequest(h.CreateOrder, http.MethodPost, "/api/orders", body)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				OrderNumber string `json:"orderNumber"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response: %v", err)
		}
		if !resp.Success || resp.Data.OrderNumber != "WIN123456" {
			t.Errorf("response = %+v, want success with WIN123456", resp)
		}
	})

	t.Run("validation error maps to 400", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			CreateFunc: func(ctx context.Context, req *models.CreateOrderRequest) (string, error) {
				return "", services.ErrInvalidCustomer
			},
		})
		rec, err := doRequest(h.CreateOrder, http.MethodPost, "/api/orders", `{}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	id := uuid.New()

	t.Run("malformed id", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{})
		rec, err := doRequest(h.UpdateStatus, http.MethodPatch, "/api/orders/nope", `{"status":"paid"}`, "id", "nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown status", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, rawStatus string) error {
				return services.ErrInvalidStatus
			},
		})
		rec, err := doRequest(h.UpdateStatus, http.MethodPatch, "/api/orders/"+id.String(), `{"status":"cancelled"}`, "id", id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, rawStatus string) error {
				return storage.ErrOrderNotFound
			},
		})
		rec, err := doRequest(h.UpdateStatus, http.MethodPatch, "/api/orders/"+id.String(), `{"status":"paid"}`, "id", id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		var gotStatus string
		h := NewOrderHandler(&mockOrderService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, rawStatus string) error {
				gotStatus = rawStatus
				return nil
			},
		})
		rec, err := doRequest(h.UpdateStatus, http.MethodPatch, "/api/orders/"+id.String(), `{"status":"shipped"}`, "id", id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if gotStatus != "shipped" {
			t.Errorf("service received status %q, want shipped", gotStatus)
		}
	})
}

func TestOrderHandler_DeleteOrder(t *testing.T) {
	id := uuid.New()

	t.Run("not found", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				return storage.ErrOrderNotFound
			},
		})
		rec, err := doRequest(h.DeleteOrder, http.MethodDelete, "/api/orders/"+id.String(), "", "id", id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{})
		rec, err := doRequest(h.DeleteOrder, http.MethodDelete, "/api/orders/"+id.String(), "", "id", id.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})
}

func TestOrderHandler_Dashboard(t *testing.T) {
	h := NewOrderHandler(&mockOrderService{
		DashboardFunc: func(ctx context.Context, criteria dashboard.Criteria, unit currency.Unit) (*services.DashboardData, error) {
			if criteria.Status != "pending" || criteria.City != "Douala" {
				t.Errorf("criteria = %+v, want status/city bound from query", criteria)
			}
			if unit != currency.XAF {
				t.Errorf("unit = %s, want XAF parsed from query", unit)
			}
			return &services.DashboardData{
				Stats:  services.StatsView{TotalOrders: 4, TopCity: "Douala"},
				Cities: []string{"Douala"},
			}, nil
		},
	})

	rec, err := doRequest(h.Dashboard, http.MethodGet, "/api/orders/stats?status=pending&city=Douala&currency=xaf", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Stats struct {
				TotalOrders int    `json:"totalOrders"`
				TopCity     string `json:"topCity"`
			} `json:"stats"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if resp.Data.Stats.TotalOrders != 4 || resp.Data.Stats.TopCity != "Douala" {
		t.Errorf("response data = %+v", resp.Data)
	}
}

func TestOrderHandler_ListOrders(t *testing.T) {
	t.Run("storage failure is a generic 500", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			ListFunc: func(ctx context.Context) ([]models.Order, error) {
				return nil, errors.New("db down")
			},
		})
		rec, err := doRequest(h.ListOrders, http.MethodGet, "/api/orders", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		if strings.Contains(rec.Body.String(), "db down") {
			t.Error("internal error detail leaked to the client")
		}
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		h := NewOrderHandler(&mockOrderService{
			ListFunc: func(ctx context.Context) ([]models.Order, error) {
				return nil, nil
			},
		})
		rec, err := doRequest(h.ListOrders, http.MethodGet, "/api/orders", "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(rec.Body.String(), `"data":[]`) {
			t.Errorf("body = %s, want empty data array", rec.Body.String())
		}
	})
}
