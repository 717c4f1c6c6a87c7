package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/wismo-service/internal/adapter/cache"
	"github.com/example/wismo-service/internal/domain"
	"github.com/example/wismo-service/internal/usecase"
)

type stubWarehouse struct {
	orders   map[string][]domain.OrderRow
	products []domain.Product
	err      error
	pingErr  error
}

func (s *stubWarehouse) ExistsAsOriginal(context.Context, string) (bool, error) {
	return false, s.err
}

func (s *stubWarehouse) FetchOrders(_ context.Context, key string) ([]domain.OrderRow, error) {
	return s.orders[key], s.err
}

func (s *stubWarehouse) FetchSkus(context.Context, string) ([]domain.SkuRow, error) {
	return nil, s.err
}

func (s *stubWarehouse) FetchCartons(context.Context, string) ([]domain.CartonRow, error) {
	return nil, s.err
}

func (s *stubWarehouse) FetchOriginalOrders(context.Context, string) ([]domain.OrderRow, error) {
	return nil, s.err
}

func (s *stubWarehouse) FetchProducts(_ context.Context, skus []string) ([]domain.Product, error) {
	if len(skus) == 0 {
		return []domain.Product{}, nil
	}
	return s.products, s.err
}

func (s *stubWarehouse) Ping(context.Context) error { return s.pingErr }

var _ domain.WarehouseRepository = (*stubWarehouse)(nil)

func newTestServer(repo domain.WarehouseRepository) *Server {
	orderCache := cache.NewTTLOrderCache(time.Hour)
	resolve := usecase.ResolveOrderTree{Repo: repo, Cache: orderCache}
	return NewServer(
		resolve,
		usecase.ComposeOrderEmail{Resolve: resolve},
		usecase.LookupProducts{Repo: repo},
		usecase.CheckHealth{Repo: repo},
		orderCache,
	)
}

func seededStub() *stubWarehouse {
	return &stubWarehouse{
		orders: map[string][]domain.OrderRow{
			"533212": {{
				PostSplitOrderNumber: 533212,
				OrderSuffix:          0,
				OrderBookedDate:      time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
				OrderStatus:          "Shipped",
				OrderContactFullName: "Dana Smith",
				ContactEmailAddress:  "dana@example.com",
				ContactPhone:         "5550100",
				ShipTo:               42,
				ShipToName:           "Main Clinic",
			}},
		},
	}
}

func do(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestGetOrder(t *testing.T) {
	s := newTestServer(seededStub())

	w := do(s, http.MethodGet, "/533212", "")
	require.Equal(t, http.StatusOK, w.Code)

	var orders []domain.OrderNumber
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, 533212, orders[0].OrderNumber)
	assert.Nil(t, orders[0].SplitOrders)
}

func TestGetOrderUnknownKeyIsEmptyList(t *testing.T) {
	s := newTestServer(seededStub())

	w := do(s, http.MethodGet, "/999999", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestGetOrderInternalError(t *testing.T) {
	s := newTestServer(&stubWarehouse{err: assert.AnError})

	w := do(s, http.MethodGet, "/533212", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetEmail(t *testing.T) {
	s := newTestServer(seededStub())

	w := do(s, http.MethodGet, "/email/533212", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["email"], "Subject: Update: Order 533212")
}

func TestGetEmailNotFound(t *testing.T) {
	s := newTestServer(seededStub())

	w := do(s, http.MethodGet, "/email/999999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostProducts(t *testing.T) {
	stub := seededStub()
	stub.products = []domain.Product{{Sku: "HFA-100", HfaDescription: "Inhaler", ManufacturerName: "Acme"}}
	s := newTestServer(stub)

	t.Run("empty input", func(t *testing.T) {
		w := do(s, http.MethodPost, "/products/", `{"skus":[]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("bad body", func(t *testing.T) {
		w := do(s, http.MethodPost, "/products/", "not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("lookup", func(t *testing.T) {
		w := do(s, http.MethodPost, "/products/", `{"skus":["HFA-100"]}`)
		require.Equal(t, http.StatusOK, w.Code)

		var products []domain.Product
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
		require.Len(t, products, 1)
		assert.Equal(t, "HFA-100", products[0].Sku)
	})
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		s := newTestServer(seededStub())
		w := do(s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok","database":"connected"}`, w.Body.String())
	})

	t.Run("warehouse down", func(t *testing.T) {
		s := newTestServer(&stubWarehouse{pingErr: assert.AnError})
		w := do(s, http.MethodGet, "/health", "")
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"degraded","database":"unavailable"}`, w.Body.String())
	})
}

func TestCacheStats(t *testing.T) {
	s := newTestServer(seededStub())
	do(s, http.MethodGet, "/533212", "")

	w := do(s, http.MethodGet, "/cache/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats cache.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, []string{"order_533212"}, stats.Keys)
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(seededStub())
	w := do(s, http.MethodGet, "/health", "")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
