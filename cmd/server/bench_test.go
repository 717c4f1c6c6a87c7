package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/wismo-service/internal/adapter/cache"
	"github.com/example/wismo-service/internal/adapter/httpapi"
	"github.com/example/wismo-service/internal/domain"
	"github.com/example/wismo-service/internal/usecase"
)

type seededWarehouse struct{}

func (seededWarehouse) ExistsAsOriginal(context.Context, string) (bool, error) { return false, nil }
func (seededWarehouse) FetchOrders(context.Context, string) ([]domain.OrderRow, error) {
	return nil, nil
}
func (seededWarehouse) FetchSkus(context.Context, string) ([]domain.SkuRow, error) { return nil, nil }
func (seededWarehouse) FetchCartons(context.Context, string) ([]domain.CartonRow, error) {
	return nil, nil
}
func (seededWarehouse) FetchOriginalOrders(context.Context, string) ([]domain.OrderRow, error) {
	return nil, nil
}
func (seededWarehouse) FetchProducts(context.Context, []string) ([]domain.Product, error) {
	return nil, nil
}
func (seededWarehouse) Ping(context.Context) error { return nil }

func BenchmarkHandleOrder(b *testing.B) {
	// HTTP adapter over a pre-warmed cache; the warehouse is never hit
	orderCache := cache.NewTTLOrderCache(time.Hour)
	for i := 0; i < 1000; i++ {
		orderCache.Set(fmt.Sprintf("order_%d", i), []domain.OrderNumber{{OrderNumber: i}})
	}
	resolve := usecase.ResolveOrderTree{Repo: seededWarehouse{}, Cache: orderCache}
	api := httpapi.NewServer(
		resolve,
		usecase.ComposeOrderEmail{Resolve: resolve},
		usecase.LookupProducts{Repo: seededWarehouse{}},
		usecase.CheckHealth{Repo: seededWarehouse{}},
		orderCache,
	)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/%d", i%1000), nil)
			w := httptest.NewRecorder()
			api.Router.ServeHTTP(w, req)
			i++
		}
	})
}

func BenchmarkCacheGet(b *testing.B) {
	c := cache.NewTTLOrderCache(time.Hour)
	for i := 0; i < 10000; i++ {
		c.Set(fmt.Sprintf("order_%d", i), []domain.OrderNumber{{OrderNumber: i}})
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Get(fmt.Sprintf("order_%d", i%10000))
	}
}
