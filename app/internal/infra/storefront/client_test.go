package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domproduct "example.com/storefront-cart/app/internal/domain/product"
	"example.com/storefront-cart/app/internal/interface/catalogstub"
)

func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()
	db := &catalogstub.DB{
		Products: []domproduct.Product{
			{ID: 1, Name: "A", Price: decimal.NewFromInt(10), Image: "a.png"},
		},
		Stock: []domproduct.Stock{
			{ProductID: 1, Amount: 4},
		},
	}
	srv := httptest.NewServer(catalogstub.New(db).Router())
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetProduct(t *testing.T) {
	srv := newStubServer(t)
	client := NewClient(srv.URL+"/", time.Second)

	p, err := client.GetProduct(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)
	require.Equal(t, "A", p.Name)
	require.Equal(t, "a.png", p.Image)
	require.True(t, decimal.NewFromInt(10).Equal(p.Price))
}

func TestClient_GetStock(t *testing.T) {
	srv := newStubServer(t)
	client := NewClient(srv.URL, time.Second)

	s, err := client.GetStock(context.Background(), 1)

	require.NoError(t, err)
	require.Equal(t, domproduct.Stock{ProductID: 1, Amount: 4}, *s)
}

func TestClient_NotFound(t *testing.T) {
	srv := newStubServer(t)
	client := NewClient(srv.URL, time.Second)

	_, err := client.GetProduct(context.Background(), 99)
	require.ErrorIs(t, err, domproduct.ErrProductNotFound)

	_, err = client.GetStock(context.Background(), 99)
	require.ErrorIs(t, err, domproduct.ErrStockNotFound)
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetStock(context.Background(), 1)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusServiceUnavailable, statusErr.Status)
	require.Equal(t, "/stock/1", statusErr.Path)
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).GetProduct(context.Background(), 1)

	require.Error(t, err)
	require.Contains(t, err.Error(), "decode /products/1")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewClient(srv.URL, 50*time.Millisecond).GetProduct(context.Background(), 1)

	require.Error(t, err)
}
