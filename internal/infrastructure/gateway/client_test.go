package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Scan_SendsTableAndFilter(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/prod/scan", r.URL.Path)
		assert.Equal(t, "k1", r.Header.Get("x-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(Response{Items: []domain.Item{{"zone_id": "Z1"}}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/prod", "k1", time.Second)
	items, err := c.Scan(context.Background(), "parking_zones", domain.Filter{"status": "active"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "parking_zones", got.TableName)
	assert.Equal(t, "active", got.Filter["status"])
}

func TestClient_DeleteItem_UsesDeleteVerb(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, PathDeleteItem, r.URL.Path)
		_ = json.NewEncoder(w).Encode(Response{Message: "deleted"})
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "", time.Second).DeleteItem(context.Background(), "t", domain.Item{"id": "1"})
	assert.NoError(t, err)
}

func TestClient_GetItem_MissingItemIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).GetItem(context.Background(), "t", domain.Item{"id": "1"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestClient_UpdateItem_MissingItemIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Response{Message: "updated"})
	}))
	defer srv.Close()

	item, err := NewClient(srv.URL, "", time.Second).UpdateItem(context.Background(), "t",
		domain.Item{"id": "1"}, map[string]interface{}{"name": "x"})
	require.Error(t, err)
	assert.Nil(t, item)
	assert.ErrorContains(t, err, "carries no item")
}

func TestClient_StatusMapping(t *testing.T) {
	cases := map[int]error{
		http.StatusNotFound:     domain.ErrNotFound,
		http.StatusBadRequest:   domain.ErrBadRequest,
		http.StatusUnauthorized: domain.ErrUnauthorized,
		http.StatusForbidden:    domain.ErrForbidden,
		http.StatusConflict:     domain.ErrConflict,
	}
	for code, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			_ = json.NewEncoder(w).Encode(Response{Error: "boom"})
		}))
		err := NewClient(srv.URL, "", time.Second).PutItem(context.Background(), "t", domain.Item{"id": "1"})
		srv.Close()
		assert.True(t, errors.Is(err, want), "status %d", code)
		assert.ErrorContains(t, err, "boom")
	}
}

func TestClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).Scan(context.Background(), "t", nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "status 502")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestClient_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "", time.Second).GetItem(context.Background(), "t", domain.Item{"id": "1"})
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
