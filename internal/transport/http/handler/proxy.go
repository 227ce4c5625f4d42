package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/gateway"
)

type itemStore interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
	Query(ctx context.Context, table string, q domain.Query) ([]domain.Item, error)
	GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error)
	PutItem(ctx context.Context, table string, item domain.Item) error
	UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error)
	DeleteItem(ctx context.Context, table string, key domain.Item) error
}

// ProxyHandler exposes the generic item verbs in the same wire format the
// gateway client speaks. Only configured tables are reachable.
type ProxyHandler struct {
	store  itemStore
	tables map[string]string // table -> hash key
}

func NewProxyHandler(store itemStore, tables map[string]string) *ProxyHandler {
	return &ProxyHandler{store: store, tables: tables}
}

func (h *ProxyHandler) Query(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if req.KeyName == "" {
		writeError(w, http.StatusBadRequest, "keyName is required")
		return
	}
	items, err := h.store.Query(r.Context(), req.TableName, domain.Query{
		IndexName: req.IndexName,
		KeyName:   req.KeyName,
		KeyValue:  req.KeyValue,
	})
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Items: items})
}

func (h *ProxyHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWithKey(w, r)
	if !ok {
		return
	}
	item, err := h.store.GetItem(r.Context(), req.TableName, req.Key)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Item: item})
}

func (h *ProxyHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	if _, has := req.Item[h.tables[req.TableName]]; !has {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("item must contain %s", h.tables[req.TableName]))
		return
	}
	if err := h.store.PutItem(r.Context(), req.TableName, req.Item); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Item: req.Item, Message: "item saved"})
}

func (h *ProxyHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWithKey(w, r)
	if !ok {
		return
	}
	if len(req.Updates) == 0 {
		writeError(w, http.StatusBadRequest, "updates are required")
		return
	}
	item, err := h.store.UpdateItem(r.Context(), req.TableName, req.Key, req.Updates)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Item: item})
}

func (h *ProxyHandler) Scan(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	items, err := h.store.Scan(r.Context(), req.TableName, req.Filter)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Items: items})
}

func (h *ProxyHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeWithKey(w, r)
	if !ok {
		return
	}
	if err := h.store.DeleteItem(r.Context(), req.TableName, req.Key); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gateway.Response{Message: "item deleted"})
}

func (h *ProxyHandler) decode(w http.ResponseWriter, r *http.Request) (*gateway.Request, bool) {
	var req gateway.Request
	if !decodeBody(w, r, &req) {
		return nil, false
	}
	if _, known := h.tables[req.TableName]; !known {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown table %q", req.TableName))
		return nil, false
	}
	return &req, true
}

func (h *ProxyHandler) decodeWithKey(w http.ResponseWriter, r *http.Request) (*gateway.Request, bool) {
	req, ok := h.decode(w, r)
	if !ok {
		return nil, false
	}
	keyAttr := h.tables[req.TableName]
	if v, has := req.Key[keyAttr]; !has || v == nil || v == "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("key must contain %s", keyAttr))
		return nil, false
	}
	return req, true
}
