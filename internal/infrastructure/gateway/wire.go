package gateway

import "github.com/mc-parking-api/internal/domain"

// Proxy paths relative to the gateway base URL.
const (
	PathQuery      = "/query"
	PathGetItem    = "/get-item"
	PathPutItem    = "/put-item"
	PathUpdateItem = "/update-item"
	PathScan       = "/scan"
	PathDeleteItem = "/delete-item"
)

// Request is the body of every proxy call. Which fields are read depends on the verb.
type Request struct {
	TableName string                 `json:"tableName" validate:"required"`
	Key       domain.Item            `json:"key,omitempty"`
	Item      domain.Item            `json:"item,omitempty"`
	Updates   map[string]interface{} `json:"updates,omitempty"`
	Filter    domain.Filter          `json:"filter,omitempty"`
	IndexName string                 `json:"indexName,omitempty"`
	KeyName   string                 `json:"keyName,omitempty"`
	KeyValue  interface{}            `json:"keyValue,omitempty"`
}

// Response carries either a single Item or a list of Items.
type Response struct {
	Item    domain.Item   `json:"Item,omitempty"`
	Items   []domain.Item `json:"Items,omitempty"`
	Message string        `json:"message,omitempty"`
	Error   string        `json:"error,omitempty"`
}
