package http

import (
	"context"

	"github.com/mc-parking-api/internal/application/otp"
	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/infrastructure/google"
	jwtinfra "github.com/mc-parking-api/internal/infrastructure/jwt"
	s3infra "github.com/mc-parking-api/internal/infrastructure/s3"
	"github.com/mc-parking-api/internal/infrastructure/sns"
)

// ItemStore is the generic key-value contract every backend implements
// (DynamoDB, the API Gateway proxy client, and the in-memory store).
type ItemStore interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
	Query(ctx context.Context, table string, q domain.Query) ([]domain.Item, error)
	GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error)
	PutItem(ctx context.Context, table string, item domain.Item) error
	UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error)
	DeleteItem(ctx context.Context, table string, key domain.Item) error
}

// Deps holds all infrastructure dependencies for the router. JWTProvider,
// Google and Documents may be nil; the features that need them are then
// disabled.
type Deps struct {
	Store       ItemStore
	KeySchema   map[string]string // table -> hash key, for the proxy allowlist
	OTPStore    otp.TransactionStore
	SMSSender   sns.SMSSender
	JWTProvider *jwtinfra.Provider
	Google      *google.Verifier
	Documents   *s3infra.Store
}
