package finechecker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/id"
	"github.com/mc-parking-api/internal/pkg/record"
	"golang.org/x/crypto/bcrypt"
)

// Attribute names used in partial update maps.
const (
	keyCheckerID      = "checker_id"
	fieldFullName     = "full_name"
	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
	fieldNIC          = "nic"
	fieldPhone        = "phone"
	fieldEmail        = "email"
	fieldCouncilID    = "council_id"
	fieldDutyStatus   = "duty_status"
	fieldUpdatedAt    = "updated_at"
)

type Service interface {
	List(ctx context.Context, councilID string) ([]domain.FineChecker, error)
	Get(ctx context.Context, checkerID string) (*domain.FineChecker, error)
	GetByUsername(ctx context.Context, username string) (*domain.FineChecker, error)
	Create(ctx context.Context, req domain.CreateFineCheckerRequest) (*domain.FineChecker, error)
	Update(ctx context.Context, checkerID string, req domain.UpdateFineCheckerRequest) (*domain.FineChecker, error)
	SetDutyStatus(ctx context.Context, checkerID string, status domain.DutyStatus) (*domain.FineChecker, error)
	Delete(ctx context.Context, checkerID string) error
}

type itemStore interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
	Query(ctx context.Context, table string, q domain.Query) ([]domain.Item, error)
	GetItem(ctx context.Context, table string, key domain.Item) (domain.Item, error)
	PutItem(ctx context.Context, table string, item domain.Item) error
	UpdateItem(ctx context.Context, table string, key domain.Item, updates map[string]interface{}) (domain.Item, error)
	DeleteItem(ctx context.Context, table string, key domain.Item) error
}

type service struct {
	store itemStore
	table string
}

func NewService(store itemStore, table string) Service {
	return &service{store: store, table: table}
}

func (s *service) List(ctx context.Context, councilID string) ([]domain.FineChecker, error) {
	f := domain.Filter{}
	if councilID != "" {
		f[fieldCouncilID] = councilID
	}
	items, err := s.store.Scan(ctx, s.table, f)
	if err != nil {
		return nil, fmt.Errorf("list fine checkers: %w", err)
	}
	return record.FromItems[domain.FineChecker](items)
}

func (s *service) Get(ctx context.Context, checkerID string) (*domain.FineChecker, error) {
	item, err := s.store.GetItem(ctx, s.table, domain.Item{keyCheckerID: checkerID})
	if err != nil {
		return nil, fmt.Errorf("get fine checker %s: %w", checkerID, err)
	}
	return decode(item)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.FineChecker, error) {
	items, err := s.store.Query(ctx, s.table, domain.Query{
		IndexName: domain.IndexUsername,
		KeyName:   fieldUsername,
		KeyValue:  username,
	})
	if err != nil {
		return nil, fmt.Errorf("query fine checker by username: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("fine checker %q: %w", username, domain.ErrNotFound)
	}
	return decode(items[0])
}

func (s *service) Create(ctx context.Context, req domain.CreateFineCheckerRequest) (*domain.FineChecker, error) {
	username := strings.TrimSpace(req.Username)
	if _, err := s.GetByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username already taken: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	fc := &domain.FineChecker{
		CheckerID:    id.New(id.PrefixFineChecker),
		FullName:     strings.TrimSpace(req.FullName),
		Username:     username,
		PasswordHash: string(hash),
		NIC:          strings.ToUpper(strings.TrimSpace(req.NIC)),
		Phone:        req.Phone,
		Email:        req.Email,
		CouncilID:    req.CouncilID,
		DutyStatus:   domain.OffDuty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	item, err := record.ToItem(fc)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutItem(ctx, s.table, item); err != nil {
		return nil, fmt.Errorf("add fine checker: %w", err)
	}
	return fc, nil
}

func (s *service) Update(ctx context.Context, checkerID string, req domain.UpdateFineCheckerRequest) (*domain.FineChecker, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = strings.TrimSpace(*req.FullName)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		updates[fieldPasswordHash] = string(hash)
	}
	if req.NIC != nil {
		updates[fieldNIC] = strings.ToUpper(strings.TrimSpace(*req.NIC))
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.CouncilID != nil {
		updates[fieldCouncilID] = *req.CouncilID
	}
	if len(updates) == 0 {
		return s.Get(ctx, checkerID)
	}
	return s.update(ctx, checkerID, updates)
}

func (s *service) SetDutyStatus(ctx context.Context, checkerID string, status domain.DutyStatus) (*domain.FineChecker, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("duty status %q: %w", status, domain.ErrBadRequest)
	}
	return s.update(ctx, checkerID, map[string]interface{}{fieldDutyStatus: status})
}

func (s *service) Delete(ctx context.Context, checkerID string) error {
	if err := s.store.DeleteItem(ctx, s.table, domain.Item{keyCheckerID: checkerID}); err != nil {
		return fmt.Errorf("delete fine checker %s: %w", checkerID, err)
	}
	return nil
}

func (s *service) update(ctx context.Context, checkerID string, updates map[string]interface{}) (*domain.FineChecker, error) {
	updates[fieldUpdatedAt] = time.Now().UTC()
	item, err := s.store.UpdateItem(ctx, s.table, domain.Item{keyCheckerID: checkerID}, updates)
	if err != nil {
		return nil, fmt.Errorf("update fine checker %s: %w", checkerID, err)
	}
	return decode(item)
}

func decode(item domain.Item) (*domain.FineChecker, error) {
	var fc domain.FineChecker
	if err := record.FromItem(item, &fc); err != nil {
		return nil, err
	}
	return &fc, nil
}
