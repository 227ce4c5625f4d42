package officer

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
	keyOfficerID      = "officer_id"
	fieldFullName     = "full_name"
	fieldUsername     = "username"
	fieldPasswordHash = "password_hash"
	fieldNIC          = "nic"
	fieldPhone        = "phone"
	fieldEmail        = "email"
	fieldCouncilID    = "council_id"
	fieldZoneID       = "zone_id"
	fieldDutyStatus   = "duty_status"
	fieldUpdatedAt    = "updated_at"
)

type Service interface {
	List(ctx context.Context, councilID string) ([]domain.MCOfficer, error)
	Get(ctx context.Context, officerID string) (*domain.MCOfficer, error)
	GetByUsername(ctx context.Context, username string) (*domain.MCOfficer, error)
	Create(ctx context.Context, req domain.CreateMCOfficerRequest) (*domain.MCOfficer, error)
	Update(ctx context.Context, officerID string, req domain.UpdateMCOfficerRequest) (*domain.MCOfficer, error)
	SetDutyStatus(ctx context.Context, officerID string, status domain.DutyStatus) (*domain.MCOfficer, error)
	AssignZone(ctx context.Context, officerID, zoneID string) (*domain.MCOfficer, error)
	Delete(ctx context.Context, officerID string) error
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

func (s *service) List(ctx context.Context, councilID string) ([]domain.MCOfficer, error) {
	f := domain.Filter{}
	if councilID != "" {
		f[fieldCouncilID] = councilID
	}
	items, err := s.store.Scan(ctx, s.table, f)
	if err != nil {
		return nil, fmt.Errorf("list mc officers: %w", err)
	}
	return record.FromItems[domain.MCOfficer](items)
}

func (s *service) Get(ctx context.Context, officerID string) (*domain.MCOfficer, error) {
	item, err := s.store.GetItem(ctx, s.table, domain.Item{keyOfficerID: officerID})
	if err != nil {
		return nil, fmt.Errorf("get mc officer %s: %w", officerID, err)
	}
	return decode(item)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*domain.MCOfficer, error) {
	items, err := s.store.Query(ctx, s.table, domain.Query{
		IndexName: domain.IndexUsername,
		KeyName:   fieldUsername,
		KeyValue:  username,
	})
	if err != nil {
		return nil, fmt.Errorf("query mc officer by username: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("mc officer %q: %w", username, domain.ErrNotFound)
	}
	return decode(items[0])
}

func (s *service) Create(ctx context.Context, req domain.CreateMCOfficerRequest) (*domain.MCOfficer, error) {
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
	o := &domain.MCOfficer{
		OfficerID:    id.New(id.PrefixMCOfficer),
		FullName:     strings.TrimSpace(req.FullName),
		Username:     username,
		PasswordHash: string(hash),
		NIC:          strings.ToUpper(strings.TrimSpace(req.NIC)),
		Phone:        req.Phone,
		Email:        req.Email,
		CouncilID:    req.CouncilID,
		ZoneID:       req.ZoneID,
		DutyStatus:   domain.OffDuty,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	item, err := record.ToItem(o)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutItem(ctx, s.table, item); err != nil {
		return nil, fmt.Errorf("add mc officer: %w", err)
	}
	return o, nil
}

func (s *service) Update(ctx context.Context, officerID string, req domain.UpdateMCOfficerRequest) (*domain.MCOfficer, error) {
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
	if req.ZoneID != nil {
		updates[fieldZoneID] = *req.ZoneID
	}
	if len(updates) == 0 {
		return s.Get(ctx, officerID)
	}
	return s.update(ctx, officerID, updates)
}

func (s *service) SetDutyStatus(ctx context.Context, officerID string, status domain.DutyStatus) (*domain.MCOfficer, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("duty status %q: %w", status, domain.ErrBadRequest)
	}
	return s.update(ctx, officerID, map[string]interface{}{fieldDutyStatus: status})
}

// AssignZone moves the officer to zoneID; an empty zoneID unassigns them.
func (s *service) AssignZone(ctx context.Context, officerID, zoneID string) (*domain.MCOfficer, error) {
	return s.update(ctx, officerID, map[string]interface{}{fieldZoneID: strings.TrimSpace(zoneID)})
}

func (s *service) Delete(ctx context.Context, officerID string) error {
	if err := s.store.DeleteItem(ctx, s.table, domain.Item{keyOfficerID: officerID}); err != nil {
		return fmt.Errorf("delete mc officer %s: %w", officerID, err)
	}
	return nil
}

func (s *service) update(ctx context.Context, officerID string, updates map[string]interface{}) (*domain.MCOfficer, error) {
	updates[fieldUpdatedAt] = time.Now().UTC()
	item, err := s.store.UpdateItem(ctx, s.table, domain.Item{keyOfficerID: officerID}, updates)
	if err != nil {
		return nil, fmt.Errorf("update mc officer %s: %w", officerID, err)
	}
	return decode(item)
}

func decode(item domain.Item) (*domain.MCOfficer, error) {
	var o domain.MCOfficer
	if err := record.FromItem(item, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
