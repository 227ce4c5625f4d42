package vehicleowner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/id"
	"github.com/mc-parking-api/internal/pkg/record"
)

const (
	keyOwnerID          = "owner_id"
	fieldFullName       = "full_name"
	fieldNIC            = "nic"
	fieldPhone          = "phone"
	fieldEmail          = "email"
	fieldAddress        = "address"
	fieldVehicleNumbers = "vehicle_numbers"
	fieldDutyStatus     = "duty_status"
	fieldUpdatedAt      = "updated_at"
)

type Service interface {
	List(ctx context.Context) ([]domain.VehicleOwner, error)
	Get(ctx context.Context, ownerID string) (*domain.VehicleOwner, error)
	GetByNIC(ctx context.Context, nic string) (*domain.VehicleOwner, error)
	GetByEmail(ctx context.Context, email string) (*domain.VehicleOwner, error)
	Create(ctx context.Context, req domain.CreateVehicleOwnerRequest) (*domain.VehicleOwner, error)
	Update(ctx context.Context, ownerID string, req domain.UpdateVehicleOwnerRequest) (*domain.VehicleOwner, error)
	SetDutyStatus(ctx context.Context, ownerID string, status domain.DutyStatus) (*domain.VehicleOwner, error)
	Delete(ctx context.Context, ownerID string) error
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

func (s *service) List(ctx context.Context) ([]domain.VehicleOwner, error) {
	items, err := s.store.Scan(ctx, s.table, nil)
	if err != nil {
		return nil, fmt.Errorf("list vehicle owners: %w", err)
	}
	return record.FromItems[domain.VehicleOwner](items)
}

func (s *service) Get(ctx context.Context, ownerID string) (*domain.VehicleOwner, error) {
	item, err := s.store.GetItem(ctx, s.table, domain.Item{keyOwnerID: ownerID})
	if err != nil {
		return nil, fmt.Errorf("get vehicle owner %s: %w", ownerID, err)
	}
	return decode(item)
}

func (s *service) GetByNIC(ctx context.Context, nic string) (*domain.VehicleOwner, error) {
	return s.queryOne(ctx, domain.IndexNIC, fieldNIC, normalizeNIC(nic))
}

func (s *service) GetByEmail(ctx context.Context, email string) (*domain.VehicleOwner, error) {
	return s.queryOne(ctx, domain.IndexEmail, fieldEmail, normalizeEmail(email))
}

// checkEmailFree fails with ErrConflict when another owner than ownerID
// already uses email. An empty email is always free.
func (s *service) checkEmailFree(ctx context.Context, email, ownerID string) error {
	if email == "" {
		return nil
	}
	existing, err := s.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return fmt.Errorf("email already registered: %w", domain.ErrConflict)
	}
	return nil
}

func (s *service) Create(ctx context.Context, req domain.CreateVehicleOwnerRequest) (*domain.VehicleOwner, error) {
	nic := normalizeNIC(req.NIC)
	if _, err := s.GetByNIC(ctx, nic); err == nil {
		return nil, fmt.Errorf("NIC already registered: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := s.checkEmailFree(ctx, email, ""); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	vo := &domain.VehicleOwner{
		OwnerID:        id.New(id.PrefixVehicleOwner),
		FullName:       strings.TrimSpace(req.FullName),
		NIC:            nic,
		Phone:          req.Phone,
		Email:          email,
		Address:        req.Address,
		VehicleNumbers: normalizePlates(req.VehicleNumbers),
		DutyStatus:     domain.OffDuty,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	item, err := record.ToItem(vo)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutItem(ctx, s.table, item); err != nil {
		return nil, fmt.Errorf("add vehicle owner: %w", err)
	}
	return vo, nil
}

func (s *service) Update(ctx context.Context, ownerID string, req domain.UpdateVehicleOwnerRequest) (*domain.VehicleOwner, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email == "" {
			// email is the email-index hash key, which cannot hold "".
			updates[fieldEmail] = nil
		} else {
			if err := s.checkEmailFree(ctx, email, ownerID); err != nil {
				return nil, err
			}
			updates[fieldEmail] = email
		}
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.VehicleNumbers != nil {
		updates[fieldVehicleNumbers] = normalizePlates(*req.VehicleNumbers)
	}
	if len(updates) == 0 {
		return s.Get(ctx, ownerID)
	}
	return s.update(ctx, ownerID, updates)
}

func (s *service) SetDutyStatus(ctx context.Context, ownerID string, status domain.DutyStatus) (*domain.VehicleOwner, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("duty status %q: %w", status, domain.ErrBadRequest)
	}
	return s.update(ctx, ownerID, map[string]interface{}{fieldDutyStatus: status})
}

func (s *service) Delete(ctx context.Context, ownerID string) error {
	if err := s.store.DeleteItem(ctx, s.table, domain.Item{keyOwnerID: ownerID}); err != nil {
		return fmt.Errorf("delete vehicle owner %s: %w", ownerID, err)
	}
	return nil
}

func (s *service) update(ctx context.Context, ownerID string, updates map[string]interface{}) (*domain.VehicleOwner, error) {
	updates[fieldUpdatedAt] = time.Now().UTC()
	item, err := s.store.UpdateItem(ctx, s.table, domain.Item{keyOwnerID: ownerID}, updates)
	if err != nil {
		return nil, fmt.Errorf("update vehicle owner %s: %w", ownerID, err)
	}
	return decode(item)
}

func (s *service) queryOne(ctx context.Context, index, attr, value string) (*domain.VehicleOwner, error) {
	if value == "" {
		return nil, fmt.Errorf("%s required: %w", attr, domain.ErrBadRequest)
	}
	items, err := s.store.Query(ctx, s.table, domain.Query{IndexName: index, KeyName: attr, KeyValue: value})
	if err != nil {
		return nil, fmt.Errorf("query vehicle owner by %s: %w", attr, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("vehicle owner with %s %q: %w", attr, value, domain.ErrNotFound)
	}
	return decode(items[0])
}

func decode(item domain.Item) (*domain.VehicleOwner, error) {
	var vo domain.VehicleOwner
	if err := record.FromItem(item, &vo); err != nil {
		return nil, err
	}
	return &vo, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Old-format NICs end in V or X; stored upper-case so lookups match either input.
func normalizeNIC(nic string) string {
	return strings.ToUpper(strings.TrimSpace(nic))
}

// normalizePlates upper-cases plate numbers, collapses inner spaces and drops duplicates.
func normalizePlates(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, p := range in {
		p = strings.ToUpper(strings.Join(strings.Fields(p), " "))
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
