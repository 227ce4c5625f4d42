package zone

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mc-parking-api/internal/domain"
	"github.com/mc-parking-api/internal/pkg/id"
	"github.com/mc-parking-api/internal/pkg/record"
)

// Attribute names used in partial update maps.
const (
	keyZoneID           = "zone_id"
	fieldName           = "name"
	fieldCouncilID      = "council_id"
	fieldLocation       = "location"
	fieldRatePerHour    = "rate_per_hour"
	fieldOpeningTime    = "opening_time"
	fieldClosingTime    = "closing_time"
	fieldTotalSpots     = "total_spots"
	fieldStatus         = "status"
	fieldInactiveReason = "inactive_reason"
	fieldUpdatedAt      = "updated_at"
)

type Service interface {
	List(ctx context.Context, filter domain.ZoneFilter) ([]domain.ParkingZone, error)
	Get(ctx context.Context, zoneID string) (*domain.ParkingZone, error)
	Create(ctx context.Context, req domain.CreateParkingZoneRequest) (*domain.ParkingZone, error)
	Update(ctx context.Context, zoneID string, req domain.UpdateParkingZoneRequest) (*domain.ParkingZone, error)
	SetStatus(ctx context.Context, zoneID string, req domain.ZoneStatusRequest) (*domain.ParkingZone, error)
	Delete(ctx context.Context, zoneID string) error
}

type itemStore interface {
	Scan(ctx context.Context, table string, filter domain.Filter) ([]domain.Item, error)
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

func (s *service) List(ctx context.Context, filter domain.ZoneFilter) ([]domain.ParkingZone, error) {
	f := domain.Filter{}
	if filter.Status != "" {
		f[fieldStatus] = filter.Status
	}
	if filter.CouncilID != "" {
		f[fieldCouncilID] = filter.CouncilID
	}
	items, err := s.store.Scan(ctx, s.table, f)
	if err != nil {
		return nil, fmt.Errorf("list parking zones: %w", err)
	}
	return record.FromItems[domain.ParkingZone](items)
}

func (s *service) Get(ctx context.Context, zoneID string) (*domain.ParkingZone, error) {
	item, err := s.store.GetItem(ctx, s.table, key(zoneID))
	if err != nil {
		return nil, fmt.Errorf("get parking zone %s: %w", zoneID, err)
	}
	return decode(item)
}

func (s *service) Create(ctx context.Context, req domain.CreateParkingZoneRequest) (*domain.ParkingZone, error) {
	now := time.Now().UTC()
	z := &domain.ParkingZone{
		ZoneID:      id.New(id.PrefixZone),
		Name:        strings.TrimSpace(req.Name),
		CouncilID:   req.CouncilID,
		Location:    req.Location,
		RatePerHour: req.RatePerHour,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
		TotalSpots:  req.TotalSpots,
		Status:      domain.ZoneActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	item, err := record.ToItem(z)
	if err != nil {
		return nil, err
	}
	if err := s.store.PutItem(ctx, s.table, item); err != nil {
		return nil, fmt.Errorf("add parking zone: %w", err)
	}
	return z, nil
}

func (s *service) Update(ctx context.Context, zoneID string, req domain.UpdateParkingZoneRequest) (*domain.ParkingZone, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = strings.TrimSpace(*req.Name)
	}
	if req.CouncilID != nil {
		updates[fieldCouncilID] = *req.CouncilID
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.RatePerHour != nil {
		updates[fieldRatePerHour] = *req.RatePerHour
	}
	if req.OpeningTime != nil {
		updates[fieldOpeningTime] = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		updates[fieldClosingTime] = *req.ClosingTime
	}
	if req.TotalSpots != nil {
		updates[fieldTotalSpots] = *req.TotalSpots
	}
	if len(updates) == 0 {
		return s.Get(ctx, zoneID)
	}
	return s.update(ctx, zoneID, updates)
}

// SetStatus activates or deactivates a zone. Deactivation needs a reason;
// activation clears any previous one.
func (s *service) SetStatus(ctx context.Context, zoneID string, req domain.ZoneStatusRequest) (*domain.ParkingZone, error) {
	updates := map[string]interface{}{}
	if req.Active {
		updates[fieldStatus] = domain.ZoneActive
		updates[fieldInactiveReason] = ""
	} else {
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			return nil, fmt.Errorf("reason required to deactivate a zone: %w", domain.ErrBadRequest)
		}
		updates[fieldStatus] = domain.ZoneInactive
		updates[fieldInactiveReason] = reason
	}
	return s.update(ctx, zoneID, updates)
}

func (s *service) Delete(ctx context.Context, zoneID string) error {
	if err := s.store.DeleteItem(ctx, s.table, key(zoneID)); err != nil {
		return fmt.Errorf("delete parking zone %s: %w", zoneID, err)
	}
	return nil
}

func (s *service) update(ctx context.Context, zoneID string, updates map[string]interface{}) (*domain.ParkingZone, error) {
	updates[fieldUpdatedAt] = time.Now().UTC()
	item, err := s.store.UpdateItem(ctx, s.table, key(zoneID), updates)
	if err != nil {
		return nil, fmt.Errorf("update parking zone %s: %w", zoneID, err)
	}
	return decode(item)
}

func key(zoneID string) domain.Item {
	return domain.Item{keyZoneID: zoneID}
}

func decode(item domain.Item) (*domain.ParkingZone, error) {
	var z domain.ParkingZone
	if err := record.FromItem(item, &z); err != nil {
		return nil, err
	}
	return &z, nil
}
