package domain

import "time"

// ZoneStatus values.
const (
	ZoneActive   = "active"
	ZoneInactive = "inactive"
)

type Location struct {
	Address   string  `json:"address" dynamodbav:"address"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

type ParkingZone struct {
	ZoneID         string    `json:"id" dynamodbav:"zone_id"`
	Name           string    `json:"name" dynamodbav:"name"`
	CouncilID      string    `json:"council_id" dynamodbav:"council_id"`
	Location       Location  `json:"location" dynamodbav:"location"`
	RatePerHour    float64   `json:"rate_per_hour" dynamodbav:"rate_per_hour"`
	OpeningTime    string    `json:"opening_time" dynamodbav:"opening_time"`
	ClosingTime    string    `json:"closing_time" dynamodbav:"closing_time"`
	TotalSpots     int       `json:"total_spots" dynamodbav:"total_spots"`
	Status         string    `json:"status" dynamodbav:"status"`
	InactiveReason string    `json:"inactive_reason,omitempty" dynamodbav:"inactive_reason"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateParkingZoneRequest struct {
	Name        string   `json:"name" validate:"required"`
	CouncilID   string   `json:"council_id" validate:"required"`
	Location    Location `json:"location"`
	RatePerHour float64  `json:"rate_per_hour" validate:"gte=0"`
	OpeningTime string   `json:"opening_time" validate:"required,datetime=15:04"`
	ClosingTime string   `json:"closing_time" validate:"required,datetime=15:04"`
	TotalSpots  int      `json:"total_spots" validate:"gte=0"`
}

type UpdateParkingZoneRequest struct {
	Name        *string   `json:"name"`
	CouncilID   *string   `json:"council_id"`
	Location    *Location `json:"location"`
	RatePerHour *float64  `json:"rate_per_hour" validate:"omitempty,gte=0"`
	OpeningTime *string   `json:"opening_time" validate:"omitempty,datetime=15:04"`
	ClosingTime *string   `json:"closing_time" validate:"omitempty,datetime=15:04"`
	TotalSpots  *int      `json:"total_spots" validate:"omitempty,gte=0"`
}

// ZoneStatusRequest toggles a zone. Reason is required when deactivating.
type ZoneStatusRequest struct {
	Active bool   `json:"active"`
	Reason string `json:"reason"`
}

type ZoneFilter struct {
	Status    string
	CouncilID string
}
