package domain

// Roles carried in the JWT "role" claim.
const (
	RoleAdmin        = "admin"
	RoleMCOfficer    = "mc_officer"
	RoleFineChecker  = "fine_checker"
	RoleVehicleOwner = "vehicle_owner"
)

// DutyStatus is the on/off duty flag shared by field staff and vehicle owners.
type DutyStatus string

const (
	OnDuty  DutyStatus = "on_duty"
	OffDuty DutyStatus = "off_duty"
)

func (d DutyStatus) Valid() bool {
	return d == OnDuty || d == OffDuty
}

type DutyStatusInput struct {
	DutyStatus DutyStatus `json:"duty_status" validate:"required,oneof=on_duty off_duty"`
}
