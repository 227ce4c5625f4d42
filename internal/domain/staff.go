package domain

import "time"

type FineChecker struct {
	CheckerID    string     `json:"id" dynamodbav:"checker_id"`
	FullName     string     `json:"full_name" dynamodbav:"full_name"`
	Username     string     `json:"username" dynamodbav:"username"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	NIC          string     `json:"nic" dynamodbav:"nic"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	Email        string     `json:"email" dynamodbav:"email"`
	CouncilID    string     `json:"council_id" dynamodbav:"council_id"`
	DutyStatus   DutyStatus `json:"duty_status" dynamodbav:"duty_status"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateFineCheckerRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	NIC       string `json:"nic" validate:"required,nic"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	CouncilID string `json:"council_id" validate:"required"`
}

type UpdateFineCheckerRequest struct {
	FullName  *string `json:"full_name"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	NIC       *string `json:"nic" validate:"omitempty,nic"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	CouncilID *string `json:"council_id"`
}

type MCOfficer struct {
	OfficerID    string     `json:"id" dynamodbav:"officer_id"`
	FullName     string     `json:"full_name" dynamodbav:"full_name"`
	Username     string     `json:"username" dynamodbav:"username"`
	PasswordHash string     `json:"-" dynamodbav:"password_hash"`
	NIC          string     `json:"nic" dynamodbav:"nic"`
	Phone        string     `json:"phone" dynamodbav:"phone"`
	Email        string     `json:"email" dynamodbav:"email"`
	CouncilID    string     `json:"council_id" dynamodbav:"council_id"`
	ZoneID       string     `json:"zone_id" dynamodbav:"zone_id"`
	DutyStatus   DutyStatus `json:"duty_status" dynamodbav:"duty_status"`
	CreatedAt    time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateMCOfficerRequest struct {
	FullName  string `json:"full_name" validate:"required"`
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	NIC       string `json:"nic" validate:"required,nic"`
	Phone     string `json:"phone"`
	Email     string `json:"email" validate:"omitempty,email"`
	CouncilID string `json:"council_id" validate:"required"`
	ZoneID    string `json:"zone_id"`
}

type UpdateMCOfficerRequest struct {
	FullName  *string `json:"full_name"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	NIC       *string `json:"nic" validate:"omitempty,nic"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" validate:"omitempty,email"`
	CouncilID *string `json:"council_id"`
	ZoneID    *string `json:"zone_id"`
}

type AssignZoneRequest struct {
	ZoneID string `json:"zone_id"`
}
