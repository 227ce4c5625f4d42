package domain

import "time"

type VehicleOwner struct {
	OwnerID        string     `json:"id" dynamodbav:"owner_id"`
	FullName       string     `json:"full_name" dynamodbav:"full_name"`
	NIC            string     `json:"nic" dynamodbav:"nic"`
	Phone          string     `json:"phone" dynamodbav:"phone"`
	Email          string     `json:"email" dynamodbav:"email,omitempty"`
	Address        string     `json:"address" dynamodbav:"address"`
	VehicleNumbers []string   `json:"vehicle_numbers" dynamodbav:"vehicle_numbers"`
	DutyStatus     DutyStatus `json:"duty_status" dynamodbav:"duty_status"`
	CreatedAt      time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateVehicleOwnerRequest struct {
	FullName       string   `json:"full_name" validate:"required"`
	NIC            string   `json:"nic" validate:"required,nic"`
	Phone          string   `json:"phone" validate:"required"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Address        string   `json:"address"`
	VehicleNumbers []string `json:"vehicle_numbers"`
}

type UpdateVehicleOwnerRequest struct {
	FullName       *string   `json:"full_name"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email" validate:"omitempty,email"`
	Address        *string   `json:"address"`
	VehicleNumbers *[]string `json:"vehicle_numbers"`
}
