package domain

import "time"

// DemoUserData is a NIC identity record. The registry holds the seeded
// records; verified copies are persisted after a successful OTP exchange.
type DemoUserData struct {
	NIC         string     `json:"nic" dynamodbav:"nic"`
	FullName    string     `json:"full_name" dynamodbav:"full_name"`
	DateOfBirth string     `json:"date_of_birth" dynamodbav:"date_of_birth"`
	Gender      string     `json:"gender" dynamodbav:"gender"`
	Address     string     `json:"address" dynamodbav:"address"`
	Mobile      string     `json:"mobile" dynamodbav:"mobile"`
	Verified    bool       `json:"verified" dynamodbav:"verified"`
	VerifiedAt  *time.Time `json:"verified_at,omitempty" dynamodbav:"verified_at,omitempty"`
	DocumentKey string     `json:"document_key,omitempty" dynamodbav:"document_key,omitempty"`
}

// OTPTransaction is a pending one-time password. ExpiresAt is wall-clock.
type OTPTransaction struct {
	TransactionID string    `json:"transaction_id"`
	OTP           string    `json:"otp"`
	Identifier    string    `json:"identifier"`
	Mobile        string    `json:"mobile"`
	ExpiresAt     time.Time `json:"expires_at"`
}

type RequestOTPRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Mobile     string `json:"mobile"`
}

type VerifyOTPRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	OTP           string `json:"otp" validate:"required"`
}

// OTPVerification is the outcome of a successful verify call. User is set
// when the identifier was a registered NIC.
type OTPVerification struct {
	Verified   bool          `json:"verified"`
	Identifier string        `json:"identifier"`
	User       *DemoUserData `json:"user,omitempty"`
}
