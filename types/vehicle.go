package types

import "time"

// Vehicle is one tracked vehicle belonging to a tenant.
type Vehicle struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Nickname  string    `json:"nickname"`
	Make      string    `json:"make,omitempty"`
	Model     string    `json:"model,omitempty"`
	Year      int       `json:"year,omitempty"`
	VIN       string    `json:"vin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateVehicleRequest is the request body for registering a vehicle.
type CreateVehicleRequest struct {
	Nickname string `json:"nickname" binding:"required"`
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Year     int    `json:"year,omitempty"`
	VIN      string `json:"vin,omitempty"`
}

// UpdateVehicleRequest is the request body for updating a vehicle.
// Nil fields are left unchanged.
type UpdateVehicleRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Make     *string `json:"make,omitempty"`
	Model    *string `json:"model,omitempty"`
	Year     *int    `json:"year,omitempty"`
	VIN      *string `json:"vin,omitempty"`
}
