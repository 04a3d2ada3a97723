// Package model defines the core domain types for the house rental system.
package model

import "time"

// User is an identity record created once at signup. The password hash is
// never serialized into any response.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// House is a rentable listing owned by a user with role "owner".
type House struct {
	ID               string    `json:"id"`
	OwnerName        string    `json:"ownerName"`
	OwnerEmail       string    `json:"ownerEmail"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	Phone            string    `json:"phone"`
	Bedrooms         int       `json:"bedrooms"`
	Bathrooms        int       `json:"bathrooms"`
	RoomSize         string    `json:"roomSize"`
	URL              string    `json:"url"`
	AvailabilityDate string    `json:"availabilityDate"`
	Rent             float64   `json:"rent"`
	Description      string    `json:"description"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HouseCard is the reduced projection returned by the paged house list.
type HouseCard struct {
	ID               string  `json:"id"`
	OwnerName        string  `json:"ownerName"`
	Address          string  `json:"address"`
	Phone            string  `json:"phone"`
	RoomSize         string  `json:"roomSize"`
	URL              string  `json:"url"`
	AvailabilityDate string  `json:"availabilityDate"`
	Rent             float64 `json:"rent"`
}

// Booking is a renter's reservation against one house, carrying a
// denormalized snapshot of the house and owner at booking time.
type Booking struct {
	ID           string    `json:"id"`
	RenterName   string    `json:"renterName"`
	RenterEmail  string    `json:"renterEmail"`
	RenterPhone  string    `json:"renterPhone"`
	HouseID      string    `json:"houseId"`
	HouseAddress string    `json:"houseAddress"`
	OwnerName    string    `json:"ownerName"`
	OwnerPhone   string    `json:"ownerPhone"`
	HouseRent    float64   `json:"houseRent"`
	BookingDate  string    `json:"bookingDate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ─── Request payloads ─────────────────────────────────────────────────────────

// SignupRequest is the payload for registering a new user.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest is the payload for issuing an access token.
type TokenRequest struct {
	Email string `json:"email"`
}

// CreateHouseRequest is the payload for creating or fully replacing a house.
type CreateHouseRequest struct {
	OwnerName        string  `json:"ownerName"`
	OwnerEmail       string  `json:"ownerEmail"`
	Address          string  `json:"address"`
	City             string  `json:"city"`
	Phone            string  `json:"phone"`
	Bedrooms         int     `json:"bedrooms"`
	Bathrooms        int     `json:"bathrooms"`
	RoomSize         string  `json:"roomSize"`
	URL              string  `json:"url"`
	AvailabilityDate string  `json:"availabilityDate"`
	Rent             float64 `json:"rent"`
	Description      string  `json:"description"`
}

// BookingRequest is the payload for creating a booking. Renter name and
// phone are not part of the payload: they are copied from the renter's
// stored user record at booking time.
type BookingRequest struct {
	RenterEmail  string  `json:"renterEmail"`
	HouseID      string  `json:"houseId"`
	HouseAddress string  `json:"houseAddress"`
	OwnerName    string  `json:"ownerName"`
	OwnerPhone   string  `json:"ownerPhone"`
	HouseRent    float64 `json:"houseRent"`
	BookingDate  string  `json:"bookingDate"`
}

// ─── Response payloads ────────────────────────────────────────────────────────

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// SignupConflictResponse signals that the email is already registered.
type SignupConflictResponse struct {
	IsEmailRegistered bool `json:"isEmailRegistered"`
}

// LoginResponse reports the outcome of a login attempt. Role is only set on
// success; failures carry no detail that would distinguish an unknown email
// from a wrong password.
type LoginResponse struct {
	IsLoginSuccess bool   `json:"isLoginSuccess"`
	Role           string `json:"role,omitempty"`
}

// TokenResponse carries a freshly issued access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// HousePage is one page of house cards plus the total count of all houses
// (not the page count), which the pagination UI uses to compute page numbers.
type HousePage struct {
	Houses     []HouseCard `json:"houses"`
	TotalCount int64       `json:"totalCount"`
}

// TooManyBookingsResponse signals the renter already holds two bookings.
type TooManyBookingsResponse struct {
	IsMoreThanTwo bool `json:"isMoreThanTwo"`
}

// HouseBookedResponse signals the house already has a booking.
type HouseBookedResponse struct {
	IsHouseBooked bool `json:"isHouseBooked"`
}

// UpdateResult reports how many records an update matched.
type UpdateResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports how many records a delete removed. Deleting an
// absent id is not an error; it reports zero.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
