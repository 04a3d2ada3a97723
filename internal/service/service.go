// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer. Services depend on small
// store interfaces so tests can substitute in-memory fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mehedihasan-dev/house-hunters-server/internal/model"
	"github.com/mehedihasan-dev/house-hunters-server/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot enumerate registered accounts.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PageSize is the fixed number of houses per list page.
const PageSize = 12

// ─── Identity ─────────────────────────────────────────────────────────────────

// UserStore is the persistence surface the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// AuthService handles signup and login.
type AuthService struct {
	users UserStore
}

// NewAuthService constructs an AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register hashes the password and persists a new user. It surfaces
// repository.ErrEmailTaken when the email already belongs to a user.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Role = strings.TrimSpace(req.Role)

	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !isValidEmail(req.Email) {
		return nil, fmt.Errorf("email is not a valid email address")
	}
	if req.Phone == "" {
		return nil, fmt.Errorf("phone is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}
	if req.Role == "" {
		return nil, fmt.Errorf("role is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hash),
		Role:         req.Role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("register user: %w", err)
	}
	return user, nil
}

// Login checks the credentials and returns the stored role. Unknown email
// and wrong password both collapse into ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return user.Role, nil
}

// ─── Houses ───────────────────────────────────────────────────────────────────

// HouseStore is the persistence surface the house service needs.
type HouseStore interface {
	Create(ctx context.Context, req model.CreateHouseRequest) (*model.House, error)
	Page(ctx context.Context, skip, limit int) ([]model.HouseCard, error)
	CountAll(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*model.House, error)
	ListByOwnerEmail(ctx context.Context, email string) ([]model.House, error)
	Replace(ctx context.Context, id string, req model.CreateHouseRequest) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// HouseService orchestrates house CRUD.
type HouseService struct {
	houses HouseStore
}

// NewHouseService constructs a HouseService.
func NewHouseService(houses HouseStore) *HouseService {
	return &HouseService{houses: houses}
}

// Create validates field presence and persists the house.
func (s *HouseService) Create(ctx context.Context, req model.CreateHouseRequest) (*model.House, error) {
	if err := validateHouse(req); err != nil {
		return nil, err
	}
	return s.houses.Create(ctx, req)
}

// ListPage returns one page of house cards plus the total count of all
// houses. The total is deliberately unfiltered; the pagination UI divides
// it by the page size.
func (s *HouseService) ListPage(ctx context.Context, skip int) ([]model.HouseCard, int64, error) {
	if skip < 0 {
		skip = 0
	}
	cards, err := s.houses.Page(ctx, skip, PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("page houses: %w", err)
	}
	total, err := s.houses.CountAll(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count houses: %w", err)
	}
	return cards, total, nil
}

// Get returns a single house by id. A malformed id cannot match any record,
// so it is reported as not found rather than as a query error.
func (s *HouseService) Get(ctx context.Context, id string) (*model.House, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return s.houses.GetByID(ctx, id)
}

// ListByOwner returns all houses owned by the given email.
func (s *HouseService) ListByOwner(ctx context.Context, email string) ([]model.House, error) {
	return s.houses.ListByOwnerEmail(ctx, normalizeEmail(email))
}

// Replace overwrites every field of the house with the given id and reports
// how many records matched. An absent or malformed id matches zero.
func (s *HouseService) Replace(ctx context.Context, id string, req model.CreateHouseRequest) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	if err := validateHouse(req); err != nil {
		return 0, err
	}
	return s.houses.Replace(ctx, id, req)
}

// Delete removes the house with the given id and reports how many records
// went away. An absent or malformed id removes zero.
func (s *HouseService) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	return s.houses.Delete(ctx, id)
}

func validateHouse(req model.CreateHouseRequest) error {
	required := map[string]string{
		"ownerName":        req.OwnerName,
		"ownerEmail":       req.OwnerEmail,
		"address":          req.Address,
		"city":             req.City,
		"phone":            req.Phone,
		"roomSize":         req.RoomSize,
		"url":              req.URL,
		"availabilityDate": req.AvailabilityDate,
		"description":      req.Description,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", field)
		}
	}
	if req.Bedrooms < 0 || req.Bathrooms < 0 {
		return fmt.Errorf("bedrooms and bathrooms must not be negative")
	}
	if req.Rent <= 0 {
		return fmt.Errorf("rent must be a positive number")
	}
	return nil
}

// ─── Bookings ─────────────────────────────────────────────────────────────────

// BookingStore is the persistence surface the booking service needs. Create
// runs the whole booking policy (renter limit, house availability, renter
// snapshot) atomically.
type BookingStore interface {
	Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error)
	ListByRenterEmail(ctx context.Context, email string) ([]model.Booking, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// BookingService orchestrates the booking workflow.
type BookingService struct {
	bookings BookingStore
}

// NewBookingService constructs a BookingService.
func NewBookingService(bookings BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

// Create validates the request and delegates the atomic policy check to the
// store. It surfaces the policy sentinels unchanged so handlers can map them
// to the right status codes and flags.
func (s *BookingService) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	req.RenterEmail = normalizeEmail(req.RenterEmail)
	if !isValidEmail(req.RenterEmail) {
		return nil, fmt.Errorf("renterEmail is not a valid email address")
	}
	if _, err := uuid.Parse(req.HouseID); err != nil {
		return nil, repository.ErrNotFound
	}
	if strings.TrimSpace(req.BookingDate) == "" {
		return nil, fmt.Errorf("bookingDate is required")
	}

	booking, err := s.bookings.Create(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrTooManyBookings) ||
			errors.Is(err, repository.ErrHouseBooked) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

// ListByRenter returns all bookings held by the given email.
func (s *BookingService) ListByRenter(ctx context.Context, email string) ([]model.Booking, error) {
	return s.bookings.ListByRenterEmail(ctx, normalizeEmail(email))
}

// Delete removes the booking with the given id and reports how many records
// went away. An absent or malformed id removes zero.
func (s *BookingService) Delete(ctx context.Context, id string) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, nil
	}
	return s.bookings.Delete(ctx, id)
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isValidEmail does a basic structural check (no external deps).
func isValidEmail(email string) bool {
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	return len(parts[0]) > 0 && strings.Contains(parts[1], ".")
}
