// Package repository implements all database queries for the house rental
// system. It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mehedihasan-dev/house-hunters-server/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when signing up with an email that already
// belongs to a user.
var ErrEmailTaken = errors.New("email already registered")

// ErrTooManyBookings is returned when a renter already holds the maximum
// number of bookings.
var ErrTooManyBookings = errors.New("renter already has two bookings")

// ErrHouseBooked is returned when the house already has a booking.
var ErrHouseBooked = errors.New("house is already booked")

// maxBookingsPerRenter is the booking-count limit applied per renter email.
const maxBookingsPerRenter = 2

// ─── Users ────────────────────────────────────────────────────────────────────

// UserRepository handles persistence for users.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user unless the email is already taken. The email
// check and the insert run in one transaction; the unique index on
// users.email is the backstop for concurrent signups.
func (r *UserRepository) Create(ctx context.Context, u model.User) (*model.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`,
		u.Email,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		err = ErrEmailTaken
		return nil, err
	}

	u.ID = uuid.New().String()
	u.CreatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`INSERT INTO users (id, name, email, phone, password_hash, role, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &u, nil
}

// GetByEmail returns the user with the given email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx,
		`SELECT id, name, email, phone, password_hash, role, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ─── Houses ───────────────────────────────────────────────────────────────────

// HouseRepository handles persistence for houses.
type HouseRepository struct {
	db *pgxpool.Pool
}

// NewHouseRepository constructs a HouseRepository.
func NewHouseRepository(db *pgxpool.Pool) *HouseRepository {
	return &HouseRepository{db: db}
}

// Create inserts a new house and returns it with a generated UUID.
func (r *HouseRepository) Create(ctx context.Context, req model.CreateHouseRequest) (*model.House, error) {
	h := &model.House{
		ID:               uuid.New().String(),
		OwnerName:        req.OwnerName,
		OwnerEmail:       req.OwnerEmail,
		Address:          req.Address,
		City:             req.City,
		Phone:            req.Phone,
		Bedrooms:         req.Bedrooms,
		Bathrooms:        req.Bathrooms,
		RoomSize:         req.RoomSize,
		URL:              req.URL,
		AvailabilityDate: req.AvailabilityDate,
		Rent:             req.Rent,
		Description:      req.Description,
		CreatedAt:        time.Now().UTC(),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO houses (id, owner_name, owner_email, address, city, phone,
		                     bedrooms, bathrooms, room_size, url, availability_date,
		                     rent, description, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		h.ID, h.OwnerName, h.OwnerEmail, h.Address, h.City, h.Phone,
		h.Bedrooms, h.Bathrooms, h.RoomSize, h.URL, h.AvailabilityDate,
		h.Rent, h.Description, h.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert house: %w", err)
	}
	return h, nil
}

// Page returns one page of house cards ordered most-recent-first by the
// monotonically increasing seq column.
func (r *HouseRepository) Page(ctx context.Context, skip, limit int) ([]model.HouseCard, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_name, address, phone, room_size, url, availability_date, rent
		 FROM houses
		 ORDER BY seq DESC
		 LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, fmt.Errorf("page houses: %w", err)
	}
	defer rows.Close()

	var cards []model.HouseCard
	for rows.Next() {
		var c model.HouseCard
		if err := rows.Scan(&c.ID, &c.OwnerName, &c.Address, &c.Phone,
			&c.RoomSize, &c.URL, &c.AvailabilityDate, &c.Rent); err != nil {
			return nil, fmt.Errorf("scan house card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// CountAll returns the total number of houses, unfiltered.
func (r *HouseRepository) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM houses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count houses: %w", err)
	}
	return n, nil
}

// GetByID returns a single house or ErrNotFound.
func (r *HouseRepository) GetByID(ctx context.Context, id string) (*model.House, error) {
	var h model.House
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_name, owner_email, address, city, phone, bedrooms,
		        bathrooms, room_size, url, availability_date, rent, description, created_at
		 FROM houses WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.OwnerName, &h.OwnerEmail, &h.Address, &h.City, &h.Phone,
		&h.Bedrooms, &h.Bathrooms, &h.RoomSize, &h.URL, &h.AvailabilityDate,
		&h.Rent, &h.Description, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get house: %w", err)
	}
	return &h, nil
}

// ListByOwnerEmail returns all houses whose owner email matches.
func (r *HouseRepository) ListByOwnerEmail(ctx context.Context, email string) ([]model.House, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_name, owner_email, address, city, phone, bedrooms,
		        bathrooms, room_size, url, availability_date, rent, description, created_at
		 FROM houses
		 WHERE owner_email = $1
		 ORDER BY seq DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list houses by owner: %w", err)
	}
	defer rows.Close()

	var houses []model.House
	for rows.Next() {
		var h model.House
		if err := rows.Scan(&h.ID, &h.OwnerName, &h.OwnerEmail, &h.Address, &h.City,
			&h.Phone, &h.Bedrooms, &h.Bathrooms, &h.RoomSize, &h.URL,
			&h.AvailabilityDate, &h.Rent, &h.Description, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan house: %w", err)
		}
		houses = append(houses, h)
	}
	return houses, rows.Err()
}

// Replace overwrites every mutable field of the house with the given id.
// It reports how many rows matched; an absent id matches zero rows and is
// not an error.
func (r *HouseRepository) Replace(ctx context.Context, id string, req model.CreateHouseRequest) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE houses
		 SET owner_name = $2, owner_email = $3, address = $4, city = $5,
		     phone = $6, bedrooms = $7, bathrooms = $8, room_size = $9,
		     url = $10, availability_date = $11, rent = $12, description = $13
		 WHERE id = $1`,
		id, req.OwnerName, req.OwnerEmail, req.Address, req.City,
		req.Phone, req.Bedrooms, req.Bathrooms, req.RoomSize,
		req.URL, req.AvailabilityDate, req.Rent, req.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("update house: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete removes the house with the given id, reporting how many rows went
// away. An absent id deletes zero rows and is not an error.
func (r *HouseRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM houses WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete house: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ─── Bookings ─────────────────────────────────────────────────────────────────

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	db *pgxpool.Pool
}

// NewBookingRepository constructs a BookingRepository.
func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// decideBooking applies the booking policy in its required precedence:
// the renter limit is checked before the house availability, so a renter at
// the limit is told "too many" even when the house is also taken.
func decideBooking(renterBookings int64, houseBooked bool) error {
	if renterBookings >= maxBookingsPerRenter {
		return ErrTooManyBookings
	}
	if houseBooked {
		return ErrHouseBooked
	}
	return nil
}

// Create runs the whole booking policy inside one transaction.
//
// SELECT ... FOR UPDATE acquires row-level exclusive locks on the renter's
// user row and on the house row, so concurrent attempts by the same renter
// or for the same house are serialised: only one transaction at a time can
// read-then-write the booking state. The unique index on bookings.house_id
// is the backstop against double-booking.
//
// Renter identity fields (name, phone) are copied from the locked user row;
// house and owner snapshot fields are taken from the request as supplied.
func (r *BookingRepository) Create(ctx context.Context, req model.BookingRequest) (*model.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the renter's user row; this also yields the canonical
	// name/phone for the booking snapshot.
	var renterName, renterPhone string
	err = tx.QueryRow(ctx,
		`SELECT name, phone FROM users WHERE email = $1 FOR UPDATE`,
		req.RenterEmail,
	).Scan(&renterName, &renterPhone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock renter row: %w", err)
	}

	// Lock the house row so two renters cannot race on the same house.
	var houseID string
	err = tx.QueryRow(ctx,
		`SELECT id FROM houses WHERE id = $1 FOR UPDATE`,
		req.HouseID,
	).Scan(&houseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock house row: %w", err)
	}

	var renterBookings int64
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE renter_email = $1`,
		req.RenterEmail,
	).Scan(&renterBookings)
	if err != nil {
		return nil, fmt.Errorf("count renter bookings: %w", err)
	}

	var houseBooked bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bookings WHERE house_id = $1)`,
		req.HouseID,
	).Scan(&houseBooked)
	if err != nil {
		return nil, fmt.Errorf("check house booking: %w", err)
	}

	if err = decideBooking(renterBookings, houseBooked); err != nil {
		return nil, err
	}

	b := &model.Booking{
		ID:           uuid.New().String(),
		RenterName:   renterName,
		RenterEmail:  req.RenterEmail,
		RenterPhone:  renterPhone,
		HouseID:      req.HouseID,
		HouseAddress: req.HouseAddress,
		OwnerName:    req.OwnerName,
		OwnerPhone:   req.OwnerPhone,
		HouseRent:    req.HouseRent,
		BookingDate:  req.BookingDate,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (id, renter_name, renter_email, renter_phone, house_id,
		                       house_address, owner_name, owner_phone, house_rent,
		                       booking_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.RenterName, b.RenterEmail, b.RenterPhone, b.HouseID,
		b.HouseAddress, b.OwnerName, b.OwnerPhone, b.HouseRent,
		b.BookingDate, b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return b, nil
}

// ListByRenterEmail returns all bookings held by the given renter.
func (r *BookingRepository) ListByRenterEmail(ctx context.Context, email string) ([]model.Booking, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, renter_name, renter_email, renter_phone, house_id, house_address,
		        owner_name, owner_phone, house_rent, booking_date, created_at
		 FROM bookings
		 WHERE renter_email = $1
		 ORDER BY created_at DESC`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.RenterName, &b.RenterEmail, &b.RenterPhone,
			&b.HouseID, &b.HouseAddress, &b.OwnerName, &b.OwnerPhone,
			&b.HouseRent, &b.BookingDate, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Delete removes the booking with the given id, reporting how many rows
// went away.
func (r *BookingRepository) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete booking: %w", err)
	}
	return tag.RowsAffected(), nil
}
