package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mehedihasan-dev/house-hunters-server/internal/model"
	"github.com/mehedihasan-dev/house-hunters-server/internal/repository"
)

// In-memory stores mirroring the repository contracts, including the
// sentinel errors and the booking policy.

type memUserStore struct {
	users map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]model.User{}}
}

func (s *memUserStore) Create(_ context.Context, u model.User) (*model.User, error) {
	if _, ok := s.users[u.Email]; ok {
		return nil, repository.ErrEmailTaken
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	s.users[u.Email] = u
	return &u, nil
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memHouseStore struct {
	houses []model.House

	lastSkip  int
	lastLimit int
}

func newMemHouseStore() *memHouseStore {
	return &memHouseStore{}
}

func (s *memHouseStore) Create(_ context.Context, req model.CreateHouseRequest) (*model.House, error) {
	h := model.House{
		ID:               uuid.NewString(),
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
	s.houses = append(s.houses, h)
	return &h, nil
}

// Page returns cards newest-first, matching the seq DESC ordering of the
// real repository.
func (s *memHouseStore) Page(_ context.Context, skip, limit int) ([]model.HouseCard, error) {
	s.lastSkip, s.lastLimit = skip, limit

	var cards []model.HouseCard
	for i := len(s.houses) - 1 - skip; i >= 0 && len(cards) < limit; i-- {
		h := s.houses[i]
		cards = append(cards, model.HouseCard{
			ID:               h.ID,
			OwnerName:        h.OwnerName,
			Address:          h.Address,
			Phone:            h.Phone,
			RoomSize:         h.RoomSize,
			URL:              h.URL,
			AvailabilityDate: h.AvailabilityDate,
			Rent:             h.Rent,
		})
	}
	return cards, nil
}

func (s *memHouseStore) CountAll(_ context.Context) (int64, error) {
	return int64(len(s.houses)), nil
}

func (s *memHouseStore) GetByID(_ context.Context, id string) (*model.House, error) {
	for _, h := range s.houses {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memHouseStore) ListByOwnerEmail(_ context.Context, email string) ([]model.House, error) {
	var out []model.House
	for i := len(s.houses) - 1; i >= 0; i-- {
		if s.houses[i].OwnerEmail == email {
			out = append(out, s.houses[i])
		}
	}
	return out, nil
}

func (s *memHouseStore) Replace(_ context.Context, id string, req model.CreateHouseRequest) (int64, error) {
	for i, h := range s.houses {
		if h.ID == id {
			s.houses[i] = model.House{
				ID:               id,
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
				CreatedAt:        h.CreatedAt,
			}
			return 1, nil
		}
	}
	return 0, nil
}

func (s *memHouseStore) Delete(_ context.Context, id string) (int64, error) {
	for i, h := range s.houses {
		if h.ID == id {
			s.houses = append(s.houses[:i], s.houses[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type memBookingStore struct {
	users    *memUserStore
	houses   *memHouseStore
	bookings []model.Booking
}

func newMemBookingStore(users *memUserStore, houses *memHouseStore) *memBookingStore {
	return &memBookingStore{users: users, houses: houses}
}

func (s *memBookingStore) Create(_ context.Context, req model.BookingRequest) (*model.Booking, error) {
	u, ok := s.users.users[req.RenterEmail]
	if !ok {
		return nil, repository.ErrNotFound
	}

	houseExists := false
	for _, h := range s.houses.houses {
		if h.ID == req.HouseID {
			houseExists = true
			break
		}
	}
	if !houseExists {
		return nil, repository.ErrNotFound
	}

	var renterBookings int
	houseBooked := false
	for _, b := range s.bookings {
		if b.RenterEmail == req.RenterEmail {
			renterBookings++
		}
		if b.HouseID == req.HouseID {
			houseBooked = true
		}
	}
	if renterBookings >= 2 {
		return nil, repository.ErrTooManyBookings
	}
	if houseBooked {
		return nil, repository.ErrHouseBooked
	}

	b := model.Booking{
		ID:           uuid.NewString(),
		RenterName:   u.Name,
		RenterEmail:  req.RenterEmail,
		RenterPhone:  u.Phone,
		HouseID:      req.HouseID,
		HouseAddress: req.HouseAddress,
		OwnerName:    req.OwnerName,
		OwnerPhone:   req.OwnerPhone,
		HouseRent:    req.HouseRent,
		BookingDate:  req.BookingDate,
		CreatedAt:    time.Now().UTC(),
	}
	s.bookings = append(s.bookings, b)
	return &b, nil
}

func (s *memBookingStore) ListByRenterEmail(_ context.Context, email string) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range s.bookings {
		if b.RenterEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *memBookingStore) Delete(_ context.Context, id string) (int64, error) {
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i], s.bookings[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}
