package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecideBooking(t *testing.T) {
	tests := []struct {
		name           string
		renterBookings int64
		houseBooked    bool
		want           error
	}{
		{"no bookings, house free", 0, false, nil},
		{"one booking, house free", 1, false, nil},
		{"at limit, house free", 2, false, ErrTooManyBookings},
		{"over limit, house free", 3, false, ErrTooManyBookings},
		{"under limit, house taken", 1, true, ErrHouseBooked},
		// The renter limit takes precedence over house availability.
		{"at limit and house taken", 2, true, ErrTooManyBookings},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decideBooking(tt.renterBookings, tt.houseBooked)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
