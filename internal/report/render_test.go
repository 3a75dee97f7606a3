package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/you/go-hotel-rates/internal/config"
	"github.com/you/go-hotel-rates/internal/rates"
)

func TestRender(t *testing.T) {
	stay := Stay{
		Name:     "Tignes March 2027",
		CheckIn:  time.Date(2027, 3, 29, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2027, 4, 3, 0, 0, 0, 0, time.UTC),
		Hotels:   []config.Hotel{{Name: "Diamond Rock"}},
	}
	out, err := Render([]StayRates{{
		Stay: stay,
		Rates: []rates.RoomRate{
			{Provider: rates.ProviderBooking, HotelName: "Diamond Rock", RoomType: "Suite", Total: 1234, Policy: "Refundable"},
			{Provider: rates.ProviderHotels, HotelName: "Diamond Rock", RoomType: "Twin", Total: 480.5, Policy: rates.PolicyUnknown},
		},
	}})
	require.NoError(t, err)

	require.Contains(t, out, "Tignes March 2027")
	require.Contains(t, out, "29 Mar 2027")
	require.Contains(t, out, "Diamond Rock")
	require.Contains(t, out, "£1234")
	require.Contains(t, out, "£480.5")
	require.Contains(t, out, "booking.com")
	require.Contains(t, out, "Unknown")
	require.Contains(t, out, "custom-table")
}

func TestRenderNoStays(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	require.Contains(t, out, "<html>")
	require.NotContains(t, out, "<table")
}

func TestRenderEscapesRoomNames(t *testing.T) {
	out, err := Render([]StayRates{{
		Stay: Stay{Name: "S"},
		Rates: []rates.RoomRate{
			{Provider: rates.ProviderBooking, HotelName: "H", RoomType: "<script>alert(1)</script>", Total: 1, Policy: "P"},
		},
	}})
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}
