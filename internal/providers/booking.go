package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/you/go-hotel-rates/internal/config"
	"github.com/you/go-hotel-rates/internal/rates"
)

const (
	bookingRoomListPath = "/api/v1/hotels/getRoomList"
	dateLayout          = "2006-01-02"
)

// BookingCom fetches room rates from the booking.com RapidAPI endpoint.
type BookingCom struct {
	baseURL string
	client  *RapidClient
	log     zerolog.Logger
}

func NewBookingCom(cfg *config.Config, log zerolog.Logger) *BookingCom {
	return &BookingCom{
		baseURL: cfg.BookingHost,
		client:  NewRapidClient(cfg.RapidAPIKey, cfg.RequestTimeout, cfg.RetryCount, cfg.RetryDelay, log),
		log:     log.With().Str("component", "booking.com").Logger(),
	}
}

func (b *BookingCom) Name() string { return rates.ProviderBooking }

func (b *BookingCom) Rates(ctx context.Context, q RateQuery) ([]rates.RoomRate, error) {
	params := url.Values{}
	params.Set("hotel_id", q.HotelID)
	params.Set("arrival_date", q.CheckIn.Format(dateLayout))
	params.Set("departure_date", q.CheckOut.Format(dateLayout))
	params.Set("room_qty", "1")
	params.Set("adults", "2")
	params.Set("children_age", "0")
	params.Set("languagecode", "en-us")
	params.Set("currency_code", "GBP")

	b.log.Info().
		Str("hotel", q.HotelName).
		Str("check_in", q.CheckIn.Format(dateLayout)).
		Str("check_out", q.CheckOut.Format(dateLayout)).
		Msg("getting booking.com rates")

	body, err := b.client.Get(ctx, b.baseURL, bookingRoomListPath, params)
	if err != nil {
		return nil, err
	}
	return parseBookingRates(q, body, b.log)
}

type bookingResponse struct {
	Data *struct {
		Block []struct {
			Name                  *string `json:"name"`
			ProductPriceBreakdown *struct {
				AllInclusiveAmount struct {
					AmountRounded *string `json:"amount_rounded"`
				} `json:"all_inclusive_amount"`
			} `json:"product_price_breakdown"`
			PolicyDisplayDetails *struct {
				Cancellation struct {
					TitleDetails struct {
						Translation *string `json:"translation"`
					} `json:"title_details"`
				} `json:"cancellation"`
			} `json:"policy_display_details"`
		} `json:"block"`
	} `json:"data"`
}

// parseBookingRates walks the room-listing array. Room names are normalized
// before the filter runs (the hotels.com parser does the opposite; the
// difference is intentional).
func parseBookingRates(q RateQuery, body []byte, log zerolog.Logger) ([]rates.RoomRate, error) {
	var payload bookingResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: booking.com: %v", ErrMalformedResponse, err)
	}
	if payload.Data == nil || payload.Data.Block == nil {
		return nil, fmt.Errorf("%w: booking.com: missing data.block", ErrMalformedResponse)
	}

	var out []rates.RoomRate
	for _, room := range payload.Data.Block {
		if room.Name == nil {
			return nil, fmt.Errorf("%w: booking.com: room entry without name", ErrMalformedResponse)
		}
		roomType := rates.Normalize(*room.Name, q.RoomPatterns)
		if !rates.MatchesFilter(roomType, q.RoomFilter) {
			continue
		}

		if room.ProductPriceBreakdown == nil || room.ProductPriceBreakdown.AllInclusiveAmount.AmountRounded == nil {
			return nil, fmt.Errorf("%w: booking.com: room %q without all-inclusive amount", ErrMalformedResponse, *room.Name)
		}
		amount, err := parseAmount(*room.ProductPriceBreakdown.AllInclusiveAmount.AmountRounded)
		if err != nil {
			return nil, fmt.Errorf("%w: booking.com: room %q: %v", ErrMalformedResponse, *room.Name, err)
		}

		if room.PolicyDisplayDetails == nil || room.PolicyDisplayDetails.Cancellation.TitleDetails.Translation == nil {
			return nil, fmt.Errorf("%w: booking.com: room %q without cancellation policy", ErrMalformedResponse, *room.Name)
		}

		out = append(out, rates.RoomRate{
			Provider:  rates.ProviderBooking,
			HotelName: q.HotelName,
			RoomType:  roomType,
			Total:     float64(amount),
			Policy:    *room.PolicyDisplayDetails.Cancellation.TitleDetails.Translation,
		})
	}

	log.Info().Int("rates", len(out)).Str("hotel", q.HotelName).Msg("filtered booking.com rates")
	return out, nil
}

// parseAmount converts a currency-prefixed rounded string like "£1,234"
// into its integer value.
func parseAmount(raw string) (int, error) {
	s := strings.ReplaceAll(raw, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q", raw)
	}
	return n, nil
}
