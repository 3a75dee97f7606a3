package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/you/go-hotel-rates/internal/config"
	"github.com/you/go-hotel-rates/internal/rates"
)

const hotelsOffersPath = "/hotels/details-offers"

// HotelsCom fetches room rates from the hotels.com RapidAPI endpoint.
type HotelsCom struct {
	baseURL  string
	regionID string
	client   *RapidClient
	log      zerolog.Logger
}

func NewHotelsCom(cfg *config.Config, log zerolog.Logger) *HotelsCom {
	return &HotelsCom{
		baseURL:  cfg.HotelsHost,
		regionID: cfg.HotelsRegionID,
		client:   NewRapidClient(cfg.RapidAPIKey, cfg.RequestTimeout, cfg.RetryCount, cfg.RetryDelay, log),
		log:      log.With().Str("component", "hotels.com").Logger(),
	}
}

func (h *HotelsCom) Name() string { return rates.ProviderHotels }

func (h *HotelsCom) Rates(ctx context.Context, q RateQuery) ([]rates.RoomRate, error) {
	params := url.Values{}
	params.Set("propertyId", q.HotelID)
	params.Set("checkinDate", q.CheckIn.Format(dateLayout))
	params.Set("checkoutDate", q.CheckOut.Format(dateLayout))
	params.Set("regionId", h.regionID)

	h.log.Info().
		Str("hotel", q.HotelName).
		Str("check_in", q.CheckIn.Format(dateLayout)).
		Str("check_out", q.CheckOut.Format(dateLayout)).
		Msg("getting hotels.com rates")

	body, err := h.client.Get(ctx, h.baseURL, hotelsOffersPath, params)
	if err != nil {
		return nil, err
	}
	return parseHotelsRates(q, body, h.log)
}

type hotelsResponse struct {
	Data *struct {
		CategorizedListings []struct {
			PrimarySelections []struct {
				PropertyUnit *struct {
					Header *struct {
						Text *string `json:"text"`
					} `json:"header"`
					RatePlans []struct {
						PriceDetails []struct {
							LodgingPrepareCheckout *struct {
								Action struct {
									TotalPrice struct {
										Amount *float64 `json:"amount"`
									} `json:"totalPrice"`
								} `json:"action"`
							} `json:"lodgingPrepareCheckout"`
						} `json:"priceDetails"`
					} `json:"ratePlans"`
				} `json:"propertyUnit"`
			} `json:"primarySelections"`
		} `json:"categorizedListings"`
	} `json:"data"`
}

// parseHotelsRates walks the categorized listings. Each listing must carry
// exactly one primary selection; the filter runs on the raw header text and
// only passing entries are normalized. One listing yields one rate per
// rate-plan and price-detail combination, always with policy "Unknown":
// this endpoint does not expose cancellation policies.
func parseHotelsRates(q RateQuery, body []byte, log zerolog.Logger) ([]rates.RoomRate, error) {
	var payload hotelsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: hotels.com: %v", ErrMalformedResponse, err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: hotels.com: missing data", ErrMalformedResponse)
	}

	var out []rates.RoomRate
	for _, listing := range payload.Data.CategorizedListings {
		if len(listing.PrimarySelections) != 1 {
			return nil, fmt.Errorf("%w: got %d primary selections", ErrMultiRoomListing, len(listing.PrimarySelections))
		}

		unit := listing.PrimarySelections[0].PropertyUnit
		if unit == nil || unit.Header == nil || unit.Header.Text == nil {
			return nil, fmt.Errorf("%w: hotels.com: listing without room header", ErrMalformedResponse)
		}
		rawName := *unit.Header.Text

		if !rates.MatchesFilter(rawName, q.RoomFilter) {
			continue
		}
		roomType := rates.Normalize(rawName, q.RoomPatterns)

		for _, plan := range unit.RatePlans {
			for _, detail := range plan.PriceDetails {
				if detail.LodgingPrepareCheckout == nil || detail.LodgingPrepareCheckout.Action.TotalPrice.Amount == nil {
					return nil, fmt.Errorf("%w: hotels.com: room %q without checkout total", ErrMalformedResponse, rawName)
				}
				out = append(out, rates.RoomRate{
					Provider:  rates.ProviderHotels,
					HotelName: q.HotelName,
					RoomType:  roomType,
					Total:     *detail.LodgingPrepareCheckout.Action.TotalPrice.Amount,
					Policy:    rates.PolicyUnknown,
				})
			}
		}
	}

	log.Info().Int("rates", len(out)).Str("hotel", q.HotelName).Msg("filtered hotels.com rates")
	return out, nil
}
