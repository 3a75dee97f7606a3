package rates

const (
	ProviderBooking = "booking.com"
	ProviderHotels  = "hotels.com"
)

// PolicyUnknown is used when a provider response carries no cancellation policy.
const PolicyUnknown = "Unknown"

type RoomRate struct {
	Provider  string  `json:"provider"`
	HotelName string  `json:"hotel_name"`
	RoomType  string  `json:"room_type"`
	Total     float64 `json:"total"`
	Policy    string  `json:"policy"`
}
