package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validConfig = `
rapid_api_key: test-key
mail_server: smtp.example.com
mail_username: reports@example.com
mail_password: secret
recipients:
  - ops@example.com

hotels:
  - name: Jumeirah Al Qasr
    booking_id: 73056
    hotels_id: "6853839_1498622"
    room_filter:
      - " Suite "
      - OCEAN
    room_patterns:
      - "- Non-refundable"
  - name: Old Hotel
    enabled: false
    booking_id: 99

stays:
  - name: Dubai February 2027
    check_in: "2027-02-22"
    check_out: "2027-02-28"
    hotels:
      - Jumeirah Al Qasr
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	require.Equal(t, "test-key", cfg.RapidAPIKey)
	require.Equal(t, []string{"ops@example.com"}, cfg.Recipients)

	// Defaults.
	require.Equal(t, "https://booking-com15.p.rapidapi.com", cfg.BookingHost)
	require.Equal(t, "https://hotels-com6.p.rapidapi.com", cfg.HotelsHost)
	require.Equal(t, "300066865", cfg.HotelsRegionID)
	require.Equal(t, "0 7 * * *", cfg.Schedule)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 3, cfg.RetryCount)
	require.Equal(t, 5*time.Second, cfg.RetryDelay)
	require.Equal(t, 587, cfg.Mail.Port)
	require.Equal(t, "reports@example.com", cfg.Mail.From, "from defaults to username")

	// Disabled hotels are dropped at load.
	require.Len(t, cfg.Hotels, 1)
	h := cfg.Hotels[0]
	require.Equal(t, "Jumeirah Al Qasr", h.Name)
	require.Equal(t, int64(73056), h.BookingID)
	require.Equal(t, "6853839_1498622", h.HotelsID)

	// Filter terms are lower-cased and trimmed, patterns compiled.
	require.Equal(t, []string{"suite", "ocean"}, h.RoomFilter)
	require.Len(t, h.RoomPatterns, 1)
	require.Equal(t, "Deluxe Room ", h.RoomPatterns[0].ReplaceAllString("Deluxe Room - Non-refundable", ""))

	require.Len(t, cfg.Stays, 1)
	require.Equal(t, time.Date(2027, 2, 22, 0, 0, 0, 0, time.UTC), cfg.Stays[0].CheckIn)
	require.Equal(t, []string{"Jumeirah Al Qasr"}, cfg.Stays[0].Hotels)
}

func TestLoadMissingAPIKey(t *testing.T) {
	cfg := `
mail_server: smtp.example.com
mail_username: u@example.com
mail_password: p
recipients: [ops@example.com]
`
	_, err := Load(writeConfig(t, cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "RapidAPIKey")
}

const baseScalars = `
rapid_api_key: test-key
mail_server: smtp.example.com
mail_username: reports@example.com
mail_password: secret
recipients: [ops@example.com]
`

func TestLoadBadRoomPattern(t *testing.T) {
	cfg := baseScalars + `
hotels:
  - name: Broken
    room_patterns: ["("]
`
	_, err := Load(writeConfig(t, cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "room pattern")
}

func TestLoadBadStayDates(t *testing.T) {
	cfg := baseScalars + `
stays:
  - name: Backwards
    check_in: "2027-02-28"
    check_out: "2027-02-22"
    hotels: [Somewhere]
`
	_, err := Load(writeConfig(t, cfg))
	require.Error(t, err)
	require.Contains(t, err.Error(), "check_out must be after check_in")
}

func TestLoadMalformedDate(t *testing.T) {
	cfg := baseScalars + `
stays:
  - name: Bad Date
    check_in: "22/02/2027"
    check_out: "2027-02-28"
    hotels: [Somewhere]
`
	_, err := Load(writeConfig(t, cfg))
	require.Error(t, err)
}

func TestLoadStayWithoutHotels(t *testing.T) {
	cfg := baseScalars + `
stays:
  - name: Empty
    check_in: "2027-02-22"
    check_out: "2027-02-28"
`
	_, err := Load(writeConfig(t, cfg))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
