package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const dateLayout = "2006-01-02"

// Hotel is one property to price. Filter terms are lower-cased and trimmed
// and room patterns compiled at load, so the rest of the pipeline never
// touches raw configuration.
type Hotel struct {
	Name         string
	BookingID    int64
	HotelsID     string
	RoomFilter   []string
	RoomPatterns []*regexp.Regexp
}

// Stay is a named date range referencing hotels by name.
type Stay struct {
	Name     string
	CheckIn  time.Time
	CheckOut time.Time
	Hotels   []string
}

type Mail struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required"`
	From     string `validate:"required"`
}

type Config struct {
	RapidAPIKey    string `validate:"required"`
	BookingHost    string `validate:"required"`
	HotelsHost     string `validate:"required"`
	HotelsRegionID string `validate:"required"`
	RequestTimeout time.Duration
	RetryCount     int
	RetryDelay     time.Duration
	Schedule       string   `validate:"required"`
	Recipients     []string `validate:"required,min=1,dive,email"`
	Mail           Mail
	Hotels         []Hotel
	Stays          []Stay
}

type hotelFile struct {
	Name         string   `mapstructure:"name" validate:"required"`
	BookingID    int64    `mapstructure:"booking_id"`
	HotelsID     string   `mapstructure:"hotels_id"`
	Enabled      *bool    `mapstructure:"enabled"`
	RoomFilter   []string `mapstructure:"room_filter"`
	RoomPatterns []string `mapstructure:"room_patterns"`
}

type stayFile struct {
	Name     string   `mapstructure:"name" validate:"required"`
	CheckIn  string   `mapstructure:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string   `mapstructure:"check_out" validate:"required,datetime=2006-01-02"`
	Hotels   []string `mapstructure:"hotels" validate:"required,min=1"`
}

// Load reads configuration from the given file, or from RATES_CONFIG /
// conventional locations when path is empty. Hotels disabled in the file are
// dropped here.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("booking_host", "https://booking-com15.p.rapidapi.com")
	v.SetDefault("hotels_host", "https://hotels-com6.p.rapidapi.com")
	v.SetDefault("hotels_region_id", "300066865") // UK / GBP
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("retry_count", "3")
	v.SetDefault("retry_delay", "5s")
	v.SetDefault("schedule", "0 7 * * *")
	v.SetDefault("mail_port", "587")

	if path != "" {
		v.SetConfigFile(path)
	} else if env := os.Getenv("RATES_CONFIG"); env != "" {
		v.SetConfigFile(env)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/hotel-rates")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	v.AutomaticEnv()

	requestTimeout, err := time.ParseDuration(v.GetString("request_timeout"))
	if err != nil {
		return nil, fmt.Errorf("bad request_timeout: %w", err)
	}
	retryDelay, err := time.ParseDuration(v.GetString("retry_delay"))
	if err != nil {
		return nil, fmt.Errorf("bad retry_delay: %w", err)
	}

	validate := validator.New()

	var rawHotels []hotelFile
	if err := v.UnmarshalKey("hotels", &rawHotels); err != nil {
		return nil, fmt.Errorf("bad hotels config: %w", err)
	}
	hotels, err := buildHotels(rawHotels, validate)
	if err != nil {
		return nil, err
	}

	var rawStays []stayFile
	if err := v.UnmarshalKey("stays", &rawStays); err != nil {
		return nil, fmt.Errorf("bad stays config: %w", err)
	}
	stays, err := buildStays(rawStays, validate)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		RapidAPIKey:    v.GetString("rapid_api_key"),
		BookingHost:    v.GetString("booking_host"),
		HotelsHost:     v.GetString("hotels_host"),
		HotelsRegionID: v.GetString("hotels_region_id"),
		RequestTimeout: requestTimeout,
		RetryCount:     v.GetInt("retry_count"),
		RetryDelay:     retryDelay,
		Schedule:       v.GetString("schedule"),
		Recipients:     v.GetStringSlice("recipients"),
		Mail: Mail{
			Host:     v.GetString("mail_server"),
			Port:     v.GetInt("mail_port"),
			Username: v.GetString("mail_username"),
			Password: v.GetString("mail_password"),
			From:     v.GetString("mail_from"),
		},
		Hotels: hotels,
		Stays:  stays,
	}
	if cfg.Mail.From == "" {
		cfg.Mail.From = cfg.Mail.Username
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func buildHotels(raw []hotelFile, validate *validator.Validate) ([]Hotel, error) {
	hotels := make([]Hotel, 0, len(raw))
	for i, h := range raw {
		if err := validate.Struct(h); err != nil {
			return nil, fmt.Errorf("invalid hotel at index %d: %w", i, err)
		}
		if h.Enabled != nil && !*h.Enabled {
			continue
		}

		filter := make([]string, 0, len(h.RoomFilter))
		for _, term := range h.RoomFilter {
			filter = append(filter, strings.ToLower(strings.TrimSpace(term)))
		}

		patterns := make([]*regexp.Regexp, 0, len(h.RoomPatterns))
		for _, p := range h.RoomPatterns {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("hotel %q: bad room pattern %q: %w", h.Name, p, err)
			}
			patterns = append(patterns, re)
		}

		hotels = append(hotels, Hotel{
			Name:         h.Name,
			BookingID:    h.BookingID,
			HotelsID:     h.HotelsID,
			RoomFilter:   filter,
			RoomPatterns: patterns,
		})
	}
	return hotels, nil
}

func buildStays(raw []stayFile, validate *validator.Validate) ([]Stay, error) {
	stays := make([]Stay, 0, len(raw))
	for i, s := range raw {
		if err := validate.Struct(s); err != nil {
			return nil, fmt.Errorf("invalid stay at index %d: %w", i, err)
		}
		checkIn, err := time.Parse(dateLayout, s.CheckIn)
		if err != nil {
			return nil, fmt.Errorf("stay %q: bad check_in: %w", s.Name, err)
		}
		checkOut, err := time.Parse(dateLayout, s.CheckOut)
		if err != nil {
			return nil, fmt.Errorf("stay %q: bad check_out: %w", s.Name, err)
		}
		if !checkOut.After(checkIn) {
			return nil, fmt.Errorf("stay %q: check_out must be after check_in", s.Name)
		}
		stays = append(stays, Stay{
			Name:     s.Name,
			CheckIn:  checkIn,
			CheckOut: checkOut,
			Hotels:   s.Hotels,
		})
	}
	return stays, nil
}
