package report

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/you/go-hotel-rates/internal/config"
	"github.com/you/go-hotel-rates/internal/providers"
	"github.com/you/go-hotel-rates/internal/rates"
)

// Stay is a configured stay resolved against the enabled hotel set.
type Stay struct {
	Name     string
	CheckIn  time.Time
	CheckOut time.Time
	Hotels   []config.Hotel
}

// StayRates pairs a stay with its aggregated best rates, ready for
// template substitution.
type StayRates struct {
	Stay  Stay
	Rates []rates.RoomRate
}

type Mailer interface {
	Send(to []string, subject, body string) error
}

// Service produces the daily rates report: resolve stays, aggregate rates
// per stay, render and mail.
type Service struct {
	booking providers.RateProvider
	hotels  providers.RateProvider
	hotelsC []config.Hotel
	stays   []config.Stay
	mailer  Mailer
	log     zerolog.Logger
}

func NewService(booking, hotels providers.RateProvider, cfg *config.Config, mailer Mailer, log zerolog.Logger) *Service {
	return &Service{
		booking: booking,
		hotels:  hotels,
		hotelsC: cfg.Hotels,
		stays:   cfg.Stays,
		mailer:  mailer,
		log:     log.With().Str("component", "report").Logger(),
	}
}

// ResolveStays matches each configured stay's hotel names against the
// enabled hotel set. Hotels keep configuration order within a stay; stays
// with no matching hotels are dropped.
func (s *Service) ResolveStays() []Stay {
	out := make([]Stay, 0, len(s.stays))
	for _, stay := range s.stays {
		wanted := make(map[string]bool, len(stay.Hotels))
		for _, name := range stay.Hotels {
			wanted[name] = true
		}

		var matched []config.Hotel
		for _, h := range s.hotelsC {
			if wanted[h.Name] {
				matched = append(matched, h)
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, Stay{
			Name:     stay.Name,
			CheckIn:  stay.CheckIn,
			CheckOut: stay.CheckOut,
			Hotels:   matched,
		})
	}
	return out
}

// Aggregate prices one stay: one fetch per hotel-provider pair, the combined
// results reduced to the best rate per (room type, policy) pair across both
// providers and all hotels, sorted by (hotel name, total). Any fetch or
// parse failure aborts the whole stay.
func (s *Service) Aggregate(ctx context.Context, stay Stay) ([]rates.RoomRate, error) {
	type job struct {
		prov  providers.RateProvider
		query providers.RateQuery
	}

	var jobs []job
	for _, h := range stay.Hotels {
		q := providers.RateQuery{
			HotelName:    h.Name,
			CheckIn:      stay.CheckIn,
			CheckOut:     stay.CheckOut,
			RoomFilter:   h.RoomFilter,
			RoomPatterns: h.RoomPatterns,
		}
		if h.BookingID != 0 {
			bq := q
			bq.HotelID = strconv.FormatInt(h.BookingID, 10)
			jobs = append(jobs, job{prov: s.booking, query: bq})
		}
		if h.HotelsID != "" {
			hq := q
			hq.HotelID = h.HotelsID
			jobs = append(jobs, job{prov: s.hotels, query: hq})
		}
	}

	// One slot per job keeps the flattened order independent of fetch
	// timing, so reduction tie-breaks stay deterministic.
	results := make([][]rates.RoomRate, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j // per-iteration copies; required while go.mod targets go < 1.22
		g.Go(func() error {
			rs, err := j.prov.Rates(ctx, j.query)
			if err != nil {
				return fmt.Errorf("%s rates for %s: %w", j.prov.Name(), j.query.HotelName, err)
			}
			results[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []rates.RoomRate
	for _, rs := range results {
		all = append(all, rs...)
	}

	best := rates.BestRates(all)
	sort.SliceStable(best, func(i, j int) bool {
		if best[i].HotelName != best[j].HotelName {
			return best[i].HotelName < best[j].HotelName
		}
		return best[i].Total < best[j].Total
	})
	return best, nil
}

// Run aggregates every resolved stay in configuration order and emails the
// rendered report. Any stay failure aborts the run without sending.
func (s *Service) Run(ctx context.Context, recipients []string) error {
	stays := s.ResolveStays()
	s.log.Info().Int("stays", len(stays)).Msg("resolved stays")

	report := make([]StayRates, 0, len(stays))
	for _, stay := range stays {
		rs, err := s.Aggregate(ctx, stay)
		if err != nil {
			return fmt.Errorf("aggregate stay %q: %w", stay.Name, err)
		}
		s.log.Info().Str("stay", stay.Name).Int("rates", len(rs)).Msg("aggregated stay")
		report = append(report, StayRates{Stay: stay, Rates: rs})
	}

	html, err := Render(report)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := s.mailer.Send(recipients, "Daily Hotels Report", html); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	s.log.Info().Int("recipients", len(recipients)).Msg("report sent")
	return nil
}
