package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/you/go-hotel-rates/internal/config"
	"github.com/you/go-hotel-rates/internal/mail"
	"github.com/you/go-hotel-rates/internal/providers"
	"github.com/you/go-hotel-rates/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	once := flag.Bool("once", false, "run a single report immediately and exit")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	log.Info().Int("hotels", len(cfg.Hotels)).Int("stays", len(cfg.Stays)).Msg("config loaded")

	booking := providers.NewBookingCom(cfg, log)
	hotels := providers.NewHotelsCom(cfg, log)
	mailer := mail.NewSender(cfg.Mail, log)
	svc := report.NewService(booking, hotels, cfg, mailer, log)

	if *once {
		if err := svc.Run(context.Background(), cfg.Recipients); err != nil {
			log.Fatal().Err(err).Msg("report run failed")
		}
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if err := svc.Run(context.Background(), cfg.Recipients); err != nil {
			// No partial report: the run aborts and nothing is mailed.
			log.Error().Err(err).Msg("report run failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Schedule).Msg("bad schedule")
	}
	c.Start()
	log.Info().Str("schedule", cfg.Schedule).Msg("scheduler started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	<-c.Stop().Done()
}
