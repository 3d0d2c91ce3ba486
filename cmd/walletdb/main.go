package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/danilovkiri/dk-go-wallet/internal/app"
	"github.com/danilovkiri/dk-go-wallet/internal/config"
	"github.com/danilovkiri/dk-go-wallet/internal/logger"
)

func main() {
	log := logger.InitLog()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// get configuration
	cfg, err := config.NewConfiguration()
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	teardown := fs.Bool("teardown", false, "Clear users, wallets and transactions")
	if err = cfg.ParseFlags(fs, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("")
	}

	// initialize storage and services, creating the schema if needed
	application, err := app.InitApp(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("")
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error().Err(err).Msg("storage close failed")
		}
	}()

	if *teardown {
		if err = application.TearDown(ctx); err != nil {
			log.Error().Err(err).Msg("teardown failed")
			return
		}
		log.Info().Msg("teardown succeeded")
	}

	stats, err := application.Transactions.GetStatistics(ctx)
	if err != nil {
		log.Error().Err(err).Msg("getting ledger statistics failed")
		return
	}
	log.Info().
		Int64("transaction_count", stats.TransactionCount).
		Int64("profit", stats.Profit).
		Msg("ledger statistics")
}
