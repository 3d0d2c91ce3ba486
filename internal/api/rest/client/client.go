// Package client implements a client for querying BTC exchange rates from a ticker service.
package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danilovkiri/dk-go-wallet/internal/config"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Quote is a single currency entry of the ticker response.
type Quote struct {
	Last   float64 `json:"last"`
	Symbol string  `json:"symbol"`
}

// Client defines attributes of a struct available to its methods.
type Client struct {
	client *resty.Client
	cfg    *config.ConverterConfig
	log    *zerolog.Logger
}

// InitClient initializes a resty client.
func InitClient(cfg *config.ConverterConfig, log *zerolog.Logger) *Client {
	tickerClient := resty.New().
		SetBaseURL(cfg.TickerAddress).
		SetTimeout(cfg.Timeout)
	log.Info().Msg("ticker service client initialized")
	return &Client{client: tickerClient, cfg: cfg, log: log}
}

// GetRate retrieves the last BTC price in USD.
func (c *Client) GetRate(ctx context.Context) (decimal.Decimal, error) {
	ticker := make(map[string]Quote)
	response, err := c.client.R().SetContext(ctx).SetResult(&ticker).Get("/ticker")
	if err != nil {
		c.log.Error().Err(err).Msg("rate retrieval from ticker service failed")
		return decimal.Zero, &serviceErrors.ConversionError{Msg: "error when trying to convert BTC to USD", Err: err}
	}
	if response.StatusCode() != http.StatusOK {
		c.log.Error().Int("status", response.StatusCode()).Msg("rate retrieval from ticker service failed")
		return decimal.Zero, &serviceErrors.ConversionError{Msg: fmt.Sprintf("error when trying to convert BTC to USD, ticker responded with %d", response.StatusCode())}
	}
	quote, ok := ticker["USD"]
	if !ok {
		return decimal.Zero, &serviceErrors.ConversionError{Msg: "error when trying to convert BTC to USD, no USD quote"}
	}
	return decimal.NewFromFloat(quote.Last), nil
}

// ToUSD converts an amount of BTC to USD at the last rate.
func (c *Client) ToUSD(ctx context.Context, btc decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.GetRate(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return btc.Mul(rate), nil
}

// SatoshiToBTC converts satoshi to BTC without loss of precision, 1 BTC being 1e8 satoshi.
func (c *Client) SatoshiToBTC(satoshi int64) decimal.Decimal {
	return decimal.New(satoshi, -8)
}
