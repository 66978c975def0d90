package provider_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"pairscan-service/internal/infrastructure/httpx"
	"pairscan-service/internal/infrastructure/provider"

	"github.com/stretchr/testify/require"
)

const dexSample = `{
  "schemaVersion": "1.0.0",
  "pairs": [
    {
      "chainId": "base",
      "dexId": "uniswap",
      "url": "https://dexscreener.com/base/0xabc",
      "pairAddress": "0xAbC",
      "baseToken": {"address": "0xtoken", "name": "Token", "symbol": "TKN"},
      "quoteToken": {"address": "0x4200000000000000000000000000000000000006", "name": "Wrapped Ether", "symbol": "WETH"},
      "priceUsd": "0.000123",
      "txns": {"m5": {"buys": 4, "sells": 2}, "h24": {"buys": 40, "sells": 10}},
      "volume": {"m5": 1500.5, "h1": 12000, "h24": 50000},
      "priceChange": {"m5": 1.2},
      "liquidity": {"usd": 8000},
      "fdv": 90000,
      "pairCreatedAt": 1735732800000,
      "info": {"imageUrl": "https://img/x.png"}
    },
    {"chainId": "base", "pairAddress": ""}
  ]
}`

func TestDexScreener_SearchPairs(t *testing.T) {
	var last *http.Request
	p := &provider.DexScreener{
		BaseURL: "https://api.dexscreener.com/",
		Client:  recordingClient(dexSample, 200, &last, nil),
	}

	pairs, err := p.SearchPairs(context.Background(), "base weth")
	require.NoError(t, err)
	require.Equal(t, "/latest/dex/search", last.URL.Path)
	require.Equal(t, "base weth", last.URL.Query().Get("q"))

	require.Len(t, pairs, 1)
	got := pairs[0]
	require.Equal(t, "0xAbC", got.PairAddress)
	require.Equal(t, "base", got.ChainID)
	require.Equal(t, "uniswap", got.DexID)
	require.Equal(t, "POOL", got.ChartSymbolType)
	require.Equal(t, "WETH", got.QuoteToken.Symbol)
	require.InDelta(t, 0.000123, *got.PriceUSD, 1e-12)
	require.InDelta(t, 1500.5, *got.Volume.M5, 1e-9)
	require.Nil(t, got.Volume.H6)
	require.Nil(t, got.MarketCap)
	require.InDelta(t, 90000, *got.MarketCapOrFDV(), 1e-9)
	require.Equal(t, int64(6), *got.TxnCount.M5)
	require.Equal(t, int64(4), *got.Txns.M5.Buys)
	require.Nil(t, got.Txns.H1)
	require.Equal(t, "https://img/x.png", *got.BaseToken.ImageURL)
	require.Equal(t, time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC), *got.CreatedAt)
}

func TestDexScreener_EmptyPairs(t *testing.T) {
	p := &provider.DexScreener{BaseURL: "https://api.dexscreener.com", Client: recordingClient(`{"pairs": null}`, 200, nil, nil)}

	pairs, err := p.SearchPairs(context.Background(), "base weth")
	require.NoError(t, err)
	require.Empty(t, pairs)
}

func TestDexScreener_StatusError(t *testing.T) {
	p := &provider.DexScreener{BaseURL: "https://api.dexscreener.com", Client: recordingClient("rate limited", 429, nil, nil)}

	_, err := p.SearchPairs(context.Background(), "base weth")
	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 429, se.Code)
}
