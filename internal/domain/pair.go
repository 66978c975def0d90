package domain

import (
	"strings"
	"time"
)

type Token struct {
	Address  string
	Name     *string
	Symbol   string
	ImageURL *string
}

// Windows holds a metric per aggregation window. Nil means the upstream did not report it.
type Windows struct {
	M5  *float64
	H1  *float64
	H6  *float64
	H24 *float64
}

type TxnCounts struct {
	Buys  *int64
	Sells *int64
}

type TxnWindows struct {
	M5  *TxnCounts
	H1  *TxnCounts
	H24 *TxnCounts
}

type TxnTotals struct {
	M5  *int64
	H24 *int64
}

// TradingPair is one discovered liquidity pair. PairAddress is its identity within a category.
type TradingPair struct {
	PairAddress     string
	URL             string
	ChainID         string
	DexID           string
	ChartSymbolType string
	BaseToken       Token
	QuoteToken      Token
	PriceUSD        *float64
	LiquidityUSD    *float64
	Volume          Windows
	PriceChange     Windows
	Txns            TxnWindows
	TxnCount        TxnTotals
	MarketCap       *float64
	FDV             *float64
	Holders         *int64
	CreatedAt       *time.Time
	LastTxnAt       *time.Time
	Signal          bool
	VolumeChangePct *float64
}

// MarketCapOrFDV prefers market cap and falls back to fully diluted valuation.
func (p TradingPair) MarketCapOrFDV() *float64 {
	if p.MarketCap != nil {
		return p.MarketCap
	}
	return p.FDV
}

func (p TradingPair) Volume24() float64 {
	if p.Volume.H24 == nil {
		return 0
	}
	return *p.Volume.H24
}

// CreatedAtOrZero treats unknown creation time as the oldest possible.
func (p TradingPair) CreatedAtOrZero() time.Time {
	if p.CreatedAt == nil {
		return time.Time{}
	}
	return *p.CreatedAt
}

// CanonicalURL returns the upstream pair URL or a dexscreener link built from chain and address.
func (p TradingPair) CanonicalURL() string {
	if p.URL != "" {
		return p.URL
	}
	chain := p.ChainID
	if chain == "" {
		chain = ChainBase
	}
	return "https://dexscreener.com/" + chain + "/" + strings.ToLower(p.PairAddress)
}

// SameAddress compares EVM addresses case-insensitively.
func SameAddress(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func Float(v float64) *float64 { return &v }

func Int(v int64) *int64 { return &v }
