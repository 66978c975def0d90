package httpserver

import (
	"strconv"
	"time"

	"pairscan-service/internal/domain"
)

type tokenDTO struct {
	Address  string  `json:"address"`
	Name     *string `json:"name,omitempty"`
	Symbol   string  `json:"symbol"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type windowsDTO struct {
	M5  *float64 `json:"m5,omitempty"`
	H1  *float64 `json:"h1,omitempty"`
	H6  *float64 `json:"h6,omitempty"`
	H24 *float64 `json:"h24,omitempty"`
}

type txnCountsDTO struct {
	Buys  *int64 `json:"buys,omitempty"`
	Sells *int64 `json:"sells,omitempty"`
}

type txnWindowsDTO struct {
	M5  *txnCountsDTO `json:"m5,omitempty"`
	H1  *txnCountsDTO `json:"h1,omitempty"`
	H24 *txnCountsDTO `json:"h24,omitempty"`
}

type txnTotalsDTO struct {
	M5  *int64 `json:"m5,omitempty"`
	H24 *int64 `json:"h24,omitempty"`
}

type liquidityDTO struct {
	USD *float64 `json:"usd,omitempty"`
}

type pairDTO struct {
	PairAddress       string         `json:"pairAddress"`
	URL               string         `json:"url"`
	ChainID           string         `json:"chainId"`
	DexID             string         `json:"dexId,omitempty"`
	ChartSymbolType   string         `json:"chartSymbolType,omitempty"`
	BaseToken         tokenDTO       `json:"baseToken"`
	QuoteToken        tokenDTO       `json:"quoteToken"`
	PriceUSD          *string        `json:"priceUsd,omitempty"`
	Liquidity         *liquidityDTO  `json:"liquidity,omitempty"`
	FDV               *float64       `json:"fdv,omitempty"`
	MarketCap         *float64       `json:"marketCap,omitempty"`
	Holders           *int64         `json:"holders,omitempty"`
	TxnCount          *txnTotalsDTO  `json:"txnCount,omitempty"`
	Signal            bool           `json:"signal"`
	Volume            *windowsDTO    `json:"volume,omitempty"`
	Txns              *txnWindowsDTO `json:"txns,omitempty"`
	PriceChange       *windowsDTO    `json:"priceChange,omitempty"`
	PairCreatedAt     *int64         `json:"pairCreatedAt,omitempty"`
	LastTransactionAt *int64         `json:"lastTransactionAt,omitempty"`
	VolumeChangeM5Pct *float64       `json:"volumeChangeM5Pct"`
}

type alertDTO struct {
	Quote             string  `json:"quote"`
	PairAddress       string  `json:"pairAddress"`
	BaseSymbol        string  `json:"baseSymbol"`
	QuoteSymbol       string  `json:"quoteSymbol"`
	VolumeChangeM5Pct float64 `json:"volumeChangeM5Pct"`
	VolumeM5          float64 `json:"volumeM5"`
	URL               string  `json:"url"`
	EmittedAt         int64   `json:"emittedAt"`
}

type scanResponse struct {
	Quote     string     `json:"quote"`
	Pairs     []pairDTO  `json:"pairs"`
	Alerts    []alertDTO `json:"alerts"`
	FetchedAt int64      `json:"fetchedAt"`
}

type alertsResponse struct {
	Quote  string     `json:"quote"`
	Alerts []alertDTO `json:"alerts"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toScanResponse(s domain.Snapshot) scanResponse {
	out := scanResponse{
		Quote:     string(s.Category),
		Pairs:     make([]pairDTO, 0, len(s.Pairs)),
		Alerts:    toAlertDTOs(s.Alerts),
		FetchedAt: s.FetchedAt.UnixMilli(),
	}
	for _, p := range s.Pairs {
		out.Pairs = append(out.Pairs, toPairDTO(p))
	}
	return out
}

func toAlertDTOs(alerts []domain.Alert) []alertDTO {
	out := make([]alertDTO, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertDTO{
			Quote:             string(a.Category),
			PairAddress:       a.PairAddress,
			BaseSymbol:        a.BaseSymbol,
			QuoteSymbol:       a.QuoteSymbol,
			VolumeChangeM5Pct: a.VolumeChangePct,
			VolumeM5:          a.VolumeM5,
			URL:               a.URL,
			EmittedAt:         a.EmittedAt.UnixMilli(),
		})
	}
	return out
}

func toPairDTO(p domain.TradingPair) pairDTO {
	d := pairDTO{
		PairAddress:       p.PairAddress,
		URL:               p.URL,
		ChainID:           p.ChainID,
		DexID:             p.DexID,
		ChartSymbolType:   p.ChartSymbolType,
		BaseToken:         toTokenDTO(p.BaseToken),
		QuoteToken:        toTokenDTO(p.QuoteToken),
		FDV:               p.FDV,
		MarketCap:         p.MarketCap,
		Holders:           p.Holders,
		Signal:            p.Signal,
		Volume:            toWindowsDTO(p.Volume),
		PriceChange:       toWindowsDTO(p.PriceChange),
		PairCreatedAt:     millis(p.CreatedAt),
		LastTransactionAt: millis(p.LastTxnAt),
		VolumeChangeM5Pct: p.VolumeChangePct,
	}
	if p.PriceUSD != nil {
		s := strconv.FormatFloat(*p.PriceUSD, 'f', -1, 64)
		d.PriceUSD = &s
	}
	if p.LiquidityUSD != nil {
		d.Liquidity = &liquidityDTO{USD: p.LiquidityUSD}
	}
	if p.TxnCount.M5 != nil || p.TxnCount.H24 != nil {
		d.TxnCount = &txnTotalsDTO{M5: p.TxnCount.M5, H24: p.TxnCount.H24}
	}
	if p.Txns.M5 != nil || p.Txns.H1 != nil || p.Txns.H24 != nil {
		d.Txns = &txnWindowsDTO{M5: toTxnCountsDTO(p.Txns.M5), H1: toTxnCountsDTO(p.Txns.H1), H24: toTxnCountsDTO(p.Txns.H24)}
	}
	return d
}

func toTokenDTO(t domain.Token) tokenDTO {
	return tokenDTO{Address: t.Address, Name: t.Name, Symbol: t.Symbol, ImageURL: t.ImageURL}
}

func toWindowsDTO(w domain.Windows) *windowsDTO {
	if w.M5 == nil && w.H1 == nil && w.H6 == nil && w.H24 == nil {
		return nil
	}
	return &windowsDTO{M5: w.M5, H1: w.H1, H6: w.H6, H24: w.H24}
}

func toTxnCountsDTO(c *domain.TxnCounts) *txnCountsDTO {
	if c == nil {
		return nil
	}
	return &txnCountsDTO{Buys: c.Buys, Sells: c.Sells}
}

func millis(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.UnixMilli()
	return &v
}
