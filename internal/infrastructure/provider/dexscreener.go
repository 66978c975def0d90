package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/httpx"
)

const dexSearchPath = "/latest/dex/search"

// DexScreener is the free-text pair search provider.
type DexScreener struct {
	BaseURL string
	Client  *httpx.Client
}

var _ application.PairSearcher = (*DexScreener)(nil)

type dexToken struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

type dexWindows struct {
	M5  *float64 `json:"m5"`
	H1  *float64 `json:"h1"`
	H6  *float64 `json:"h6"`
	H24 *float64 `json:"h24"`
}

func (w *dexWindows) toDomain() domain.Windows {
	if w == nil {
		return domain.Windows{}
	}
	return domain.Windows{M5: w.M5, H1: w.H1, H6: w.H6, H24: w.H24}
}

type dexTxnCounts struct {
	Buys  *int64 `json:"buys"`
	Sells *int64 `json:"sells"`
}

func (c *dexTxnCounts) toDomain() *domain.TxnCounts {
	if c == nil {
		return nil
	}
	return &domain.TxnCounts{Buys: c.Buys, Sells: c.Sells}
}

type dexPair struct {
	ChainID         string      `json:"chainId"`
	DexID           string      `json:"dexId"`
	URL             string      `json:"url"`
	PairAddress     string      `json:"pairAddress"`
	ChartSymbolType string      `json:"chartSymbolType"`
	BaseToken       dexToken    `json:"baseToken"`
	QuoteToken      dexToken    `json:"quoteToken"`
	PriceUSD        number      `json:"priceUsd"`
	Volume          *dexWindows `json:"volume"`
	PriceChange     *dexWindows `json:"priceChange"`
	Txns            *struct {
		M5  *dexTxnCounts `json:"m5"`
		H1  *dexTxnCounts `json:"h1"`
		H24 *dexTxnCounts `json:"h24"`
	} `json:"txns"`
	Liquidity *struct {
		USD *float64 `json:"usd"`
	} `json:"liquidity"`
	FDV           *float64 `json:"fdv"`
	MarketCap     *float64 `json:"marketCap"`
	PairCreatedAt *int64   `json:"pairCreatedAt"`
	Info          *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"info"`
}

type dexSearchResp struct {
	Pairs []dexPair `json:"pairs"`
}

func (p *DexScreener) SearchPairs(ctx context.Context, query string) ([]domain.TradingPair, error) {
	u, err := url.Parse(strings.TrimRight(p.BaseURL, "/") + dexSearchPath)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: create request: %w", err)
	}
	var body dexSearchResp
	if err := p.client().DoJSON(ctx, req, &body); err != nil {
		return nil, fmt.Errorf("dexscreener: %w", err)
	}

	out := make([]domain.TradingPair, 0, len(body.Pairs))
	for _, raw := range body.Pairs {
		if raw.PairAddress == "" {
			continue
		}
		out = append(out, raw.toDomain())
	}
	return out, nil
}

func (p *DexScreener) client() *httpx.Client {
	if p.Client == nil {
		return &httpx.Client{}
	}
	return p.Client
}

func (r dexPair) toDomain() domain.TradingPair {
	pair := domain.TradingPair{
		PairAddress:     r.PairAddress,
		URL:             r.URL,
		ChainID:         r.ChainID,
		DexID:           r.DexID,
		ChartSymbolType: r.ChartSymbolType,
		BaseToken: domain.Token{
			Address: r.BaseToken.Address,
			Name:    strPtr(r.BaseToken.Name),
			Symbol:  r.BaseToken.Symbol,
		},
		QuoteToken: domain.Token{
			Address: r.QuoteToken.Address,
			Name:    strPtr(r.QuoteToken.Name),
			Symbol:  r.QuoteToken.Symbol,
		},
		PriceUSD:    r.PriceUSD.float(),
		Volume:      r.Volume.toDomain(),
		PriceChange: r.PriceChange.toDomain(),
		MarketCap:   r.MarketCap,
		FDV:         r.FDV,
		CreatedAt:   unixTime(r.PairCreatedAt),
	}
	if pair.ChartSymbolType == "" {
		pair.ChartSymbolType = "POOL"
	}
	if r.Liquidity != nil {
		pair.LiquidityUSD = r.Liquidity.USD
	}
	if r.Info != nil {
		pair.BaseToken.ImageURL = strPtr(r.Info.ImageURL)
	}
	if r.Txns != nil {
		pair.Txns = domain.TxnWindows{
			M5:  r.Txns.M5.toDomain(),
			H1:  r.Txns.H1.toDomain(),
			H24: r.Txns.H24.toDomain(),
		}
		pair.TxnCount = domain.TxnTotals{M5: txnTotal(r.Txns.M5), H24: txnTotal(r.Txns.H24)}
	}
	return pair
}

func txnTotal(c *dexTxnCounts) *int64 {
	if c == nil || (c.Buys == nil && c.Sells == nil) {
		return nil
	}
	var n int64
	if c.Buys != nil {
		n += *c.Buys
	}
	if c.Sells != nil {
		n += *c.Sells
	}
	return &n
}
