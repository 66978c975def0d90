package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
	"pairscan-service/internal/infrastructure/httpx"
)

const filterTokensQuery = `
query FilterTokens($filters: TokenFilters, $rankings: [TokenRanking], $limit: Int) {
  filterTokens(filters: $filters, rankings: $rankings, limit: $limit) {
    results {
      createdAt
      lastTransaction
      volume5m
      volume1
      volume24
      volumeChange5m
      liquidity
      priceUSD
      change5m
      change1
      change24
      marketCap
      holders
      txnCount5m
      txnCount24
      buyCount5m
      sellCount5m
      pair { address }
      token {
        info { address name symbol imageThumbUrl imageSmallUrl imageLargeUrl }
        createdAt
      }
    }
  }
}`

// Codex lists recently launched tokens through the filterTokens GraphQL query.
type Codex struct {
	URL    string
	APIKey string
	// Bearer prefixes the key with "Bearer " in the Authorization header.
	Bearer bool
	Client *httpx.Client
}

var _ application.TokenLister = (*Codex)(nil)

type codexRequest struct {
	Query     string         `json:"query"`
	Variables codexVariables `json:"variables"`
}

type codexVariables struct {
	Filters  codexFilters   `json:"filters"`
	Rankings []codexRanking `json:"rankings"`
	Limit    int            `json:"limit"`
}

type codexFilters struct {
	Network       []int    `json:"network"`
	LaunchpadName []string `json:"launchpadName,omitempty"`
}

type codexRanking struct {
	Attribute string `json:"attribute"`
	Direction string `json:"direction"`
}

type codexResult struct {
	CreatedAt       *int64 `json:"createdAt"`
	LastTransaction *int64 `json:"lastTransaction"`
	Volume5m        number `json:"volume5m"`
	Volume1         number `json:"volume1"`
	Volume24        number `json:"volume24"`
	VolumeChange5m  number `json:"volumeChange5m"`
	Liquidity       number `json:"liquidity"`
	PriceUSD        number `json:"priceUSD"`
	Change5m        number `json:"change5m"`
	Change1         number `json:"change1"`
	Change24        number `json:"change24"`
	MarketCap       number `json:"marketCap"`
	Holders         number `json:"holders"`
	TxnCount5m      number `json:"txnCount5m"`
	TxnCount24      number `json:"txnCount24"`
	BuyCount5m      number `json:"buyCount5m"`
	SellCount5m     number `json:"sellCount5m"`
	Pair            *struct {
		Address string `json:"address"`
	} `json:"pair"`
	Token *struct {
		Info *struct {
			Address       string `json:"address"`
			Name          string `json:"name"`
			Symbol        string `json:"symbol"`
			ImageThumbURL string `json:"imageThumbUrl"`
			ImageSmallURL string `json:"imageSmallUrl"`
			ImageLargeURL string `json:"imageLargeUrl"`
		} `json:"info"`
		CreatedAt *int64 `json:"createdAt"`
	} `json:"token"`
}

type codexResponse struct {
	Data *struct {
		FilterTokens *struct {
			Results []codexResult `json:"results"`
		} `json:"filterTokens"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (p *Codex) ListTokens(ctx context.Context, q application.ListingQuery) ([]domain.TradingPair, error) {
	if p.APIKey == "" {
		return nil, &domain.ConfigurationError{Setting: "DEFINED_API_KEY"}
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	payload, err := json.Marshal(codexRequest{
		Query: filterTokensQuery,
		Variables: codexVariables{
			Filters:  codexFilters{Network: []int{q.NetworkID}, LaunchpadName: q.Launchpads},
			Rankings: []codexRanking{{Attribute: q.RankBy, Direction: direction}},
			Limit:    q.Limit,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("codex: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("codex: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	auth := p.APIKey
	if p.Bearer {
		auth = "Bearer " + auth
	}
	req.Header.Set("Authorization", auth)

	var body codexResponse
	if err := p.client().DoJSON(ctx, req, &body); err != nil {
		return nil, fmt.Errorf("codex: %w", err)
	}
	if len(body.Errors) > 0 {
		msg := body.Errors[0].Message
		if msg == "" {
			msg = "query failed"
		}
		return nil, fmt.Errorf("codex: %w", errors.New(msg))
	}
	if body.Data == nil || body.Data.FilterTokens == nil {
		return []domain.TradingPair{}, nil
	}

	out := make([]domain.TradingPair, 0, len(body.Data.FilterTokens.Results))
	for _, r := range body.Data.FilterTokens.Results {
		if pair, ok := r.toDomain(q); ok {
			out = append(out, pair)
		}
	}
	return out, nil
}

func (p *Codex) client() *httpx.Client {
	if p.Client == nil {
		return &httpx.Client{}
	}
	return p.Client
}

func (r codexResult) toDomain(q application.ListingQuery) (domain.TradingPair, bool) {
	if r.Token == nil || r.Token.Info == nil || r.Token.Info.Address == "" {
		return domain.TradingPair{}, false
	}
	info := r.Token.Info

	symbol := info.Symbol
	if symbol == "" {
		symbol = "UNKNOWN"
	}
	image := info.ImageThumbURL
	if image == "" {
		image = info.ImageSmallURL
	}
	if image == "" {
		image = info.ImageLargeURL
	}

	pair := domain.TradingPair{
		PairAddress:     info.Address,
		ChainID:         q.ChainID,
		ChartSymbolType: "TOKEN",
		BaseToken: domain.Token{
			Address:  info.Address,
			Name:     strPtr(info.Name),
			Symbol:   symbol,
			ImageURL: strPtr(image),
		},
		QuoteToken:   domain.Token{Address: domain.ZeroAddress, Symbol: q.QuoteSymbol},
		PriceUSD:     r.PriceUSD.float(),
		LiquidityUSD: r.Liquidity.float(),
		Volume: domain.Windows{
			M5:  r.Volume5m.float(),
			H1:  r.Volume1.float(),
			H24: r.Volume24.float(),
		},
		PriceChange: domain.Windows{
			M5:  r.Change5m.float(),
			H1:  r.Change1.float(),
			H24: r.Change24.float(),
		},
		TxnCount:        domain.TxnTotals{M5: r.TxnCount5m.int(), H24: r.TxnCount24.int()},
		MarketCap:       r.MarketCap.float(),
		Holders:         r.Holders.int(),
		LastTxnAt:       unixTime(r.LastTransaction),
		VolumeChangePct: r.VolumeChange5m.float(),
	}
	if r.Pair != nil && r.Pair.Address != "" {
		pair.PairAddress = r.Pair.Address
		pair.ChartSymbolType = "POOL"
	}
	if buys, sells := r.BuyCount5m.int(), r.SellCount5m.int(); buys != nil || sells != nil {
		pair.Txns.M5 = &domain.TxnCounts{Buys: buys, Sells: sells}
	}
	created := r.CreatedAt
	if created == nil {
		created = r.Token.CreatedAt
	}
	pair.CreatedAt = unixTime(created)
	return pair, true
}
