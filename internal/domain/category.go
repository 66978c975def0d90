package domain

import (
	"fmt"
	"strings"
)

// Category is a market segment, identified by the asset that prices it.
type Category string

const (
	CategoryWETH    Category = "WETH"
	CategoryClanker Category = "CLANKER"
	CategoryZora    Category = "ZORA"
	CategoryPrintr  Category = "PRINTR"
)

// Categories lists every category the scanner knows, in display order.
var Categories = []Category{CategoryClanker, CategoryZora, CategoryPrintr, CategoryWETH}

// ParseCategory accepts any casing of a known category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

type Mode string

const (
	ModeSearch   Mode = "search"
	ModeListing  Mode = "listing"
	ModeDisabled Mode = "disabled"
)

type ClassifierKind string

const (
	ClassifierSpike       ClassifierKind = "spike"
	ClassifierVelocity    ClassifierKind = "velocity"
	ClassifierPassthrough ClassifierKind = "passthrough"
)

const (
	ChainBase        = "base"
	NetworkIDBase    = 8453
	DefaultWETHQuote = "0x4200000000000000000000000000000000000006"
	DefaultUSDCQuote = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
	ZeroAddress      = "0x0000000000000000000000000000000000000000"
)

// QuoteAsset identifies the token a category is priced in.
type QuoteAsset struct {
	Address string
	Symbol  string
}

// Profile describes how a category is scanned.
type Profile struct {
	Category    Category
	Mode        Mode
	Classifier  ClassifierKind
	Quote       QuoteAsset
	ChainID     string
	NetworkID   int
	Launchpads  []string
	QuoteSymbol string // quote symbol stamped on listing results
}

// SearchQuery is the free text sent to the pair-search provider.
func (p Profile) SearchQuery() string {
	return "base " + strings.ToLower(string(p.Category))
}

// QuoteRegistry is the static category -> profile table built once at startup.
type QuoteRegistry struct {
	profiles map[Category]Profile
}

// QuoteOverrides replaces the default quote addresses, e.g. for forks or testnets.
type QuoteOverrides struct {
	WETHAddress string
	USDCAddress string
}

func NewQuoteRegistry(o QuoteOverrides) QuoteRegistry {
	weth := QuoteAsset{Address: DefaultWETHQuote, Symbol: "WETH"}
	usdc := QuoteAsset{Address: DefaultUSDCQuote, Symbol: "USDC"}
	if o.WETHAddress != "" {
		weth.Address = o.WETHAddress
	}
	if o.USDCAddress != "" {
		usdc.Address = o.USDCAddress
	}
	profiles := map[Category]Profile{
		CategoryWETH: {
			Category:   CategoryWETH,
			Mode:       ModeSearch,
			Classifier: ClassifierSpike,
			Quote:      weth,
			ChainID:    ChainBase,
			NetworkID:  NetworkIDBase,
		},
		CategoryClanker: {
			Category:    CategoryClanker,
			Mode:        ModeListing,
			Classifier:  ClassifierVelocity,
			Quote:       weth,
			ChainID:     ChainBase,
			NetworkID:   NetworkIDBase,
			Launchpads:  []string{"Clanker V4"},
			QuoteSymbol: "USD",
		},
		CategoryZora: {
			Category:    CategoryZora,
			Mode:        ModeListing,
			Classifier:  ClassifierPassthrough,
			Quote:       usdc,
			ChainID:     ChainBase,
			NetworkID:   NetworkIDBase,
			Launchpads:  []string{"Zora"},
			QuoteSymbol: "ZORA",
		},
		CategoryPrintr: {
			Category:    CategoryPrintr,
			Mode:        ModeDisabled,
			Quote:       usdc,
			ChainID:     ChainBase,
			NetworkID:   NetworkIDBase,
			Launchpads:  []string{"Printr"},
			QuoteSymbol: "USD",
		},
	}
	return QuoteRegistry{profiles: profiles}
}

// Profile returns the profile for c; ok is false for unknown categories.
func (r QuoteRegistry) Profile(c Category) (Profile, bool) {
	p, ok := r.profiles[c]
	if ok {
		p.Launchpads = append([]string(nil), p.Launchpads...)
	}
	return p, ok
}

func (r QuoteRegistry) Quote(c Category) (QuoteAsset, bool) {
	p, ok := r.profiles[c]
	return p.Quote, ok
}
