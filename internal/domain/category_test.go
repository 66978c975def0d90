package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"clanker", CategoryClanker},
		{" ZORA ", CategoryZora},
		{"Printr", CategoryPrintr},
		{"weth", CategoryWETH},
	}
	for _, c := range cases {
		got, err := ParseCategory(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got)
	}

	_, err := ParseCategory("DOGE")
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestQuoteRegistry_Defaults(t *testing.T) {
	r := NewQuoteRegistry(QuoteOverrides{})

	q, ok := r.Quote(CategoryClanker)
	require.True(t, ok)
	require.Equal(t, "WETH", q.Symbol)
	require.Equal(t, DefaultWETHQuote, q.Address)

	p, ok := r.Profile(CategoryZora)
	require.True(t, ok)
	require.Equal(t, ModeListing, p.Mode)
	require.Equal(t, ClassifierPassthrough, p.Classifier)
	require.Equal(t, []string{"Zora"}, p.Launchpads)

	p, ok = r.Profile(CategoryPrintr)
	require.True(t, ok)
	require.Equal(t, ModeDisabled, p.Mode)

	_, ok = r.Profile(Category("NOPE"))
	require.False(t, ok)
}

func TestQuoteRegistry_Overrides(t *testing.T) {
	r := NewQuoteRegistry(QuoteOverrides{WETHAddress: "0xweth", USDCAddress: "0xusdc"})

	q, _ := r.Quote(CategoryWETH)
	require.Equal(t, "0xweth", q.Address)
	q, _ = r.Quote(CategoryZora)
	require.Equal(t, "0xusdc", q.Address)
}

func TestProfile_LaunchpadsAreCopied(t *testing.T) {
	r := NewQuoteRegistry(QuoteOverrides{})
	p, _ := r.Profile(CategoryClanker)
	p.Launchpads[0] = "mutated"

	again, _ := r.Profile(CategoryClanker)
	require.Equal(t, "Clanker V4", again.Launchpads[0])
}

func TestProfile_SearchQuery(t *testing.T) {
	r := NewQuoteRegistry(QuoteOverrides{})
	p, _ := r.Profile(CategoryWETH)
	require.Equal(t, "base weth", p.SearchQuery())
}
