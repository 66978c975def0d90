//go:build e2e

package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"pairscan-service/internal/application"
	"pairscan-service/internal/domain"
	httpserver "pairscan-service/internal/infrastructure/http"
	"pairscan-service/internal/infrastructure/httpx"
	"pairscan-service/internal/infrastructure/metrics"
	"pairscan-service/internal/infrastructure/provider"
	redisstore "pairscan-service/internal/infrastructure/redis"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type steppingClock struct{ now atomic.Int64 }

func (c *steppingClock) Now() time.Time          { return time.UnixMilli(c.now.Load()).UTC() }
func (c *steppingClock) Advance(d time.Duration) { c.now.Add(d.Milliseconds()) }

type scanBody struct {
	Quote string `json:"quote"`
	Pairs []struct {
		PairAddress       string   `json:"pairAddress"`
		Signal            bool     `json:"signal"`
		VolumeChangeM5Pct *float64 `json:"volumeChangeM5Pct"`
	} `json:"pairs"`
	Alerts []struct {
		PairAddress string `json:"pairAddress"`
	} `json:"alerts"`
	FetchedAt int64 `json:"fetchedAt"`
}

func getScan(t *testing.T, base, quote string) (int, scanBody) {
	t.Helper()
	resp, err := http.Get(base + "/api/scan?quote=" + quote)
	require.NoError(t, err)
	defer resp.Body.Close()
	var body scanBody
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

func TestE2E_ScanPipeline(t *testing.T) {
	var m5 atomic.Int64
	m5.Store(1000)
	dex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"pairs":[{"chainId":"base","pairAddress":"0xspike","baseToken":{"address":"0xt","symbol":"SPK"},
			"quoteToken":{"address":"0x4200000000000000000000000000000000000006","symbol":"WETH"},
			"volume":{"m5":%d,"h1":12000,"h24":50000},"marketCap":50000}]}`, m5.Load())
	}))
	defer dex.Close()

	codex := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, `{"data":{"filterTokens":{"results":[{"volumeChange5m":"0.1","token":{"info":{"address":"0xzora","symbol":"Z"}}}]}}}`)
	}))
	defer codex.Close()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	clock := &steppingClock{}
	clock.now.Store(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).UnixMilli())

	m := metrics.New()
	scanner := application.NewScannerService(
		domain.NewQuoteRegistry(domain.QuoteOverrides{}),
		&provider.DexScreener{BaseURL: dex.URL, Client: httpx.NewClient("dexscreener", 2*time.Second, 0, 0)},
		&provider.Codex{URL: codex.URL, APIKey: "key", Client: httpx.NewClient("codex", 2*time.Second, 0, 0)},
		application.WithClock(clock),
		application.WithCooldowns(redisstore.New(rdb)),
		application.WithRecorder(m),
	)
	srv := httpserver.NewServer(scanner)
	srv.SetMetrics(m)
	api := httptest.NewServer(httpserver.NewRouter(srv))
	defer api.Close()

	code, body := getScan(t, api.URL, "WETH")
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body.Pairs)

	clock.Advance(5 * time.Minute)
	m5.Store(1600)
	code, body = getScan(t, api.URL, "WETH")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Pairs, 1)
	require.True(t, body.Pairs[0].Signal)
	require.InDelta(t, 0.6, *body.Pairs[0].VolumeChangeM5Pct, 1e-9)
	require.Len(t, body.Alerts, 1)
	require.True(t, mr.Exists("pairscan:cooldown:WETH:0xspike"))

	code, body = getScan(t, api.URL, "zora")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ZORA", body.Quote)
	require.Len(t, body.Pairs, 1)
	require.InDelta(t, 0.1, *body.Pairs[0].VolumeChangeM5Pct, 1e-9)

	code, _ = getScan(t, api.URL, "nope")
	require.Equal(t, http.StatusBadRequest, code)

	dex.Close()
	clock.Advance(10 * time.Second)
	code, _ = getScan(t, api.URL, "WETH")
	require.Equal(t, http.StatusServiceUnavailable, code)

	resp, err := http.Get(api.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
