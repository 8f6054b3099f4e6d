package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/invest/pkg/config"
	"github.com/amirasaad/invest/pkg/domain"
	"github.com/amirasaad/invest/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captchaServer(t *testing.T, success bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "s3cret", r.PostForm.Get("secret"))
		assert.Equal(t, "10.0.0.1", r.PostForm.Get("remoteip"))
		w.Header().Set("Content-Type", "application/json")
		if success {
			_, _ = w.Write([]byte(`{"success":true}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRecaptchaVerifier(t *testing.T) {
	ctx := context.Background()
	ok := NewRecaptchaVerifier(&config.Captcha{Secret: "s3cret", URL: captchaServer(t, true).URL, Timeout: time.Second},
		testutils.DiscardLogger())
	assert.NoError(t, ok.Verify(ctx, "token", "10.0.0.1"))
	assert.ErrorIs(t, ok.Verify(ctx, "", "10.0.0.1"), domain.ErrCaptchaFailed)

	rejected := NewRecaptchaVerifier(&config.Captcha{Secret: "s3cret", URL: captchaServer(t, false).URL, Timeout: time.Second},
		testutils.DiscardLogger())
	assert.ErrorIs(t, rejected.Verify(ctx, "token", "10.0.0.1"), domain.ErrCaptchaFailed)
}

func TestRecaptchaVerifier_Disabled(t *testing.T) {
	v := NewRecaptchaVerifier(&config.Captcha{URL: "http://127.0.0.1:0"}, testutils.DiscardLogger())
	assert.False(t, v.Enabled())
	assert.NoError(t, v.Verify(context.Background(), "", ""))
}

func TestRecaptchaVerifier_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	v := NewRecaptchaVerifier(&config.Captcha{Secret: "x", URL: srv.URL, Timeout: time.Second}, testutils.DiscardLogger())
	err := v.Verify(context.Background(), "token", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCaptchaFailed)
}

func TestCoinGeckoProvider_FetchPrices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":64000.5},"ethereum":{"eur":3000}}`))
	}))
	defer srv.Close()

	p := NewCoinGeckoProvider(&config.PriceFeed{URL: srv.URL, Timeout: time.Second}, testutils.DiscardLogger())
	prices, err := p.FetchPrices(context.Background(), []string{"bitcoin", "ethereum"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"bitcoin": 64000.5}, prices)
}

func TestCoinGeckoProvider_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("ids") == "broken" {
			_, _ = w.Write([]byte(`not json`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`rate limited`))
	}))
	defer srv.Close()

	p := NewCoinGeckoProvider(&config.PriceFeed{URL: srv.URL, Timeout: time.Second}, testutils.DiscardLogger())
	_, err := p.FetchPrices(context.Background(), []string{"bitcoin"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	_, err = p.FetchPrices(context.Background(), []string{"broken"})
	assert.Error(t, err)
}
