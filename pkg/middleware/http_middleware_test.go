package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/sale/product-offers/{id}", NormalizePath("/sale/product-offers/7712345678"))
	assert.Equal(t, "/sale/product-offers", NormalizePath("/sale/product-offers"))
	assert.Equal(t, "/sale/product-offers/{id}/operations", NormalizePath("/sale/product-offers/123/operations"))
	assert.Equal(t, "/sale/offers/{id}/{id}", NormalizePath("/sale/offers/123/456"))
	assert.Equal(t, "/sale/offer-events", NormalizePath("/sale/offer-events"))
}

func TestChain_Order(t *testing.T) {
	var calls []string
	mark := func(name string) Middleware {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				calls = append(calls, name)
				return next.RoundTrip(r)
			})
		}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := &http.Client{Transport: Chain(nil, mark("a"), PrometheusTransport, mark("b"))}
	resp, err := client.Get(server.URL + "/sale/product-offers/1")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, []string{"a", "b"}, calls)
}
