package scraper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPage = `<!DOCTYPE html>
<html><body>
<ul>
  <li class="s-item">
    <span class="s-item__title">Doom Eternal PS4</span>
    <span class="s-item__price">$21.26</span>
  </li>
  <li class="s-item">
    <span class="s-item__price">$34.99</span>
  </li>
  <li class="s-item">
    <span class="s-item__price">$15.00 to $30.00</span>
  </li>
  <li class="s-item">
    <span class="s-item__price">Free</span>
  </li>
</ul>
</body></html>`

func TestLowestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Doom Eternal PS4", r.URL.Query().Get("_nkw"))
		assert.Equal(t, "15", r.URL.Query().Get("_sop"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		io.WriteString(w, searchPage)
	}))
	defer srv.Close()

	s := NewEbayScraper(WithSearchURL(srv.URL))
	price, err := s.LowestPrice(context.Background(), "Doom Eternal", "PS4")
	require.NoError(t, err)
	assert.Equal(t, 15.00, price)
}

func TestLowestPriceNoListings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html><body><p>No results found</p></body></html>`)
	}))
	defer srv.Close()

	s := NewEbayScraper(WithSearchURL(srv.URL))
	_, err := s.LowestPrice(context.Background(), "Nonexistent Game", "PS4")
	assert.ErrorIs(t, err, ErrNoListings)
}

func TestLowestPriceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	s := NewEbayScraper(WithSearchURL(srv.URL))
	_, err := s.LowestPrice(context.Background(), "Doom Eternal", "PS4")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$21.26", 21.26, true},
		{"$15.00 to $30.00", 15.00, true},
		{"1,299.99", 1299.99, true},
		{"Free", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, tc.in)
		}
	}
}
