package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"habernexus/internal/domain"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
  <channel>
    <title>Test Gündem</title>
    <item>
      <title>Yapay Zeka Haberi</title>
      <link>https://example.com/haber/1</link>
      <description>yapay zeka alanında gelişme</description>
      <pubDate>Mon, 02 Feb 2026 10:00:00 +0300</pubDate>
      <enclosure url="https://example.com/img/1.jpg" type="image/jpeg" length="1000"/>
    </item>
    <item>
      <title>Borsa Güne Yükselişle Başladı</title>
      <link>https://example.com/haber/2</link>
      <description>&lt;p&gt;Piyasalar hareketli. &lt;img src="https://example.com/img/2.jpg"/&gt;&lt;/p&gt;</description>
    </item>
    <item>
      <title>Maç Sonucu</title>
      <link>https://example.com/haber/3</link>
      <description>Dün akşamki karşılaşma</description>
      <media:thumbnail url="https://example.com/img/3.jpg"/>
    </item>
  </channel>
</rss>`

func TestFetchOrderAndFields(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil)
	items, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.Equal(t, "Yapay Zeka Haberi", items[0].Title)
	require.Equal(t, "https://example.com/haber/1", items[0].Link)
	require.Equal(t, "https://example.com/img/1.jpg", items[0].ImageURL)
	require.False(t, items[0].PublishedAt.IsZero())

	// Image pulled out of the description HTML when no enclosure exists.
	require.Equal(t, "Borsa Güne Yükselişle Başladı", items[1].Title)
	require.Equal(t, "https://example.com/img/2.jpg", items[1].ImageURL)

	// media:thumbnail extension fallback.
	require.Equal(t, "https://example.com/img/3.jpg", items[2].ImageURL)
}

func TestFetchParseFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("this is not a feed"))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil)
	_, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, server.URL, fetchErr.Source)
}

func TestFetchNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), nil)
	_, err := f.Fetch(context.Background(), server.URL)

	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
}
