package imaging

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"habernexus/internal/domain"
)

type fakeStore struct {
	key         string
	data        []byte
	contentType string
	err         error
}

func (f *fakeStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.key = key
	f.data = data
	f.contentType = contentType
	return "https://cdn.example.com/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageServer(t *testing.T, body []byte, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write(body)
	}))
}

func TestProcessProducesCanvasSizedJPEG(t *testing.T) {
	t.Parallel()

	server := imageServer(t, pngBytes(t, 800, 800), http.StatusOK)
	defer server.Close()

	store := &fakeStore{}
	p, err := NewProcessor(server.Client(), store, nil)
	require.NoError(t, err)

	url, err := p.Process(context.Background(), server.URL+"/img.png")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/"+store.key, url)
	require.True(t, strings.HasSuffix(store.key, ".jpg"))
	require.Equal(t, "image/jpeg", store.contentType)

	decoded, err := jpeg.Decode(bytes.NewReader(store.data))
	require.NoError(t, err)
	require.Equal(t, 1200, decoded.Bounds().Dx())
	require.Equal(t, 675, decoded.Bounds().Dy())
}

func TestProcessWideAndTallSources(t *testing.T) {
	t.Parallel()

	for _, dims := range []struct{ w, h int }{{1920, 400}, {300, 900}, {1200, 675}} {
		server := imageServer(t, pngBytes(t, dims.w, dims.h), http.StatusOK)
		store := &fakeStore{}
		p, err := NewProcessor(server.Client(), store, nil)
		require.NoError(t, err)

		_, err = p.Process(context.Background(), server.URL)
		require.NoError(t, err, "source %dx%d", dims.w, dims.h)

		decoded, err := jpeg.Decode(bytes.NewReader(store.data))
		require.NoError(t, err)
		require.Equal(t, 1200, decoded.Bounds().Dx())
		require.Equal(t, 675, decoded.Bounds().Dy())
		server.Close()
	}
}

func TestProcessHTTPFailure(t *testing.T) {
	t.Parallel()

	server := imageServer(t, nil, http.StatusNotFound)
	defer server.Close()

	p, err := NewProcessor(server.Client(), &fakeStore{}, nil)
	require.NoError(t, err)

	_, err = p.Process(context.Background(), server.URL)
	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestProcessUndecodableBody(t *testing.T) {
	t.Parallel()

	server := imageServer(t, []byte("definitely not an image"), http.StatusOK)
	defer server.Close()

	p, err := NewProcessor(server.Client(), &fakeStore{}, nil)
	require.NoError(t, err)

	_, err = p.Process(context.Background(), server.URL)
	var fetchErr *domain.FetchError
	require.True(t, errors.As(err, &fetchErr))
}

func TestProcessStoreFailure(t *testing.T) {
	t.Parallel()

	server := imageServer(t, pngBytes(t, 640, 480), http.StatusOK)
	defer server.Close()

	store := &fakeStore{err: errors.New("bucket unavailable")}
	p, err := NewProcessor(server.Client(), store, nil)
	require.NoError(t, err)

	_, err = p.Process(context.Background(), server.URL)
	require.Error(t, err)
}
