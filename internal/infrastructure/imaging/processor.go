// Package imaging normalizes remote images into branded 1200x675 assets.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"habernexus/internal/domain"
	"habernexus/internal/ports"
)

const (
	canvasWidth   = 1200
	canvasHeight  = 675
	jpegQuality   = 85
	watermarkText = "HaberNexus"
	watermarkSize = 24
	watermarkPad  = 20
	maxDownload   = 20 << 20 // 20 MiB
)

// Processor implements ports.ImageProcessor: fetch, resize/crop to a fixed
// canvas, watermark, encode and hand off to the asset store.
type Processor struct {
	client *http.Client
	store  ports.AssetStore
	logger *slog.Logger
	face   font.Face
}

var _ ports.ImageProcessor = (*Processor)(nil)

// NewProcessor wires an HTTP client and the asset store; a nil client gets
// a 20s timeout default.
func NewProcessor(client *http.Client, store ports.AssetStore, logger *slog.Logger) (*Processor, error) {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse watermark font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{Size: watermarkSize})
	return &Processor{client: client, store: store, logger: logger, face: face}, nil
}

// Process produces a stored, watermarked 1200x675 JPEG for the given source
// image and returns its durable URL. Callers treat any error as "publish
// without an image"; an item is never dropped because of its picture.
func (p *Processor) Process(ctx context.Context, imageURL string) (string, error) {
	raw, err := p.download(ctx, imageURL)
	if err != nil {
		return "", &domain.FetchError{Source: imageURL, Err: err}
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", &domain.FetchError{Source: imageURL, Err: fmt.Errorf("decode image: %w", err)}
	}

	canvas := coverResize(src)
	p.watermark(canvas)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	key := uuid.NewString() + ".jpg"
	url, err := p.store.Put(ctx, key, buf.Bytes(), "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("store asset: %w", err)
	}

	if p.logger != nil {
		p.logger.Debug("image processed", "source", imageURL, "asset", url, "bytes", buf.Len())
	}
	return url, nil
}

func (p *Processor) download(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", "HaberNexus/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image source returned %s", resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return raw, nil
}

// coverResize center-crops the source to the canvas aspect ratio and scales
// it to exactly 1200x675, the "cover" fit of the original design.
func coverResize(src image.Image) *image.RGBA {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	cropW, cropH := srcW, srcH
	if srcW*canvasHeight > srcH*canvasWidth {
		cropW = srcH * canvasWidth / canvasHeight
	} else {
		cropH = srcW * canvasHeight / canvasWidth
	}
	crop := image.Rect(0, 0, cropW, cropH).
		Add(image.Pt(b.Min.X+(srcW-cropW)/2, b.Min.Y+(srcH-cropH)/2))

	dst := image.NewRGBA(image.Rect(0, 0, canvasWidth, canvasHeight))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, draw.Src, nil)
	return dst
}

func (p *Processor) watermark(canvas *image.RGBA) {
	dc := gg.NewContextForRGBA(canvas)
	dc.SetFontFace(p.face)
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawStringAnchored(watermarkText, canvasWidth-watermarkPad, canvasHeight-watermarkPad, 1, 0.5)
}
