// Package texture loads surface textures from disk or over HTTP and
// converts them into GL-ready RGBA pixels.
package texture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// MaxDownloadBytes caps the size of a texture fetched over HTTP.
const MaxDownloadBytes = 64 << 20

// ErrEmptySource is returned when Load is called without a source.
var ErrEmptySource = errors.New("texture: empty source")

var httpClient = &http.Client{Timeout: 30 * time.Second}

// IsURL reports whether source names an http(s) resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Load reads and decodes the image at source, a file path or http(s) URL,
// and returns it flipped for GL upload.
func Load(ctx context.Context, source string) (*image.RGBA, error) {
	if source == "" {
		return nil, ErrEmptySource
	}

	var (
		data []byte
		err  error
	)
	if IsURL(source) {
		data, err = fetch(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", source, err)
	}

	img, err := Decode(data, source)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", source, err)
	}
	return ToRGBA(img), nil
}

// Decode decodes data using the registered image formats. TGA has no magic
// number, so it is selected by the name's extension.
func Decode(data []byte, name string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(urlPath(name)), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if len(data) > MaxDownloadBytes {
		return nil, fmt.Errorf("fetch: body exceeds %d bytes", MaxDownloadBytes)
	}
	return data, nil
}

// urlPath strips a query string so extension checks work on URLs.
func urlPath(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		return name[:i]
	}
	return name
}

// ToRGBA converts img to RGBA with rows flipped, so row 0 of the result is
// the bottom row of the picture as GL expects. The result's bounds start at
// the origin.
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	src, ok := img.(*image.RGBA)
	if !ok || b.Min != (image.Point{}) {
		src = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)
	}

	h := b.Dy()
	rowLen := b.Dx() * 4
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), h))
	for y := 0; y < h; y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+rowLen]
		dstOff := (h - 1 - y) * out.Stride
		copy(out.Pix[dstOff:dstOff+rowLen], srcRow)
	}
	return out
}
