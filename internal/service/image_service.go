package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"path"
	"strings"

	"glimpse/internal/config"
	"glimpse/internal/models"
	"glimpse/internal/observability"
	"glimpse/internal/storage"

	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	// PhotoSize is the edge length of the processed square photo.
	PhotoSize = 1080
	// WebPQuality is the lossy encoding quality for stored photos.
	WebPQuality = 80

	DefaultMaxUploadSizeMB = 10
)

// ImageService normalizes uploaded photos and stores them as blobs. Every
// photo becomes a centered square WebP, downscaled to PhotoSize but never
// enlarged.
type ImageService struct {
	store              storage.BlobStore
	maxUploadSizeBytes int64
}

// NewImageService returns a new ImageService.
func NewImageService(store storage.BlobStore, cfg *config.Config) *ImageService {
	maxUploadSizeMB := DefaultMaxUploadSizeMB
	if cfg != nil && cfg.MaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.MaxUploadSizeMB
	}
	return &ImageService{
		store:              store,
		maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024,
	}
}

// UploadResult describes a stored blob.
type UploadResult struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// Upload processes an uploaded image and stores it. The original filename is
// kept as a readable suffix in the blob key.
func (s *ImageService) Upload(ctx context.Context, userID uint, filename string, content []byte) (*UploadResult, error) {
	span, ctx := observability.NewSpan(ctx, "image.upload")
	defer span.End()
	span.AddAttributes(
		attribute.Int("image.size_bytes", len(content)),
		attribute.Int("user.id", int(userID)),
	)

	if len(content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large (max %dMB)", s.maxUploadSizeBytes/(1024*1024)))
	}

	decoded, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, models.NewValidationError("Unsupported image format.")
	}

	processed := squareCrop(decoded, PhotoSize)
	encoded, err := encodeWebP(processed, WebPQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	key := fmt.Sprintf("photos/%s-%s.webp", uuid.New().String(), baseName(filename))
	url, err := s.store.Put(ctx, key, encoded, "image/webp")
	if err != nil {
		span.SetError(err)
		return nil, models.NewInternalError(err)
	}
	return &UploadResult{URL: url, Pathname: key, ContentType: "image/webp"}, nil
}

// baseName reduces a client-supplied filename to a key-safe stem. Path
// segments and the extension are dropped.
func baseName(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	base = strings.Trim(base, ".")

	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "photo"
	}
	return b.String()
}

// squareCrop center-crops the image to a square and downscales it to at most
// maxSize per edge. Images smaller than maxSize are not enlarged.
func squareCrop(src image.Image, maxSize int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return src
	}

	side := w
	if h < side {
		side = h
	}
	x := b.Min.X + (w-side)/2
	y := b.Min.Y + (h-side)/2

	square := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(square, square.Bounds(), src, image.Point{X: x, Y: y}, draw.Src)

	if side <= maxSize {
		return square
	}

	dst := image.NewRGBA(image.Rect(0, 0, maxSize, maxSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), square, square.Bounds(), xdraw.Over, nil)
	return dst
}

func encodeWebP(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := webp.Encode(buf, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
