// Package upload stores uploaded store logos and produces the thumbnails the
// mobile clients list with.
package upload

import (
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"workforce/backend/foundation/web"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	_ "image/gif"
	_ "image/jpeg"
)

const (
	maxLogoBytes = 5 << 20
	thumbSize    = 128
)

type Service struct {
	basePath string
	baseUrl  string
}

func NewService(basePath, baseUrl string) *Service {
	return &Service{basePath: basePath, baseUrl: baseUrl}
}

// SaveLogo writes the original upload and a square thumbnail under
// basePath/logos and returns the public url of the original.
func (s *Service) SaveLogo(file *multipart.FileHeader, storeID int) (string, error) {
	if file.Size > maxLogoBytes {
		return "", web.NewRequestError(errors.New("logo exceeds 5MB"), http.StatusBadRequest)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif":
	default:
		return "", web.NewRequestError(errors.New("unsupported image type"), http.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "opening upload"), http.StatusBadRequest)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "decoding image"), http.StatusBadRequest)
	}

	dir := filepath.Join(s.basePath, "logos")
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", web.NewRequestError(errors.Wrap(err, "creating logo directory"), http.StatusInternalServerError)
	}

	name := fmt.Sprintf("store_%d.png", storeID)
	if err = writePNG(filepath.Join(dir, name), img); err != nil {
		return "", err
	}

	thumb := image.NewRGBA(image.Rect(0, 0, thumbSize, thumbSize))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Over, nil)

	thumbName := fmt.Sprintf("store_%d_thumb.png", storeID)
	if err = writePNG(filepath.Join(dir, thumbName), thumb); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/media/logos/%s", s.baseUrl, name), nil
}

func writePNG(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "creating image file"), http.StatusInternalServerError)
	}
	defer out.Close()

	if err = png.Encode(out, img); err != nil {
		return web.NewRequestError(errors.Wrap(err, "encoding image"), http.StatusInternalServerError)
	}
	return nil
}
