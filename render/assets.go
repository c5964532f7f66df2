package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// LoadImage reads and decodes the image at path and caches it by path, so
// repeated loads of the same atlas share one texture.
func LoadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("render: empty image path")
	}
	if img := GetImage(path); img != nil {
		return img, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: read %s: %w", path, err)
	}
	im, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	img := ebiten.NewImageFromImage(im)
	RegisterImage(path, img)
	return img, nil
}

// RegisterImage stores a texture under key so GetImage finds it without
// touching the filesystem. Generated atlases register themselves this way.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns the cached texture for key, or nil.
func GetImage(key string) *ebiten.Image {
	return images[key]
}
