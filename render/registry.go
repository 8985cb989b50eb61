package render

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// TextureRegistry hands out Texture handles for ebiten images and caches
// them by key. Handles live for the lifetime of the registry.
type TextureRegistry struct {
	nextID uint32
	images map[uint32]*ebiten.Image
	byKey  map[string]Texture
}

// NewTextureRegistry creates an empty registry.
func NewTextureRegistry() *TextureRegistry {
	return &TextureRegistry{
		images: map[uint32]*ebiten.Image{},
		byKey:  map[string]Texture{},
	}
}

// Register stores img under key and returns its handle. Registering the same
// key again returns the existing handle.
func (r *TextureRegistry) Register(key string, img image.Image) (Texture, error) {
	if r == nil {
		return Texture{}, fmt.Errorf("render: nil texture registry")
	}
	if key == "" || img == nil {
		return Texture{}, fmt.Errorf("render: register texture %q: empty key or image", key)
	}
	if tex, ok := r.byKey[key]; ok {
		return tex, nil
	}

	eimg, ok := img.(*ebiten.Image)
	if !ok {
		eimg = ebiten.NewImageFromImage(img)
	}
	r.nextID++
	b := eimg.Bounds()
	tex := Texture{ID: r.nextID, Width: b.Dx(), Height: b.Dy()}
	r.images[tex.ID] = eimg
	r.byKey[key] = tex
	return tex, nil
}

// Image returns the ebiten image behind tex, or nil.
func (r *TextureRegistry) Image(tex Texture) *ebiten.Image {
	if r == nil || !tex.Valid() {
		return nil
	}
	return r.images[tex.ID]
}

// Len returns the number of registered textures.
func (r *TextureRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.images)
}
