package render

import (
	"cmp"
	"slices"

	"github.com/milk9111/glyphgrid/collection"
	"github.com/milk9111/glyphgrid/common"
)

// VerticesPerSprite is the number of vertices emitted for one quad.
const VerticesPerSprite = 6

// Device is the GPU layer a Batcher draws through.
type Device interface {
	// Upload replaces the device vertex buffer with vertices.
	Upload(vertices []Vertex)
	// Bind selects the texture used by subsequent draws.
	Bind(tex Texture)
	// DrawArrays draws count vertices starting at offset as triangles.
	DrawArrays(offset, count int)
}

// Discard is a Device that draws nothing, for presenters that read the grid
// directly.
var Discard Device = discardDevice{}

type discardDevice struct{}

func (discardDevice) Upload([]Vertex)              {}
func (discardDevice) Bind(Texture)                 {}
func (discardDevice) DrawArrays(offset, count int) {}

// Stats summarizes the last frame produced by a Batcher.
type Stats struct {
	Sprites   int
	Batches   int
	Vertices  int
	DrawCalls int
}

// Batcher groups one frame's sprites by texture so that each texture costs
// one draw call. Call Begin, Draw for each sprite, End, then Render.
type Batcher struct {
	device Device

	// SortByTexture groups all sprites sharing a texture into one batch.
	// When false, submission order is kept and batches split wherever the
	// texture changes.
	SortByTexture bool

	sprites  *collection.Buffer[Sprite]
	batches  *collection.Buffer[Batch]
	vertices *collection.Buffer[Vertex]

	drawCalls int
}

// NewBatcher creates a batcher that draws through device.
func NewBatcher(device Device) *Batcher {
	return &Batcher{
		device:        device,
		SortByTexture: true,
		sprites:       collection.NewBuffer[Sprite](0),
		batches:       collection.NewBuffer[Batch](0),
		vertices:      collection.NewBuffer[Vertex](0),
	}
}

// Begin starts a new frame. Buffers keep their capacity.
func (b *Batcher) Begin() {
	if b == nil {
		return
	}
	b.sprites.Clear()
	b.batches.Clear()
	b.vertices.Clear()
	b.drawCalls = 0
}

// Draw queues a sprite for the current frame.
func (b *Batcher) Draw(s Sprite) {
	if b == nil {
		return
	}
	b.sprites.Append(s)
}

// End builds the batch list and vertex stream and uploads the vertices to the
// device in one call.
func (b *Batcher) End() {
	if b == nil {
		return
	}
	sprites := b.sprites.Slice()
	if b.SortByTexture {
		slices.SortStableFunc(sprites, func(x, y Sprite) int {
			return cmp.Compare(x.Texture.ID, y.Texture.ID)
		})
	}

	offset := 0
	for i := range sprites {
		s := &sprites[i]
		current := b.batches.Last()
		if current == nil || current.Texture.ID != s.Texture.ID {
			b.batches.Append(Batch{Offset: offset, Texture: s.Texture})
			current = b.batches.Last()
		}
		current.Count += VerticesPerSprite

		b.vertices.Append(s.TopLeft)
		b.vertices.Append(s.BottomLeft)
		b.vertices.Append(s.BottomRight)
		b.vertices.Append(s.BottomRight)
		b.vertices.Append(s.TopRight)
		b.vertices.Append(s.TopLeft)
		offset += VerticesPerSprite
	}

	if b.device != nil {
		b.device.Upload(b.vertices.Slice())
	}
}

// Render issues one draw call per batch.
func (b *Batcher) Render() {
	if b == nil || b.device == nil {
		return
	}
	for _, batch := range b.batches.Slice() {
		b.device.Bind(batch.Texture)
		b.device.DrawArrays(batch.Offset, batch.Count)
		b.drawCalls++
	}
	stats := b.Stats()
	common.Logger().Debug("batcher: frame",
		"sprites", stats.Sprites,
		"batches", stats.Batches,
		"vertices", stats.Vertices,
		"draw_calls", stats.DrawCalls,
	)
}

// Batches returns the batches built by the last End.
func (b *Batcher) Batches() []Batch {
	if b == nil {
		return nil
	}
	return b.batches.Slice()
}

// Vertices returns the vertex stream built by the last End.
func (b *Batcher) Vertices() []Vertex {
	if b == nil {
		return nil
	}
	return b.vertices.Slice()
}

// Stats reports counts for the current frame.
func (b *Batcher) Stats() Stats {
	if b == nil {
		return Stats{}
	}
	return Stats{
		Sprites:   b.sprites.Len(),
		Batches:   b.batches.Len(),
		Vertices:  b.vertices.Len(),
		DrawCalls: b.drawCalls,
	}
}
