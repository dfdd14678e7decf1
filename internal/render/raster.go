package render

import (
	"bytes"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/draw"
)

// Raster stores an opaque RGBA picture in row-major order. Writers and
// readers may run on different goroutines; every access takes the raster
// lock, so a viewer always copies whole blocks.
type Raster struct {
	W, H int

	mu  sync.RWMutex
	pix []uint8
}

// NewRaster allocates a black raster with the given dimensions.
func NewRaster(w, h int) *Raster {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	r := &Raster{W: w, H: h, pix: make([]uint8, 4*w*h)}
	r.Fill(color.RGBA{A: 0xff})
	return r
}

// FromImage copies any image into a new raster.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Raster{W: b.Dx(), H: b.Dy(), pix: dst.Pix}
}

// Index returns the byte offset of pixel (x, y).
func (r *Raster) Index(x, y int) int { return 4 * (y*r.W + x) }

// Bounds implements image.Image.
func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.W, r.H) }

// ColorModel implements image.Image.
func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

// At implements image.Image.
func (r *Raster) At(x, y int) color.Color { return r.RGBAAt(x, y) }

// RGBAAt returns the pixel at (x, y), or transparent black outside the raster.
func (r *Raster) RGBAAt(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return color.RGBA{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.Index(x, y)
	return color.RGBA{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: r.pix[i+3]}
}

// Set implements draw.Image.
func (r *Raster) Set(x, y int, c color.Color) {
	r.FillRect(x, y, 1, 1, toRGBA(c))
}

// FillRect paints the w*h block at (x, y), clipped to the raster. It reports
// whether any pixel was written.
func (r *Raster) FillRect(x, y, w, h int, c color.RGBA) bool {
	rect := image.Rect(x, y, x+w, y+h).Intersect(r.Bounds())
	if rect.Empty() {
		return false
	}
	r.mu.Lock()
	fillRectRGBA(r.pix, r.W*4, rect, c)
	r.mu.Unlock()
	return true
}

// Fill paints the whole raster.
func (r *Raster) Fill(c color.RGBA) {
	r.FillRect(0, 0, r.W, r.H, c)
}

// CopyPixels copies the raw RGBA bytes into dst and returns the number of
// bytes copied.
func (r *Raster) CopyPixels(dst []byte) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return copy(dst, r.pix)
}

// Clone returns an independent copy.
func (r *Raster) Clone() *Raster {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return &Raster{W: r.W, H: r.H, pix: append([]uint8(nil), r.pix...)}
}

// Equal reports whether both rasters hold the same picture.
func (r *Raster) Equal(o *Raster) bool {
	if r == o {
		return true
	}
	if o == nil || r.W != o.W || r.H != o.H {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	o.mu.RLock()
	defer o.mu.RUnlock()
	return bytes.Equal(r.pix, o.pix)
}

// ToImage returns a copy of the raster as an *image.RGBA.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	r.CopyPixels(img.Pix)
	return img
}

// Resample returns a copy scaled to w*h. Viewers use it to keep the previous
// picture on screen after a resize, until a new render replaces it.
func (r *Raster) Resample(w, h int) *Raster {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	src := r.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst)
}
