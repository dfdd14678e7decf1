package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Upscale returns the raster enlarged by an integer factor with nearest
// neighbour sampling, keeping block edges sharp.
func Upscale(r *Raster, factor int) image.Image {
	src := r.ToImage()
	if factor <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.W*factor, r.H*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WritePNG encodes the raster, scaled by factor, as PNG.
func WritePNG(w io.Writer, r *Raster, factor int) error {
	if err := png.Encode(w, Upscale(r, factor)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the raster to path as PNG.
func SavePNG(path string, r *Raster, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePNG(f, r, factor); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteGIF encodes frames as a looping animation. delay is in 100ths of a
// second per frame.
func WriteGIF(w io.Writer, frames []*Raster, delay int, factor int) error {
	if len(frames) == 0 {
		return fmt.Errorf("encode gif: no frames")
	}
	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(frames)),
		Delay: make([]int, 0, len(frames)),
	}
	for _, fr := range frames {
		src := Upscale(fr, factor)
		p := image.NewPaletted(src.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, p.Bounds(), src, src.Bounds().Min)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delay)
	}
	if err := gif.EncodeAll(w, out); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// SaveGIF writes frames to path as an animated GIF.
func SaveGIF(path string, frames []*Raster, delay int, factor int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteGIF(f, frames, delay, factor); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
