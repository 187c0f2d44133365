package procgen

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"scene-editor/internal/entity"
	"scene-editor/internal/geom"
)

// ErrNotImage is returned by FromImage when the input is not a recognised image format.
var ErrNotImage = errors.New("procgen: not an image")

// TextureSize is the edge length of the raster every image is resampled to.
const TextureSize = 128

// Brightness thresholds on the 0..255 scale.
const (
	BrightAbove = 200
	DarkBelow   = 80
)

// FromImage decodes an image and builds a textured entity from it: a sphere for bright images,
// a cube for dark ones and a double-sided plane otherwise. The resampled raster becomes the
// texture.
func FromImage(r io.Reader) (entity.Entity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("procgen: read image: %w", err)
	}
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("procgen: decode image: %w", err)
	}
	return FromRaster(Downsample(img)), nil
}

// Downsample resamples img to TextureSize×TextureSize.
func Downsample(img image.Image) *image.RGBA {
	return transform.Resize(img, TextureSize, TextureSize, transform.Linear)
}

// FromRaster classifies an already resampled raster.
func FromRaster(raster *image.RGBA) entity.Entity {
	var (
		name  string
		kind  entity.Kind
		shape geom.Shape
	)
	b := Brightness(raster)
	switch {
	case b > BrightAbove:
		name, kind, shape = "AI_Image_Sphere", entity.KindImageSphere, geom.Sphere(0.8, 32, 24)
	case b < DarkBelow:
		name, kind, shape = "AI_Image_Box", entity.KindImageBox, geom.Box(1.2, 1.2, 1.2)
	default:
		name, kind, shape = "AI_Image_Plane", entity.KindImagePlane, geom.Plane(2, 2)
	}
	mtl := entity.NewMaterial(entity.Hex(0xffffff))
	mtl.Texture = &entity.Texture{Image: raster}
	mtl.DoubleSided = shape.Kind == geom.ShapePlane
	return entity.NewPrimitive(name, kind, shape, mtl)
}

// Brightness is the mean of the rounded per-channel means of img, on the 0..255 scale.
// An empty image has brightness 0.
func Brightness(img *image.RGBA) float64 {
	var r, g, b, n float64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := img.PixOffset(x, y)
			r += float64(img.Pix[i])
			g += float64(img.Pix[i+1])
			b += float64(img.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return (math.Round(r/n) + math.Round(g/n) + math.Round(b/n)) / 3
}
