package fisheye

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Sampler returns the colour of a texture at normalized coordinates.
// t = 0 is the bottom row, matching GPU texture space.
type Sampler interface {
	Sample(s, t float64) color.RGBA
}

// ImageSampler samples an image.Image bilinearly in texture space.
type ImageSampler struct {
	Image image.Image
}

// Sample implements Sampler. Coordinates are clamped to the edge texels.
func (is ImageSampler) Sample(s, t float64) color.RGBA {
	b := is.Image.Bounds()
	if b.Empty() {
		return color.RGBA{}
	}
	// Texel centres sit at half-integer positions; row 0 of the image is t = 1.
	x := s*float64(b.Dx()) - 0.5
	y := (1-t)*float64(b.Dy()) - 0.5

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	c00 := texel(is.Image, b, x0, y0)
	c10 := texel(is.Image, b, x0+1, y0)
	c01 := texel(is.Image, b, x0, y0+1)
	c11 := texel(is.Image, b, x0+1, y0+1)

	var out [4]float64
	for i := range out {
		top := c00[i]*(1-fx) + c10[i]*fx
		bottom := c01[i]*(1-fx) + c11[i]*fx
		out[i] = top*(1-fy) + bottom*fy
	}
	return color.RGBA{
		R: uint8(math.Round(out[0])),
		G: uint8(math.Round(out[1])),
		B: uint8(math.Round(out[2])),
		A: uint8(math.Round(out[3])),
	}
}

func texel(img image.Image, b image.Rectangle, x, y int) [4]float64 {
	x = min(max(x, 0), b.Dx()-1) + b.Min.X
	y = min(max(y, 0), b.Dy()-1) + b.Min.Y
	c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	return [4]float64{float64(c.R), float64(c.G), float64(c.B), float64(c.A)}
}

// RemapPixel resamples one fisheye pixel at texture coordinate (s, t) from a
// perspective source rendered with horizontal field of view srcFOV.
// ok is false for pixels outside the image circle or outside the source;
// their colour is transparent.
func RemapPixel(src Sampler, s, t float64, p Params, srcFOV float64) (c color.RGBA, ok bool) {
	u, v := SensorPoint(s, t, p)
	phi, theta, ok := EquisolidAngles(u, v, p.Lens, p.FOV)
	if !ok {
		return color.RGBA{}, false
	}
	x, y, z := Direction(phi, theta)
	ss, tt, ok := ProjectPerspective(x, y, z, srcFOV, p.Aspect())
	if !ok {
		return color.RGBA{}, false
	}
	return src.Sample(ss, tt), true
}

// Remap fills dst with the equisolid fisheye view of the perspective image
// src. It is the CPU counterpart of the shader's remap entry point and can be
// used without any host renderer.
func Remap(dst draw.Image, src image.Image, p Params, srcFOV float64) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	sampler := ImageSampler{Image: src}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		t := 1 - (float64(y-b.Min.Y)+0.5)/h
		for x := b.Min.X; x < b.Max.X; x++ {
			s := (float64(x-b.Min.X) + 0.5) / w
			c, _ := RemapPixel(sampler, s, t, p, srcFOV)
			dst.Set(x, y, c)
		}
	}
}
