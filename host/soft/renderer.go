package soft

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/fisheye"
	"github.com/gogpu/fisheye/host"
)

// MaxSurfaceSize is the largest offscreen edge the renderer allocates.
const MaxSurfaceSize = 8192

// surface is a Pixmap registered as a texture.
type surface struct {
	*Pixmap
	id host.TextureID
}

func (s *surface) Texture() host.TextureID { return s.id }

// Renderer implements host.Renderer on pixmaps. It renders the scene by
// scaling a backdrop image into the surface and stamping a caption naming
// the active camera.
type Renderer struct {
	scene    *Scene
	backdrop image.Image
	face     font.Face

	textures map[host.TextureID]*surface
	nextTex  host.TextureID

	allocErr  error
	renderErr error
	renders   int
	lastView  [16]float32
	lastProj  [16]float32
}

// NewRenderer creates a renderer for scene. A nil backdrop selects
// Checkerboard.
func NewRenderer(scene *Scene, backdrop image.Image) *Renderer {
	if backdrop == nil {
		backdrop = Checkerboard(512, 288, 32)
	}
	return &Renderer{
		scene:    scene,
		backdrop: backdrop,
		textures: map[host.TextureID]*surface{},
	}
}

// SetAllocationError makes every following AllocateSurface fail with err.
// Pass nil to allocate normally again.
func (r *Renderer) SetAllocationError(err error) {
	r.allocErr = err
}

// SetRenderError makes every following RenderSceneToSurface fail with err.
func (r *Renderer) SetRenderError(err error) {
	r.renderErr = err
}

// Renders returns the number of successful scene renders.
func (r *Renderer) Renders() int {
	return r.renders
}

// LastMatrices returns the view and projection of the last render.
func (r *Renderer) LastMatrices() (view, proj [16]float32) {
	return r.lastView, r.lastProj
}

// Live returns the number of allocated surfaces.
func (r *Renderer) Live() int {
	return len(r.textures)
}

// Texture returns the pixmap behind a texture handle.
func (r *Renderer) Texture(id host.TextureID) (*Pixmap, bool) {
	s, ok := r.textures[id]
	if !ok {
		return nil, false
	}
	return s.Pixmap, true
}

// AllocateSurface implements host.Renderer.
func (r *Renderer) AllocateSurface(desc host.SurfaceDescriptor) (host.Surface, error) {
	if r.allocErr != nil {
		return nil, r.allocErr
	}
	w, h := int(desc.Size.Width), int(desc.Size.Height)
	if w <= 0 || h <= 0 || w > MaxSurfaceSize || h > MaxSurfaceSize {
		return nil, fmt.Errorf("soft: surface %q: invalid size %dx%d", desc.Label, w, h)
	}
	if desc.Format != gputypes.TextureFormatRGBA8Unorm {
		return nil, fmt.Errorf("soft: surface %q: unsupported format %v", desc.Label, desc.Format)
	}
	if desc.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		return nil, fmt.Errorf("soft: surface %q: missing render attachment usage", desc.Label)
	}

	r.nextTex++
	s := &surface{Pixmap: NewPixmap(w, h), id: r.nextTex}
	r.textures[s.id] = s
	fisheye.Logger().Debug("soft: surface allocated", "label", desc.Label, "texture", s.id, "width", w, "height", h)
	return s, nil
}

// ReleaseSurface implements host.Renderer.
func (r *Renderer) ReleaseSurface(hs host.Surface) {
	if hs == nil {
		return
	}
	delete(r.textures, hs.Texture())
}

// RenderSceneToSurface implements host.Renderer.
func (r *Renderer) RenderSceneToSurface(hs host.Surface, view, proj [16]float32) error {
	if r.renderErr != nil {
		return r.renderErr
	}
	s, ok := r.textures[hs.Texture()]
	if !ok {
		return fmt.Errorf("soft: render to released surface %d", hs.Texture())
	}

	xdraw.ApproxBiLinear.Scale(s.Pixmap, s.Bounds(), r.backdrop, r.backdrop.Bounds(), xdraw.Src, nil)
	if cam, ok := r.scene.ActiveCamera(); ok {
		if err := r.caption(s.Pixmap, cam.Name); err != nil {
			return err
		}
	}

	r.lastView, r.lastProj = view, proj
	r.renders++
	return nil
}

// caption draws label in the top-left corner.
func (r *Renderer) caption(dst *Pixmap, label string) error {
	if label == "" {
		return nil
	}
	if r.face == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			return fmt.Errorf("soft: parse caption font: %w", err)
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    12,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return fmt.Errorf("soft: caption face: %w", err)
		}
		r.face = face
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: r.face,
		Dot:  fixed.P(4, 14),
	}
	d.DrawString(label)
	return nil
}

// Checkerboard returns a two-tone test pattern with a red centre mark,
// useful as a backdrop when no scene image is available.
func Checkerboard(width, height, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	cell = max(cell, 1)
	light := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.RGBA{R: 60, G: 60, B: 70, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := dark
			if (x/cell+y/cell)%2 == 0 {
				c = light
			}
			img.SetRGBA(x, y, c)
		}
	}
	cx, cy := width/2, height/2
	for d := -cell / 2; d <= cell/2; d++ {
		img.SetRGBA(cx+d, cy, color.RGBA{R: 255, A: 255})
		img.SetRGBA(cx, cy+d, color.RGBA{R: 255, A: 255})
	}
	return img
}

var _ host.Renderer = (*Renderer)(nil)
