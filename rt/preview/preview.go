// Package preview rasterizes registered gizmo visuals into an image, for
// snapshots and debugging without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gekko3d/gizmo/rt/core"
	"github.com/gekko3d/gizmo/rt/scene"
)

// Marker is an extra point drawn on top of the visuals, e.g. the target.
type Marker struct {
	Position mgl64.Vec3
	Radius   float64 // pixels
	Color    [4]float32
	Text     string
}

type Renderer struct {
	Camera     *core.CameraState
	Background color.Color
	Face       font.Face

	// LabelHandles writes the pick id next to every arrow tip.
	LabelHandles bool

	// MinLineWidth is the thinnest stroke in pixels.
	MinLineWidth float64
}

func New(camera *core.CameraState) *Renderer {
	return &Renderer{
		Camera:       camera,
		Background:   color.RGBA{R: 24, G: 24, B: 28, A: 255},
		Face:         basicfont.Face7x13,
		LabelHandles: true,
		MinLineWidth: 3,
	}
}

func (r *Renderer) Render(visuals []*scene.Visual, markers ...Marker) *image.RGBA {
	w, h := r.Camera.Width, r.Camera.Height
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	// translucent spheres first, arrows last so they stay on top of rings
	ordered := slices.Clone(visuals)
	slices.SortStableFunc(ordered, func(a, b *scene.Visual) int {
		return drawRank(a.Shape.Type) - drawRank(b.Shape.Type)
	})

	for _, v := range ordered {
		if !v.Show {
			continue
		}
		switch v.Shape.Type {
		case core.ShapeSphere:
			r.drawSphere(img, v)
		case core.ShapeRing:
			r.drawRing(img, v)
		case core.ShapeArrow:
			r.drawArrow(img, v)
		}
	}

	for _, m := range markers {
		p, ok := r.Camera.ScreenPoint(m.Position)
		if !ok {
			continue
		}
		r.fillPolygon(img, circle(p, m.Radius, 24), m.Color)
		if m.Text != "" {
			r.label(img, p.Add(mgl64.Vec2{m.Radius + 3, 4}), m.Text, m.Color)
		}
	}
	return img
}

func drawRank(t core.ShapeType) int {
	switch t {
	case core.ShapeSphere:
		return 0
	case core.ShapeRing:
		return 1
	}
	return 2
}

func (r *Renderer) drawArrow(img *image.RGBA, v *scene.Visual) {
	world := v.World()
	half := v.Shape.Length / 2
	base := mgl64.Vec3{0, 0, half}
	tip := mgl64.Vec3{0, 0, half + v.Shape.HeadLength}

	r.strokeLocal(img, world, []mgl64.Vec3{{0, 0, -half}, base}, r.MinLineWidth, v.Color)

	hw := v.Shape.HeadWidth / 2
	for _, side := range []mgl64.Vec3{{hw, 0, 0}, {0, hw, 0}} {
		pts, ok := r.project(world, []mgl64.Vec3{base.Add(side), tip, base.Sub(side)})
		if ok {
			r.fillPolygon(img, pts, v.Color)
		}
	}

	if r.LabelHandles {
		if p, ok := r.project(world, []mgl64.Vec3{tip}); ok {
			r.label(img, p[0].Add(mgl64.Vec2{4, -4}), v.PickID, v.Color)
		}
	}
}

func (r *Renderer) drawRing(img *image.RGBA, v *scene.Visual) {
	width := math.Max(r.MinLineWidth, v.Shape.LineWidth/4)
	r.strokeLocal(img, v.World(), v.Shape.Points, width, v.Color)
}

func (r *Renderer) drawSphere(img *image.RGBA, v *scene.Visual) {
	world := v.World()
	centre := world.Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	edge := centre.Add(r.Camera.GetRight().Mul(v.Shape.Radius))
	c, ok1 := r.Camera.ScreenPoint(centre)
	e, ok2 := r.Camera.ScreenPoint(edge)
	if !ok1 || !ok2 {
		return
	}
	r.fillPolygon(img, circle(c, e.Sub(c).Len(), 48), v.Color)
}

// strokeLocal draws the polyline pts, given in the local space of world.
// Segments with an end behind the camera are dropped.
func (r *Renderer) strokeLocal(img *image.RGBA, world mgl64.Mat4, pts []mgl64.Vec3, width float64, c [4]float32) {
	for i := 1; i < len(pts); i++ {
		seg, ok := r.project(world, pts[i-1:i+1])
		if !ok {
			continue
		}
		r.fillPolygon(img, thickSegment(seg[0], seg[1], width/2), c)
	}
}

func (r *Renderer) project(world mgl64.Mat4, local []mgl64.Vec3) ([]mgl64.Vec2, bool) {
	out := make([]mgl64.Vec2, len(local))
	for i, p := range local {
		wp := world.Mul4x1(p.Vec4(1)).Vec3()
		sp, ok := r.Camera.ScreenPoint(wp)
		if !ok {
			return nil, false
		}
		out[i] = sp
	}
	return out, true
}

func (r *Renderer) fillPolygon(img *image.RGBA, pts []mgl64.Vec2, c [4]float32) {
	if len(pts) < 3 {
		return
	}
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(pts[0].X()), float32(pts[0].Y()))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X()), float32(p.Y()))
	}
	z.ClosePath()
	z.Draw(img, b, image.NewUniform(toNRGBA(c)), image.Point{})
}

func (r *Renderer) label(img *image.RGBA, at mgl64.Vec2, text string, c [4]float32) {
	if r.Face == nil || text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(toNRGBA(c)),
		Face: r.Face,
		Dot:  fixed.P(int(at.X()), int(at.Y())),
	}
	d.DrawString(text)
}

// thickSegment returns the quad covering a..b widened by half on each side.
func thickSegment(a, b mgl64.Vec2, half float64) []mgl64.Vec2 {
	d := b.Sub(a)
	if d.Len() < 1e-9 {
		return circle(a, half, 8)
	}
	n := mgl64.Vec2{-d.Y(), d.X()}.Normalize().Mul(half)
	return []mgl64.Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

func circle(c mgl64.Vec2, radius float64, segments int) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, segments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts[i] = c.Add(mgl64.Vec2{radius * math.Cos(a), radius * math.Sin(a)})
	}
	return pts
}

func toNRGBA(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(math.Round(mgl64.Clamp(float64(v), 0, 1) * 255))
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot %s: %w", path, err)
	}
	return f.Close()
}
