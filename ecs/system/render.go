package system

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/juggler/common"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

const (
	patternSides  = 5
	gradientBand  = 2
	maxShadeRings = 48
)

// RenderStyle is the look of the field and the ball.
type RenderStyle struct {
	Sky       color.Color
	Grass     color.Color
	Line      color.Color
	LineWidth float32
	SkyStop   float64

	Highlight      color.Color
	Shade          color.Color
	Pattern        color.Color
	PatternWidth   float32
	PatternScale   float64
	HighlightShift cp.Vector
}

// StyleFromSpec reads the render style, filling gaps with the stock look.
func StyleFromSpec(spec *prefabs.GameSpec) RenderStyle {
	style := RenderStyle{
		Sky:            color.RGBA{R: 0x87, G: 0xCE, B: 0xEB, A: 0xFF},
		Grass:          color.RGBA{R: 0x22, G: 0x8B, B: 0x22, A: 0xFF},
		Line:           color.White,
		LineWidth:      3,
		SkyStop:        0.7,
		Highlight:      color.White,
		Shade:          color.Black,
		Pattern:        color.Black,
		PatternWidth:   2,
		PatternScale:   0.3,
		HighlightShift: cp.Vector{X: -10, Y: -10},
	}
	if spec == nil {
		return style
	}
	f, b := spec.Field, spec.Ball
	style.Sky = f.SkyColor.ColorOr(style.Sky)
	style.Grass = f.GrassColor.ColorOr(style.Grass)
	style.Line = f.LineColor.ColorOr(style.Line)
	if f.LineWidth > 0 {
		style.LineWidth = f.LineWidth
	}
	if f.SkyStop > 0 {
		style.SkyStop = f.SkyStop
	}
	style.Highlight = b.HighlightColor.ColorOr(style.Highlight)
	style.Shade = b.ShadeColor.ColorOr(style.Shade)
	style.Pattern = b.PatternColor.ColorOr(style.Pattern)
	if b.PatternWidth > 0 {
		style.PatternWidth = b.PatternWidth
	}
	if b.PatternScale > 0 {
		style.PatternScale = b.PatternScale
	}
	if b.HighlightX != 0 || b.HighlightY != 0 {
		style.HighlightShift = cp.Vector{X: b.HighlightX, Y: b.HighlightY}
	}
	return style
}

// RenderSystem paints the field and balls. Every Draw clears the target
// first, so calling it repeatedly never stacks layers.
type RenderSystem struct {
	style RenderStyle
}

func NewRenderSystem(style RenderStyle) *RenderSystem {
	return &RenderSystem{style: style}
}

func (r *RenderSystem) SetStyle(style RenderStyle) {
	r.style = style
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || screen == nil || w == nil {
		return
	}
	fieldEnt, ok := ecs.First(w, component.FieldComponent.Kind())
	if !ok {
		return
	}
	field, ok := ecs.Get(w, fieldEnt, component.FieldComponent.Kind())
	if !ok {
		return
	}

	screen.Clear()
	r.drawField(screen, *field)
	ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, ball *component.Ball) {
		r.drawBall(screen, *ball)
	})
}

func (r *RenderSystem) drawField(screen *ebiten.Image, field component.Field) {
	s := r.style
	width := float32(field.Width)

	for _, band := range SkyBands(field, s.SkyStop, gradientBand) {
		clr := common.LerpColor(s.Sky, s.Grass, band.T)
		vector.DrawFilledRect(screen, 0, float32(band.Top), width, float32(band.Height), clr, false)
	}

	vector.DrawFilledRect(screen, 0, float32(field.GroundY), width, float32(field.Height-field.GroundY), s.Grass, false)
	ground := float32(field.GroundY)
	vector.StrokeLine(screen, 0, ground, width, ground, s.LineWidth, s.Line, true)
}

func (r *RenderSystem) drawBall(screen *ebiten.Image, ball component.Ball) {
	s := r.style
	for _, ring := range ShadeRings(ball, s.HighlightShift, maxShadeRings) {
		clr := common.LerpColor(s.Highlight, s.Shade, ring.T)
		vector.DrawFilledCircle(screen, float32(ring.Center.X), float32(ring.Center.Y), float32(ring.Radius), clr, true)
	}

	for _, seg := range PatternSegments(ball, s.PatternScale) {
		vector.StrokeLine(screen,
			float32(seg[0].X), float32(seg[0].Y),
			float32(seg[1].X), float32(seg[1].Y),
			s.PatternWidth, s.Pattern, true)
	}
}

// SkyBand is one horizontal strip of the sky gradient.
type SkyBand struct {
	Top    float64
	Height float64
	// T is the blend towards grass at the strip's top edge.
	T float64
}

// SkyBands splits the area above the ground line into a solid sky block
// down to stop*height followed by strips blending towards the grass colour,
// which the gradient reaches at the bottom of the field.
func SkyBands(field component.Field, stop, step float64) []SkyBand {
	if step <= 0 {
		step = 1
	}
	solid := math.Min(field.Height*stop, field.GroundY)
	bands := []SkyBand{{Top: 0, Height: solid, T: 0}}
	span := field.Height - field.Height*stop
	for y := solid; y < field.GroundY; y += step {
		h := math.Min(step, field.GroundY-y)
		t := 0.0
		if span > 0 {
			t = (y - field.Height*stop) / span
		}
		bands = append(bands, SkyBand{Top: y, Height: h, T: t})
	}
	return bands
}

// ShadeRing is one disc of the radial ball shading.
type ShadeRing struct {
	Center cp.Vector
	Radius float64
	// T is the blend from highlight (0) to shade (1).
	T float64
}

// ShadeRings approximates a radial gradient running from the highlight
// point (ball centre shifted by shift) out to the ball's rim. Rings are
// ordered outermost first so later discs paint over earlier ones.
func ShadeRings(ball component.Ball, shift cp.Vector, count int) []ShadeRing {
	if ball.Radius <= 0 {
		return nil
	}
	if count <= 0 {
		count = 1
	}
	center := cp.Vector{X: ball.X, Y: ball.Y}
	highlight := center.Add(shift)
	rings := make([]ShadeRing, 0, count)
	for i := count; i > 0; i-- {
		t := float64(i) / float64(count)
		rings = append(rings, ShadeRing{
			Center: highlight.Lerp(center, t),
			Radius: ball.Radius * t,
			T:      t,
		})
	}
	return rings
}

// PatternSegments returns the five decorative strokes of the ball: chords
// between consecutive points of a pentagon of radius scale*Radius.
func PatternSegments(ball component.Ball, scale float64) [patternSides][2]cp.Vector {
	var out [patternSides][2]cp.Vector
	r := ball.Radius * scale
	step := 2 * math.Pi / patternSides
	for i := 0; i < patternSides; i++ {
		a := float64(i) * step
		b := a + step
		out[i] = [2]cp.Vector{
			{X: ball.X + math.Cos(a)*r, Y: ball.Y + math.Sin(a)*r},
			{X: ball.X + math.Cos(b)*r, Y: ball.Y + math.Sin(b)*r},
		}
	}
	return out
}
