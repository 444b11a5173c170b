package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/juggler/common"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
	"golang.org/x/image/font/basicfont"
)

type menuActions struct {
	Start   func()
	Restart func()
	Copy    func()
	CanCopy bool
}

// menuUI is the HUD drawn over the field: title and score at the top, and
// one centred panel per phase. Panels are rebuilt when the phase changes;
// the score label is updated in place.
type menuUI struct {
	ui      *ebitenui.UI
	root    *widget.Container
	face    ebtext.Face
	theme   *prefabs.ThemeSpec
	actions menuActions

	score *widget.Text
	shown component.Session
	built bool
}

func newMenuUI(theme *prefabs.ThemeSpec, actions menuActions) *menuUI {
	if theme == nil {
		theme = &prefabs.ThemeSpec{}
	}
	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	return &menuUI{
		ui:      &ebitenui.UI{Container: root},
		root:    root,
		face:    ebtext.NewGoXFace(basicfont.Face7x13),
		theme:   theme,
		actions: actions,
	}
}

func (m *menuUI) Update() {
	m.ui.Update()
}

func (m *menuUI) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

// SetTheme swaps the copy and colours and forces a rebuild.
func (m *menuUI) SetTheme(theme *prefabs.ThemeSpec) {
	if theme == nil {
		return
	}
	m.theme = theme
	m.built = false
}

// Sync brings the widgets in line with the session.
func (m *menuUI) Sync(s component.Session) {
	if m.built && s.Phase == m.shown.Phase {
		if s.Score != m.shown.Score && m.score != nil {
			m.score.Label = pointsLabel(s.Score)
		}
		m.shown = s
		return
	}
	m.shown = s
	m.built = true
	m.rebuild()
}

func (m *menuUI) rebuild() {
	m.root.RemoveChildren()
	m.root.AddChild(m.header())

	switch m.shown.Phase {
	case component.PhaseWaiting:
		m.root.AddChild(m.waitingPanel())
	case component.PhaseGameOver:
		m.root.AddChild(m.gameOverPanel())
	case component.PhasePlaying:
		if hint := m.theme.PlayingHint; hint != "" {
			m.root.AddChild(m.hintBar(hint))
		}
	}
}

func (m *menuUI) header() *widget.Container {
	panel := m.panel(m.themeColor(m.theme.Colors.Panel, color.NRGBA{A: 0xB3}), widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}, 4)

	accent := m.themeColor(m.theme.Colors.Accent, color.NRGBA{R: 0xFF, G: 0xD7, A: 0xFF})
	panel.AddChild(m.label(m.theme.Title, accent))
	if m.theme.Subtitle != "" {
		panel.AddChild(m.label(m.theme.Subtitle, m.textColor()))
	}
	if m.theme.ScoreHeading != "" {
		panel.AddChild(m.label(m.theme.ScoreHeading, m.textColor()))
	}
	m.score = m.label(pointsLabel(m.shown.Score), accent)
	panel.AddChild(m.score)
	return panel
}

func (m *menuUI) waitingPanel() *widget.Container {
	panel := m.centredPanel(m.themeColor(m.theme.Colors.Panel, color.NRGBA{A: 0xB3}))
	panel.AddChild(m.label(m.theme.ReadyHeading, m.themeColor(m.theme.Colors.Accent, color.White)))
	for _, line := range m.theme.Objectives {
		panel.AddChild(m.label(line, m.textColor()))
	}
	if m.theme.Tagline != "" {
		panel.AddChild(m.label(m.theme.Tagline, m.textColor()))
	}
	panel.AddChild(m.button(m.theme.StartLabel, m.actions.Start))
	return panel
}

func (m *menuUI) gameOverPanel() *widget.Container {
	panel := m.centredPanel(m.themeColor(m.theme.Colors.OverPanel, color.NRGBA{R: 0xD3, G: 0x2F, B: 0x2F, A: 0xE6}))
	panel.AddChild(m.label(m.theme.OverHeading, m.themeColor(m.theme.Colors.Accent, color.White)))
	panel.AddChild(m.label(m.theme.FinalPrefix+pointsLabel(m.shown.Score), m.textColor()))
	if verdict := m.theme.Verdict(m.shown.Score); verdict != "" {
		panel.AddChild(m.label(verdict, m.textColor()))
	}
	panel.AddChild(m.button(m.theme.RestartLabel, m.actions.Restart))
	if m.actions.CanCopy && m.theme.CopyLabel != "" {
		panel.AddChild(m.button(m.theme.CopyLabel, m.actions.Copy))
	}
	return panel
}

func (m *menuUI) hintBar(hint string) *widget.Container {
	bar := m.panel(m.themeColor(m.theme.Colors.Panel, color.NRGBA{A: 0xB3}), widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionEnd,
	}, 6)
	bar.AddChild(m.label(hint, m.textColor()))
	return bar
}

func (m *menuUI) centredPanel(bg color.Color) *widget.Container {
	return m.panel(bg, widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionCenter,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
	}, 10, widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/3))
}

func (m *menuUI) panel(bg color.Color, anchor widget.AnchorLayoutData, spacing int, opts ...widget.WidgetOpt) *widget.Container {
	opts = append(opts, widget.WidgetOpts.LayoutData(anchor))
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(bg)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(spacing),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(opts...),
	)
}

func (m *menuUI) label(s string, clr color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, &m.face, clr),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (m *menuUI) button(s string, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(m.themeColor(m.theme.Colors.Button, color.NRGBA{R: 0x4C, G: 0xAF, B: 0x50, A: 0xFF}))
	hover := imageui.NewNineSliceColor(m.themeColor(m.theme.Colors.ButtonHover, color.NRGBA{R: 0x45, G: 0xA0, B: 0x49, A: 0xFF}))
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Hover: hover, Pressed: hover}),
		widget.ButtonOpts.Text(s, &m.face, &widget.ButtonTextColor{Idle: m.textColor()}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(200, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			if onClick != nil {
				onClick()
			}
		}),
	)
}

func (m *menuUI) textColor() color.Color {
	return m.themeColor(m.theme.Colors.Text, color.White)
}

func (m *menuUI) themeColor(c *prefabs.YAMLColor, fallback color.Color) color.Color {
	return c.ColorOr(fallback)
}

// pointsLabel renders a score as "1 point" or "N points".
func pointsLabel(score int) string {
	if score == 1 {
		return "1 point"
	}
	return fmt.Sprintf("%d points", score)
}
