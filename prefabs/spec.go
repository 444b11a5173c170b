package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	GameSpecFile = "juggling.yaml"

	ThemeChampionship = "championship"
	ThemeClassic      = "classic"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// GameSpec is the tuning of one juggling game.
type GameSpec struct {
	Name     string      `yaml:"name"`
	BlockID  string      `yaml:"block_id"`
	GameType string      `yaml:"game_type"`
	Field    FieldSpec   `yaml:"field"`
	Ball     BallSpec    `yaml:"ball"`
	Physics  PhysicsSpec `yaml:"physics"`
}

type FieldSpec struct {
	Width        float64    `yaml:"width"`
	Height       float64    `yaml:"height"`
	GroundOffset float64    `yaml:"ground_offset"`
	SkyStop      float64    `yaml:"sky_stop"`
	LineWidth    float32    `yaml:"line_width"`
	SkyColor     *YAMLColor `yaml:"sky_color"`
	GrassColor   *YAMLColor `yaml:"grass_color"`
	LineColor    *YAMLColor `yaml:"line_color"`
}

// GroundY is the height of the ground line measured from the top.
func (f FieldSpec) GroundY() float64 {
	return f.Height - f.GroundOffset
}

type BallSpec struct {
	Radius         float64    `yaml:"radius"`
	SpawnY         float64    `yaml:"spawn_y"`
	LaunchVelocity float64    `yaml:"launch_velocity"`
	HighlightX     float64    `yaml:"highlight_x"`
	HighlightY     float64    `yaml:"highlight_y"`
	PatternScale   float64    `yaml:"pattern_scale"`
	PatternWidth   float32    `yaml:"pattern_width"`
	HighlightColor *YAMLColor `yaml:"highlight_color"`
	ShadeColor     *YAMLColor `yaml:"shade_color"`
	PatternColor   *YAMLColor `yaml:"pattern_color"`
}

type PhysicsSpec struct {
	Gravity   float64 `yaml:"gravity"`
	JumpForce float64 `yaml:"jump_force"`
	HitMargin float64 `yaml:"hit_margin"`
}

func LoadGameSpec() (*GameSpec, error) {
	spec, err := LoadSpec[GameSpec](GameSpecFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: validate %s: %w", GameSpecFile, err)
	}
	return &spec, nil
}

// Validate rejects specs the physics cannot run with.
func (s *GameSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", ErrInvalidSpec)
	}
	switch {
	case strings.TrimSpace(s.BlockID) == "":
		return fmt.Errorf("%w: block_id is empty", ErrInvalidSpec)
	case s.Field.Width <= 0 || s.Field.Height <= 0:
		return fmt.Errorf("%w: field size %vx%v", ErrInvalidSpec, s.Field.Width, s.Field.Height)
	case s.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius %v", ErrInvalidSpec, s.Ball.Radius)
	case s.Field.Width < 2*s.Ball.Radius:
		return fmt.Errorf("%w: field width %v narrower than ball", ErrInvalidSpec, s.Field.Width)
	case s.Field.GroundY() <= 0 || s.Field.GroundY() > s.Field.Height:
		return fmt.Errorf("%w: ground line %v outside field", ErrInvalidSpec, s.Field.GroundY())
	case s.Field.SkyStop < 0 || s.Field.SkyStop > 1:
		return fmt.Errorf("%w: sky_stop %v not in [0,1]", ErrInvalidSpec, s.Field.SkyStop)
	case s.Physics.HitMargin < 0:
		return fmt.Errorf("%w: hit_margin %v", ErrInvalidSpec, s.Physics.HitMargin)
	}
	return nil
}

// ThemeSpec is the presentation of one game variant.
type ThemeSpec struct {
	Name         string        `yaml:"name"`
	WindowTitle  string        `yaml:"window_title"`
	Title        string        `yaml:"title"`
	Subtitle     string        `yaml:"subtitle"`
	ScoreHeading string        `yaml:"score_heading"`
	ReadyHeading string        `yaml:"ready_heading"`
	Objectives   []string      `yaml:"objectives"`
	Tagline      string        `yaml:"tagline"`
	StartLabel   string        `yaml:"start_label"`
	OverHeading  string        `yaml:"over_heading"`
	FinalPrefix  string        `yaml:"final_prefix"`
	RestartLabel string        `yaml:"restart_label"`
	CopyLabel    string        `yaml:"copy_label"`
	PlayingHint  string        `yaml:"playing_hint"`
	Verdicts     []VerdictSpec `yaml:"verdicts"`
	Colors       ThemeColors   `yaml:"colors"`
}

// VerdictSpec is the game-over commentary for scores of at least Min.
type VerdictSpec struct {
	Min  int    `yaml:"min"`
	Text string `yaml:"text"`
}

type ThemeColors struct {
	Panel       *YAMLColor `yaml:"panel"`
	Accent      *YAMLColor `yaml:"accent"`
	Text        *YAMLColor `yaml:"text"`
	Button      *YAMLColor `yaml:"button"`
	ButtonHover *YAMLColor `yaml:"button_hover"`
	OverPanel   *YAMLColor `yaml:"over_panel"`
}

func ThemeFile(name string) string {
	return "theme_" + name + ".yaml"
}

func LoadThemeSpec(name string) (*ThemeSpec, error) {
	if name == "" {
		name = ThemeChampionship
	}
	spec, err := LoadSpec[ThemeSpec](ThemeFile(name))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(spec.Verdicts, func(i, j int) bool {
		return spec.Verdicts[i].Min < spec.Verdicts[j].Min
	})
	return &spec, nil
}

// Verdict returns the commentary of the highest tier reached by score.
func (t *ThemeSpec) Verdict(score int) string {
	if t == nil {
		return ""
	}
	out := ""
	for _, v := range t.Verdicts {
		if score >= v.Min {
			out = v.Text
		}
	}
	return out
}

type YAMLColor struct {
	color.Color
}

// ColorOr returns the parsed colour or fallback when the key was absent.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
