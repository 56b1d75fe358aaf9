package config

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where settings are looked up when no --config flag is given.
const DefaultPath = "heartbloom.yaml"

const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// RingSettings holds the text of one of the two rings.
type RingSettings struct {
	Text string `yaml:"text"`
}

// RingsSettings covers both rings and their shared palette.
type RingsSettings struct {
	Inner  RingSettings `yaml:"inner"`
	Outer  RingSettings `yaml:"outer"`
	Accent string       `yaml:"accent"`
	Base   string       `yaml:"base"`
}

// Settings is the presentation layer of the program. Simulation constants
// live in config.go and are not configurable.
type Settings struct {
	Title      string        `yaml:"title"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Seed       uint64        `yaml:"seed"`
	Verbose    bool          `yaml:"verbose"`
	Backend    string        `yaml:"backend"`
	Soundtrack string        `yaml:"soundtrack"`
	Rings      RingsSettings `yaml:"rings"`
}

// Default returns the settings used when no file is present.
func Default() Settings {
	return Settings{
		Title:   WindowTitle,
		Width:   WindowWidth,
		Height:  WindowHeight,
		Backend: BackendWindow,
		Rings: RingsSettings{
			Inner:  RingSettings{Text: "Em yêu anh • Em yêu anh •"},
			Outer:  RingSettings{Text: "Gửi cho crush để tỏ tình • Tokitoki.love •"},
			Accent: "#ff8fb3",
			Base:   "#ffffff",
		},
	}
}

// Load reads settings from path on top of Default. A missing file is only
// an error when the caller asked for it explicitly.
func Load(path string, required bool) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return s, nil
		}
		return s, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := s.decode(bytes.NewReader(data)); err != nil {
		return s, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return s, s.Validate()
}

func (s *Settings) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the settings that cannot be defaulted silently.
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", s.Width, s.Height)
	}
	switch s.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("unknown backend %q", s.Backend)
	}
	if s.Rings.Inner.Text == "" || s.Rings.Outer.Text == "" {
		return errors.New("ring text must not be empty")
	}
	if _, err := ParseColor(s.Rings.Accent); err != nil {
		return fmt.Errorf("rings.accent: %w", err)
	}
	if _, err := ParseColor(s.Rings.Base); err != nil {
		return fmt.Errorf("rings.base: %w", err)
	}
	return nil
}

// AccentColor and BaseColor are only valid after Validate succeeded.
func (s Settings) AccentColor() color.NRGBA {
	c, _ := ParseColor(s.Rings.Accent)
	return c
}

func (s Settings) BaseColor() color.NRGBA {
	c, _ := ParseColor(s.Rings.Base)
	return c
}

// ParseColor parses a "#rrggbb" string into an opaque colour.
func ParseColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
