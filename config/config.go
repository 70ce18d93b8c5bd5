// Package config resolves clockgrid settings
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// an optional .env file, then CLOCKGRID_* environment variables. Command-line
// flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "CLOCKGRID_"

// Accepted preview date layouts, tried in order
var previewLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

var (
	ErrInvalidSetting = errors.New("invalid setting")
	ErrPreviewDate    = errors.New("invalid preview date")
)

// Settings consumed by the animation, renderers and audio
type Settings struct {
	// Radius is half a clock's width in snapshot pixels
	Radius float64 `yaml:"radius"`
	// Speedup dilates time; 1 is real time
	Speedup     float64 `yaml:"speedup"`
	FadeSeconds float64 `yaml:"fade_seconds"`
	// PreviewDate is the instant drawn in snapshot mode, in local time
	PreviewDate string `yaml:"preview_date"`
	FPS         int    `yaml:"fps"`

	Thumbnail ThumbnailSettings `yaml:"thumbnail"`
	Audio     AudioSettings     `yaml:"audio"`
	Colors    ColorSettings     `yaml:"colors"`
}

// ThumbnailSettings bound the snapshot image
type ThumbnailSettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AudioSettings control the minute chime
type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0-1.0
}

// ColorSettings are hex colors, e.g. "#333333"
type ColorSettings struct {
	Hand       string `yaml:"hand"`
	Ring       string `yaml:"ring"`
	Background string `yaml:"background"`
}

// Default returns the built-in settings
func Default() *Settings {
	return &Settings{
		Radius:      30,
		Speedup:     1,
		FadeSeconds: 4,
		PreviewDate: "2020-01-01T12:24",
		FPS:         60,
		Thumbnail: ThumbnailSettings{
			Width:  640,
			Height: 400,
		},
		Audio: AudioSettings{
			Enabled: false,
			Volume:  0.5,
		},
		Colors: ColorSettings{
			Hand:       "#333333",
			Ring:       "#eeeeee",
			Background: "#ffffff",
		},
	}
}

// Load resolves settings from defaults, the YAML file at path and the .env
// file at envPath; either path may be empty, and missing files are skipped
func Load(path, envPath string) (*Settings, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envPath, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s *Settings) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, s); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides settings from CLOCKGRID_* variables
func (s *Settings) applyEnv() error {
	floats := map[string]*float64{
		"RADIUS":       &s.Radius,
		"SPEEDUP":      &s.Speedup,
		"FADE_SECONDS": &s.FadeSeconds,
	}
	for key, dst := range floats {
		if v, ok := lookupEnv(key); ok {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalidSetting, EnvPrefix, key, v)
			}
			*dst = f
		}
	}

	ints := map[string]*int{
		"FPS":              &s.FPS,
		"THUMBNAIL_WIDTH":  &s.Thumbnail.Width,
		"THUMBNAIL_HEIGHT": &s.Thumbnail.Height,
	}
	for key, dst := range ints {
		if v, ok := lookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s=%q", ErrInvalidSetting, EnvPrefix, key, v)
			}
			*dst = n
		}
	}

	strs := map[string]*string{
		"PREVIEW_DATE":     &s.PreviewDate,
		"COLOR_HAND":       &s.Colors.Hand,
		"COLOR_RING":       &s.Colors.Ring,
		"COLOR_BACKGROUND": &s.Colors.Background,
	}
	for key, dst := range strs {
		if v, ok := lookupEnv(key); ok {
			*dst = v
		}
	}

	if v, ok := lookupEnv("AUDIO_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sAUDIO_ENABLED=%q", ErrInvalidSetting, EnvPrefix, v)
		}
		s.Audio.Enabled = b
	}

	// Volume as a 0-100 percentage, clamped
	if v, ok := lookupEnv("AUDIO_VOLUME"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sAUDIO_VOLUME=%q", ErrInvalidSetting, EnvPrefix, v)
		}
		s.Audio.Volume = min(max(float64(n)/100, 0), 1)
	}

	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

// Validate rejects settings the animation cannot run with
func (s *Settings) Validate() error {
	if s.Radius <= 0 {
		return fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidSetting, s.Radius)
	}
	if s.Speedup <= 0 {
		return fmt.Errorf("%w: speedup must be positive, got %v", ErrInvalidSetting, s.Speedup)
	}
	if s.FadeSeconds < 0 {
		return fmt.Errorf("%w: fade_seconds must not be negative, got %v", ErrInvalidSetting, s.FadeSeconds)
	}
	if s.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidSetting, s.FPS)
	}
	if s.Thumbnail.Width <= 0 || s.Thumbnail.Height <= 0 {
		return fmt.Errorf("%w: thumbnail must be positive, got %dx%d",
			ErrInvalidSetting, s.Thumbnail.Width, s.Thumbnail.Height)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume must be within 0-1, got %v", ErrInvalidSetting, s.Audio.Volume)
	}
	for name, hex := range map[string]string{
		"hand":       s.Colors.Hand,
		"ring":       s.Colors.Ring,
		"background": s.Colors.Background,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: color %s %q", ErrInvalidSetting, name, hex)
		}
	}
	if _, err := s.Preview(); err != nil {
		return err
	}
	return nil
}

// Preview parses PreviewDate in the local time zone
func (s *Settings) Preview() (time.Time, error) {
	for _, layout := range previewLayouts {
		if t, err := time.ParseInLocation(layout, s.PreviewDate, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrPreviewDate, s.PreviewDate)
}

// FrameInterval is the consumer's pacing between frames
func (s *Settings) FrameInterval() time.Duration {
	return time.Second / time.Duration(s.FPS)
}
