// Package config loads game settings from defaults, an optional TOML file,
// an optional .env file and CUPCAKE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/phanxgames/cupcake/logging"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "CUPCAKE_"

// Config is the full set of game settings.
type Config struct {
	Window   WindowConfig   `toml:"window" envPrefix:"WINDOW_"`
	Assets   AssetsConfig   `toml:"assets" envPrefix:"ASSETS_"`
	Audio    AudioConfig    `toml:"audio" envPrefix:"AUDIO_"`
	Gameplay GameplayConfig `toml:"gameplay" envPrefix:"GAMEPLAY_"`
	Log      LogConfig      `toml:"log" envPrefix:"LOG_"`
	Debug    DebugConfig    `toml:"debug" envPrefix:"DEBUG_"`
}

type WindowConfig struct {
	Title  string  `toml:"title" env:"TITLE"`
	Width  int     `toml:"width" env:"WIDTH"`
	Height int     `toml:"height" env:"HEIGHT"`
	Scale  float64 `toml:"scale" env:"SCALE"`
	// ShowFPS adds the scene FPS widget.
	ShowFPS bool `toml:"show_fps" env:"SHOW_FPS"`
}

type AssetsConfig struct {
	// Dir holds the PNG and WAV files. Missing files fall back to
	// placeholders, so an empty or absent directory is valid.
	Dir string `toml:"dir" env:"DIR"`
}

type AudioConfig struct {
	Enabled       bool    `toml:"enabled" env:"ENABLED"`
	SampleRate    int     `toml:"sample_rate" env:"SAMPLE_RATE"`
	MusicVolume   float64 `toml:"music_volume" env:"MUSIC_VOLUME"`
	SuccessVolume float64 `toml:"success_volume" env:"SUCCESS_VOLUME"`
	FailVolume    float64 `toml:"fail_volume" env:"FAIL_VOLUME"`
	PlaceVolume   float64 `toml:"place_volume" env:"PLACE_VOLUME"`
}

type GameplayConfig struct {
	BaselineScore int     `toml:"baseline_score" env:"BASELINE_SCORE"`
	PointValue    int     `toml:"point_value" env:"POINT_VALUE"`
	Tolerance     float64 `toml:"tolerance" env:"TOLERANCE"`
	// GoalScore switches the banner to its success text.
	GoalScore int    `toml:"goal_score" env:"GOAL_SCORE"`
	StoreURL  string `toml:"store_url" env:"STORE_URL"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Pretty bool   `toml:"pretty" env:"PRETTY"`
}

type DebugConfig struct {
	Scene         bool   `toml:"scene" env:"SCENE"`
	Script        string `toml:"script" env:"SCRIPT"`
	ScreenshotDir string `toml:"screenshot_dir" env:"SCREENSHOT_DIR"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Cupcake IQ",
			Width:  720,
			Height: 1280,
			Scale:  0.5,
		},
		Assets: AssetsConfig{Dir: "assets"},
		Audio: AudioConfig{
			Enabled:       true,
			SampleRate:    44100,
			MusicVolume:   0.2,
			SuccessVolume: 0.5,
			FailVolume:    0.5,
			PlaceVolume:   0.3,
		},
		Gameplay: GameplayConfig{
			BaselineScore: 60,
			PointValue:    10,
			Tolerance:     50,
			GoalScore:     120,
			StoreURL:      "https://play.google.com/store/apps/details?id=games.burny.playdoku.block.puzzle&hl=en&gl=US",
		},
		Log:   LogConfig{Level: "info"},
		Debug: DebugConfig{ScreenshotDir: "screenshots"},
	}
}

// LoadOptions selects the optional sources.
type LoadOptions struct {
	// Path is a TOML file. Empty skips it; a missing file is an error.
	Path string
	// EnvFile is a dotenv file. Empty means ".env"; a missing file is
	// skipped. Variables already set in the environment win.
	EnvFile string
	// SkipEnv ignores .env and the environment.
	SkipEnv bool
}

// Load builds a Config from defaults and the sources in opts, then validates
// it.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	if opts.Path != "" {
		if err := decodeFile(opts.Path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if !opts.SkipEnv {
		envFile := opts.EnvFile
		if envFile == "" {
			envFile = ".env"
		}
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
		if err := ParseEnv(&cfg); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays CUPCAKE_* environment variables onto cfg. Unset
// variables leave fields unchanged.
func ParseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ValidationError lists every invalid field.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid config: " + strings.Join(e.Problems, "; ")
}

// Validate checks ranges and enumerations. It returns a *ValidationError.
func (c Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.Scale <= 0 {
		add("window.scale %v must be positive", c.Window.Scale)
	}

	if c.Audio.SampleRate <= 0 {
		add("audio.sample_rate %d must be positive", c.Audio.SampleRate)
	}
	for name, v := range map[string]float64{
		"music_volume":   c.Audio.MusicVolume,
		"success_volume": c.Audio.SuccessVolume,
		"fail_volume":    c.Audio.FailVolume,
		"place_volume":   c.Audio.PlaceVolume,
	} {
		if v < 0 || v > 1 {
			add("audio.%s %v outside [0, 1]", name, v)
		}
	}

	if c.Gameplay.BaselineScore <= 0 {
		add("gameplay.baseline_score %d must be positive", c.Gameplay.BaselineScore)
	}
	if c.Gameplay.PointValue <= 0 {
		add("gameplay.point_value %d must be positive", c.Gameplay.PointValue)
	}
	if c.Gameplay.Tolerance <= 0 {
		add("gameplay.tolerance %v must be positive", c.Gameplay.Tolerance)
	}

	if strings.TrimSpace(c.Log.Level) != "" {
		if _, ok := logging.ParseLevel(c.Log.Level); !ok {
			add("log.level %q is not a known level", c.Log.Level)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return &ValidationError{Problems: problems}
}
