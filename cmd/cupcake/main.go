package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/phanxgames/cupcake/audio"
	"github.com/phanxgames/cupcake/config"
	"github.com/phanxgames/cupcake/game"
	"github.com/phanxgames/cupcake/logging"
	"github.com/phanxgames/cupcake/scene"
	"github.com/rs/zerolog"
)

type cliOptions struct {
	configPath string
	envFile    string
	script     string
	shots      string
	debug      bool
	fps        bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("cupcake", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "TOML config file (optional)")
	fs.StringVar(&opts.envFile, "env", "", "dotenv file (default .env, skipped when missing)")
	fs.StringVar(&opts.script, "script", "", "JSON play script; the game exits when it finishes")
	fs.StringVar(&opts.shots, "shots", "", "screenshot directory")
	fs.BoolVar(&opts.debug, "debug", false, "scene debug checks and frame stats")
	fs.BoolVar(&opts.fps, "fps", false, "show the FPS widget")
	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}
	if fs.NArg() > 0 {
		return cliOptions{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// apply overrides the loaded configuration with explicit flags.
func (o cliOptions) apply(cfg *config.Config) {
	if o.script != "" {
		cfg.Debug.Script = o.script
	}
	if o.shots != "" {
		cfg.Debug.ScreenshotDir = o.shots
	}
	if o.debug {
		cfg.Debug.Scene = true
		cfg.Log.Level = "debug"
	}
	if o.fps {
		cfg.Window.ShowFPS = true
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cupcake:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}
	cfg, err := config.Load(config.LoadOptions{Path: opts.configPath, EnvFile: opts.envFile})
	if err != nil {
		return err
	}
	opts.apply(&cfg)

	log := logging.New(logging.ProfileRuntime, logging.Settings{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Info().Str("config", opts.configPath).Str("assets", cfg.Assets.Dir).Msg("starting")

	assets, err := game.LoadAssets(cfg.Assets.Dir, log)
	if err != nil {
		return err
	}

	var script *scene.Script
	if cfg.Debug.Script != "" {
		data, err := os.ReadFile(cfg.Debug.Script)
		if err != nil {
			return fmt.Errorf("read play script: %w", err)
		}
		if script, err = scene.LoadScript(data); err != nil {
			return err
		}
	}

	gopts := game.NewOptions(cfg, log)
	gopts.Assets = assets
	gopts.ExitAfterScript = script != nil
	if cues := newCues(cfg.Audio, cfg.Assets.Dir, log); cues != nil {
		gopts.Cues = cues
	}

	g, err := game.New(gopts)
	if err != nil {
		return err
	}
	s := g.Scene()
	s.SetDebugMode(cfg.Debug.Scene)
	s.ScreenshotDir = cfg.Debug.ScreenshotDir
	if script != nil {
		s.SetScript(script)
		log.Info().Str("script", cfg.Debug.Script).Msg("play script attached")
	}

	if err := scene.Run(s, g.RunConfig(cfg.Window)); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	log.Info().Msg("stopped")
	return nil
}

// newCues sets up audio, or returns nil when it is disabled or the device
// cannot be opened. The game runs silently in that case.
func newCues(cfg config.AudioConfig, assetsDir string, log zerolog.Logger) *audio.Cues {
	if !cfg.Enabled {
		log.Info().Msg("audio disabled")
		return nil
	}
	backend, err := audio.NewEbitenBackend(cfg.SampleRate)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable")
		return nil
	}
	clips := audio.LoadClips(filepath.Join(assetsDir, "sound"), cfg.SampleRate, log)
	return audio.NewCues(backend, clips, audio.Volumes{
		Music:   cfg.MusicVolume,
		Success: cfg.SuccessVolume,
		Fail:    cfg.FailVolume,
		Place:   cfg.PlaceVolume,
	}, log)
}
