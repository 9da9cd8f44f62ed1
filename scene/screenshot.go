package scene

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot asks for the next drawn frame to be saved as
// ScreenshotDir/<frame>_<label>.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// flushScreenshots writes the queued captures of screen. Failures are
// logged and the queue is emptied either way.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]
	if len(labels) == 0 || screen == nil {
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.log.Error().Err(err).Str("dir", s.ScreenshotDir).Msg("screenshot dir")
		return
	}

	img := snapshot(screen)
	for _, label := range labels {
		path := filepath.Join(s.ScreenshotDir, shotName(s.frame, label))
		if err := writePNG(path, img); err != nil {
			s.log.Error().Err(err).Msg("screenshot")
			continue
		}
		s.log.Info().Str("path", path).Msg("screenshot saved")
	}
}

// snapshot copies the screen pixels. ReadPixels yields premultiplied RGBA,
// which is what image.RGBA holds.
func snapshot(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}

func shotName(frame uint64, label string) string {
	return fmt.Sprintf("%06d_%s.png", frame, cleanLabel(label))
}

// cleanLabel keeps letters, digits, '-' and '.', mapping anything else to
// '_'. A blank label becomes "shot".
func cleanLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "shot"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write screenshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write screenshot %s: %w", path, err)
	}
	return f.Close()
}
