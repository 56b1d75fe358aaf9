package game

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/heartbloom/internal/config"
)

const levelWindow = 2048

// soundtrack plays one looping audio file and exposes its loudness.
type soundtrack struct {
	currentFile *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	tap         *levelTap
	name        string

	smoothed float64
	paused   bool
	initDone bool
}

// errUnsupported is returned for files that none of the decoders handle.
var errUnsupported = errors.New("unsupported audio format")

func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(f.Name())); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", errUnsupported, ext)
	}
}

// openDialog asks the user for a file and plays it. Cancelling is not an error.
func (a *soundtrack) openDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return fmt.Errorf("select soundtrack: %w", err)
	}
	return a.load(filename)
}

// load replaces the current soundtrack with path, looped forever.
func (a *soundtrack) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open soundtrack: %w", err)
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	// Prepare audio chain: streamer -> loop -> tap -> ctrl
	t := newLevelTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: t, Paused: false}

	// (Re)initialize speaker if needed
	bufferSize := format.SampleRate.N(time.Second / 20)
	switch {
	case !a.initDone:
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		a.initDone = true
	case a.format.SampleRate != format.SampleRate:
		speaker.Clear()
		if err := speaker.Init(format.SampleRate, bufferSize); err != nil {
			_ = streamer.Close()
			_ = f.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
	default:
		speaker.Clear()
	}
	a.release()

	a.currentFile = f
	a.streamer = streamer
	a.format = format
	a.ctrl = ctrl
	a.tap = t
	a.name = filepath.Base(path)
	a.paused = false
	a.smoothed = 0

	speaker.Play(ctrl)
	log.Printf("[Audio] playing %s (%d Hz)", a.name, format.SampleRate)
	return nil
}

func (a *soundtrack) loaded() bool { return a.ctrl != nil }

// playing reports whether audio is audible right now.
func (a *soundtrack) playing() bool { return a.loaded() && !a.paused }

func (a *soundtrack) togglePause() {
	if a.ctrl == nil {
		return
	}
	speaker.Lock()
	a.paused = !a.paused
	a.ctrl.Paused = a.paused
	speaker.Unlock()
}

// level returns the smoothed loudness of what was just played.
func (a *soundtrack) level() float64 {
	if a.tap == nil || a.paused {
		a.smoothed = 0
		return 0
	}
	a.smoothed = config.SmoothingFactor*a.smoothed + (1-config.SmoothingFactor)*a.tap.rms(levelWindow)
	return a.smoothed
}

// position returns the playback position within the current loop.
func (a *soundtrack) position() time.Duration {
	if a.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := a.streamer.Position()
	speaker.Unlock()
	return a.format.SampleRate.D(pos)
}

func (a *soundtrack) release() {
	if a.streamer != nil {
		_ = a.streamer.Close()
		a.streamer = nil
	}
	if a.currentFile != nil {
		_ = a.currentFile.Close()
		a.currentFile = nil
	}
	a.ctrl = nil
	a.tap = nil
}

// close stops playback and releases the file.
func (a *soundtrack) close() {
	if a.initDone {
		speaker.Clear()
	}
	a.release()
}
