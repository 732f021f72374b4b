package server

import (
	"errors"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

var errInvalidSoundFormat = errors.New(
	"sound file must be in mp3, ogg, flac, or wav format",
)

// playBell plays the configured notification sound once, at the configured
// volume, and blocks until playback finishes. Runs on the notifier's
// dispatch goroutine.
func (n *notifier) playBell() error {
	sound := n.cfg.Notification.Sound
	if sound == "" {
		return nil
	}

	stream, format, err := decodeSoundFile(sound)
	if err != nil {
		return err
	}

	defer func() {
		_ = stream.Close()
	}()

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	volume := n.cfg.Notification.Volume

	bell := &effects.Volume{
		Streamer: stream,
		Base:     2,
		Volume:   math.Log2(math.Max(volume, 0.001)),
		Silent:   volume <= 0,
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(bell, beep.Callback(func() {
		done <- true
	})))

	<-done

	speaker.Clear()
	speaker.Close()

	return nil
}

// decodeSoundFile returns an audio stream for the specified sound file.
func decodeSoundFile(sound string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		f      fs.File
		err    error
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err = os.Open(sound)
	if err != nil {
		return nil, beep.Format{}, err
	}

	switch filepath.Ext(sound) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, errInvalidSoundFormat
	}

	if err != nil {
		_ = f.Close()
		return nil, beep.Format{}, err
	}

	return stream, format, nil
}
