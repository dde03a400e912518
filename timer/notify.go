package timer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/kballard/go-shellquote"
)

const sessionCmdTimeout = time.Minute

// Notifier signals the end of a countdown. Every method is best effort:
// failures are logged and otherwise ignored.
type Notifier struct {
	notify     func(title, message, icon string) error
	Sound      string
	SessionCmd string
	Enabled    bool
}

// NewNotifier returns a Notifier that shows desktop notifications when
// enabled, plays sound (a path to an audio file) if set, and runs sessionCmd
// after each countdown if set.
func NewNotifier(enabled bool, sound, sessionCmd string) *Notifier {
	return &Notifier{
		notify:     beeep.Notify,
		Enabled:    enabled,
		Sound:      sound,
		SessionCmd: sessionCmd,
	}
}

// Completed announces that a countdown of the finished mode is over.
func (n *Notifier) Completed(finished Mode, sessions int, message string) {
	if n.Enabled {
		title, body := notificationText(finished, sessions, message)

		err := n.notify(title, body, "")
		if err != nil {
			slog.Warn("unable to display notification", slog.Any("error", err))
		}
	}

	if n.Sound != "" {
		err := playSound(n.Sound)
		if err != nil {
			slog.Warn(
				"unable to play sound",
				slog.String("sound", n.Sound),
				slog.Any("error", err),
			)
		}
	}

	if n.SessionCmd != "" {
		err := runSessionCmd(n.SessionCmd)
		if err != nil {
			slog.Warn(
				"session command failed",
				slog.String("cmd", n.SessionCmd),
				slog.Any("error", err),
			)
		}
	}
}

// notificationText returns the title and body announcing the end of a
// countdown. message is what the user should do next.
func notificationText(finished Mode, sessions int, message string) (string, string) {
	if finished == Focus {
		return "Time for a break",
			fmt.Sprintf("Focus session %d completed. %s", sessions, message)
	}

	return "Break is over", message
}

// runSessionCmd executes the specified command.
func runSessionCmd(sessionCmd string) error {
	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return errParseSessionCmd.Wrap(err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), sessionCmdTimeout)
	defer cancel()

	//nolint:gosec // the command comes from the user's own config
	cmd := exec.CommandContext(ctx, cmdSlice[0], cmdSlice[1:]...)

	return cmd.Run()
}

// decodeSound opens an audio file and returns a stream for it.
func decodeSound(sound string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(sound)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch strings.ToLower(filepath.Ext(sound)) {
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

		return nil, beep.Format{}, errInvalidSoundFormat.Fmt(sound)
	}

	if err != nil {
		_ = f.Close()

		return nil, beep.Format{}, err
	}

	return stream, format, nil
}

// playSound plays an audio file to the end.
func playSound(sound string) error {
	stream, format, err := decodeSound(sound)
	if err != nil {
		return err
	}

	defer stream.Close()

	bufferSize := 10

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Duration(int(time.Second)/bufferSize)),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	return nil
}
