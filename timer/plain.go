package timer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/studytrack/studytrack/internal/ui"
)

// plainOutput serialises writes from the countdown and the progress line.
type plainOutput struct {
	w  io.Writer
	mu sync.Mutex
}

func (p *plainOutput) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, format, args...)
}

// RunPlain runs countdowns without the interactive interface, writing
// progress lines to out. Whenever a countdown stops and waits to be started,
// it reads a line from in. It returns when in is exhausted or ctx is done.
func (t *Timer) RunPlain(ctx context.Context, in io.Reader, out io.Writer) error {
	defer t.Close()

	p := &plainOutput{w: out}
	scanner := bufio.NewScanner(in)

	t.onDone = func(done Completion) {
		t.finishPlain(p, done)
	}

	for {
		t.start()
		t.printSession(p)

		err := t.runPlainCountdown(ctx, p)
		if errors.Is(err, context.Canceled) {
			return nil
		}

		if err != nil {
			return err
		}

		p.printf("Press ENTER to start the next countdown\n")

		if !scanner.Scan() {
			return scanner.Err()
		}
	}
}

// runPlainCountdown drives the countdown until it goes idle and redraws
// the remaining time once a second.
func (t *Timer) runPlainCountdown(ctx context.Context, p *plainOutput) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		redraw := time.NewTicker(time.Second)
		defer redraw.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-redraw.C:
				state := t.countdown.State()
				if state.Running() {
					p.printf("\r%s ", formatTimeRemaining(state.Remaining))
				}
			}
		}
	}()

	err := t.countdown.Run(ctx, catchUpTicks(ctx, ticker.C, t.now()))

	cancel()
	wg.Wait()

	return err
}

// finishPlain handles a countdown that reached zero while running plain.
// The notifier runs in line since nothing else needs the terminal.
func (t *Timer) finishPlain(p *plainOutput, done Completion) {
	p.printf("\r%s\n", formatTimeRemaining(0))

	notice, err := t.rec.record(done)
	if err != nil {
		p.printf("%s %v\n", ui.Red("Unable to save the session:"), err)
	} else if notice != "" {
		p.printf("%s\n", ui.Green(notice))
	}

	message := t.cfg.Focus.Message
	if done.Finished == Focus {
		message = t.cfg.Break.Message
	}

	t.notifier.Completed(done.Finished, done.Next.Sessions, message)

	if done.Next.Running() {
		t.printSession(p)
	}
}

// printSession prints the header line of the current countdown.
func (t *Timer) printSession(p *plainOutput) {
	state := t.countdown.State()

	text := ui.Green("[Focus]") + ": " + t.cfg.Focus.Message
	if state.Mode == Break {
		text = ui.Blue("[Break]") + ": " + t.cfg.Break.Message
	}

	if task := t.rec.task; task != nil && state.Mode == Focus {
		text += " >>> " + task.Title
	}

	p.printf(
		"%s (until %s)\n",
		text,
		ui.Highlight(t.endTime(state).Format(t.timeFormat())),
	)
}
