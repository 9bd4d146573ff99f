// Package record runs the polling loop that turns player status into
// persisted scrobs.
package record

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/scrob/internal/cmus"
	"github.com/llehouerou/scrob/internal/scrobble"
)

const (
	// DefaultInterval is the poll period.
	DefaultInterval = 2 * time.Second

	// defaultMaxFailures is how many consecutive source failures are
	// tolerated before the loop gives up.
	defaultMaxFailures = 5
)

// Source reads one player snapshot.
type Source interface {
	Status(ctx context.Context) (cmus.Snapshot, error)
}

// Store persists qualifying records.
type Store interface {
	Insert(rec scrobble.Record) (int64, error)
}

// Forwarder relays a persisted record to an external service.
type Forwarder interface {
	Forward(rec scrobble.Record) error
}

// Clock abstracts time for deterministic loop tests.
type Clock interface {
	Now() time.Time
	// Sleep waits for d or until ctx is done, returning ctx.Err() in
	// the latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Loop polls the source at a fixed interval, feeds each snapshot through
// a session, and writes qualifying records through the store. The session
// is exclusively owned by the loop; there is no concurrent access.
type Loop struct {
	Source   Source
	Store    Store
	Forward  Forwarder // optional, best-effort
	Clock    Clock     // nil means the system clock
	Log      *zap.Logger
	Out      io.Writer // status line destination, nil means stdout
	LiveLine bool      // overwrite one terminal line instead of logging per tick
	Interval time.Duration

	// MaxSourceFailures bounds consecutive source errors before the
	// loop returns; 0 means the default. A single successful poll
	// resets the count. The session is left untouched across failed
	// polls, so accumulation freezes rather than resetting.
	MaxSourceFailures int
}

// Run polls until ctx is cancelled (clean stop, nil error), the source
// stays unavailable past the failure budget, or a store write fails.
// A record is only latched as scrobbled after its insert succeeds, so a
// write failure on the final tick never leaves a phantom scrob.
func (l *Loop) Run(ctx context.Context) error {
	clock := l.Clock
	if clock == nil {
		clock = systemClock{}
	}
	out := l.Out
	if out == nil {
		out = os.Stdout
	}
	log := l.Log
	if log == nil {
		log = zap.NewNop()
	}
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	maxFailures := l.MaxSourceFailures
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}

	session := &scrobble.Session{}
	failures := 0

	for {
		// Bound each round trip so a wedged peer cannot stall the loop
		// past its own tick.
		pollCtx, cancel := context.WithTimeout(ctx, interval)
		snap, err := l.Source.Status(pollCtx)
		cancel()

		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			failures++
			if failures >= maxFailures {
				return fmt.Errorf("player status: %w", err)
			}
			log.Warn("player status unavailable",
				zap.Error(err),
				zap.Int("consecutive_failures", failures))
		default:
			failures = 0
			now := clock.Now()

			if rec := session.Advance(snap, now); rec != nil {
				if _, err := l.Store.Insert(*rec); err != nil {
					return fmt.Errorf("write scrob: %w", err)
				}
				session.MarkScrobbled()
				log.Info("scrob recorded",
					zap.String("album_artist", rec.AlbumArtist),
					zap.String("album", rec.Album),
					zap.String("title", rec.Title),
					zap.Time("at", rec.At))

				if l.Forward != nil {
					if err := l.Forward.Forward(*rec); err != nil {
						log.Warn("scrob forward failed", zap.Error(err))
					}
				}
			}

			l.render(out, session.StatusLine(snap))
		}

		if err := clock.Sleep(ctx, interval); err != nil {
			if l.LiveLine {
				fmt.Fprintln(out)
			}
			return nil
		}
	}
}

func (l *Loop) render(out io.Writer, line string) {
	if l.LiveLine {
		fmt.Fprintf(out, "\r\x1b[K%s", line)
		return
	}
	fmt.Fprintln(out, line)
}
