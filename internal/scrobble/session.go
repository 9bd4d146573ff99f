// Package scrobble decides when an observed play counts as a listen.
//
// A Session consumes player snapshots one at a time and accumulates
// continuous playing time for the current track. Once the accumulated
// time passes the track's threshold the play qualifies exactly once:
// Advance returns a candidate Record, and the caller latches the session
// with MarkScrobbled after the record has been durably written. Until
// that latch is set, every qualifying tick re-emits the candidate, so a
// failed write is retried without ever producing a second record for
// the same play.
package scrobble

import (
	"fmt"
	"time"

	"github.com/llehouerou/scrob/internal/cmus"
)

// scrobbleCap is the hard upper bound on the qualification threshold:
// four minutes, per the usual audioscrobbler rule.
const scrobbleCap = 4 * time.Minute

// Record is one qualifying listen. At is the moment the play qualified.
type Record struct {
	ID          int64
	AlbumArtist string
	Album       string
	Title       string
	Duration    int // seconds, 0 if unknown
	MBTrackID   string
	At          time.Time
}

// trackID is the equality key for "the same play". Comparison is textual
// and case-sensitive, no normalization.
type trackID struct {
	artist string
	album  string
	title  string
}

func identityOf(snap cmus.Snapshot) trackID {
	artist := snap.AlbumArtist
	if artist == "" {
		artist = snap.Artist
	}
	return trackID{artist: artist, album: snap.Album, title: snap.Title}
}

// Threshold returns the accumulated playing time at which a track of the
// given length qualifies: half the duration, capped at four minutes. An
// unknown duration (0) yields a zero threshold, so any positive playing
// time qualifies.
func Threshold(durationSeconds int) time.Duration {
	t := time.Duration(durationSeconds) * 500 * time.Millisecond
	if t > scrobbleCap {
		t = scrobbleCap
	}
	return t
}

// Session is the rolling state for the track currently being observed.
// It is exclusively owned by one poll loop; methods must not be called
// concurrently.
type Session struct {
	current     trackID
	tracked     bool
	accumulated time.Duration
	lastPoll    time.Time
	scrobbled   bool
}

// Advance feeds one snapshot into the session and returns a candidate
// Record when the current play qualifies and has not been recorded yet.
// The session stays unlatched until MarkScrobbled, so the same play is
// re-emitted on the next tick if the caller's write fails.
func (s *Session) Advance(snap cmus.Snapshot, now time.Time) *Record {
	id := identityOf(snap)

	var rec *Record
	switch {
	case s.tracked && id == s.current && snap.State == cmus.StatePlaying:
		elapsed := now.Sub(s.lastPoll)
		if elapsed < 0 {
			elapsed = 0
		}
		s.accumulated += elapsed

		// The first disjunct is redundant with the threshold's own
		// four-minute cap but kept as a safety net for unknown
		// durations.
		if !s.scrobbled && (s.accumulated > scrobbleCap || s.accumulated > Threshold(snap.Duration)) {
			rec = &Record{
				AlbumArtist: id.artist,
				Album:       snap.Album,
				Title:       snap.Title,
				Duration:    snap.Duration,
				MBTrackID:   snap.MBTrackID,
				At:          time.Unix(now.Unix(), 0),
			}
		}

	case !s.tracked || id != s.current:
		// Track change: the abandoned play is permanently skipped,
		// no partial credit carries over.
		s.current = id
		s.tracked = true
		s.accumulated = 0
		s.scrobbled = false

	default:
		// Same track, not playing: accumulation freezes.
	}

	s.lastPoll = now
	return rec
}

// MarkScrobbled latches the current play as recorded. Call only after
// the candidate returned by Advance has been persisted.
func (s *Session) MarkScrobbled() {
	s.scrobbled = true
}

// Scrobbled reports whether the current play has been recorded.
func (s *Session) Scrobbled() bool {
	return s.scrobbled
}

// Accumulated returns the playing time counted for the current track.
func (s *Session) Accumulated() time.Duration {
	return s.accumulated
}

// StatusLine renders a one-line human-readable view of the session:
// a state glyph, "artist - title" and the progress towards qualifying.
func (s *Session) StatusLine(snap cmus.Snapshot) string {
	glyph := "■"
	switch snap.State {
	case cmus.StatePlaying:
		glyph = "▶"
	case cmus.StatePaused:
		glyph = "⏸"
	}

	artist := snap.Artist
	if artist == "" {
		artist = snap.AlbumArtist
	}

	progress := fmt.Sprintf("%d%%", s.progressPercent(snap))
	if s.scrobbled {
		progress = "✓"
	}

	return fmt.Sprintf("%s %s - %s [%s]", glyph, artist, snap.Title, progress)
}

func (s *Session) progressPercent(snap cmus.Snapshot) int {
	threshold := Threshold(snap.Duration)
	if threshold == 0 {
		if s.accumulated > 0 {
			return 100
		}
		return 0
	}
	return int(s.accumulated * 100 / threshold)
}
