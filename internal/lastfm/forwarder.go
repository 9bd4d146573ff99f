// Package lastfm forwards persisted scrobs to Last.fm.
//
// Forwarding is strictly best-effort: the local sqlite row is the source
// of truth, and a failed submission is logged by the caller and dropped,
// never retried or rolled back.
package lastfm

import (
	"fmt"

	lfm "github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/scrob/internal/scrobble"
)

// Forwarder submits scrobs through an authenticated Last.fm session.
type Forwarder struct {
	api *lfm.Api
}

// NewForwarder builds a forwarder from API credentials and a previously
// authorized session key.
func NewForwarder(apiKey, apiSecret, sessionKey string) *Forwarder {
	api := lfm.New(apiKey, apiSecret)
	api.SetSession(sessionKey)
	return &Forwarder{api: api}
}

// Forward submits one scrob via track.scrobble.
func (f *Forwarder) Forward(rec scrobble.Record) error {
	p := lfm.P{
		"artist":    rec.AlbumArtist,
		"track":     rec.Title,
		"timestamp": rec.At.Unix(),
	}
	if rec.Album != "" {
		p["album"] = rec.Album
	}
	if rec.Duration > 0 {
		p["duration"] = rec.Duration
	}
	if rec.MBTrackID != "" {
		p["mbid"] = rec.MBTrackID
	}

	if _, err := f.api.Track.Scrobble(p); err != nil {
		return fmt.Errorf("track.scrobble: %w", err)
	}
	return nil
}
