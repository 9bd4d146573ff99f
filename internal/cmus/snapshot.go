package cmus

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// PlayState is the player's reported playback state.
type PlayState int

const (
	StateUnknown PlayState = iota
	StatePlaying
	StatePaused
	StateStopped
)

func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func parseState(tok string) PlayState {
	switch tok {
	case "playing":
		return StatePlaying
	case "paused":
		return StatePaused
	case "stopped":
		return StateStopped
	default:
		return StateUnknown
	}
}

// Snapshot is one point-in-time read of the player's status and track
// metadata. Fields missing from the response keep their zero values.
type Snapshot struct {
	State       PlayState
	Artist      string
	AlbumArtist string
	Album       string
	Title       string
	Duration    int // seconds, 0 if unknown
	Position    int // seconds
	MBTrackID   string
}

// parseStatus reads the line-oriented status response. Lines it cannot
// make sense of are skipped; unknown tags are ignored.
func parseStatus(r io.Reader) Snapshot {
	var snap Snapshot

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "status":
			snap.State = parseState(fields[1])
		case "duration":
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 0 {
				snap.Duration = n
			}
		case "position":
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 0 {
				snap.Position = n
			}
		case "tag":
			if len(fields) < 3 {
				continue
			}
			value := strings.Join(fields[2:], " ")
			switch fields[1] {
			case "artist":
				snap.Artist = value
			case "albumartist":
				snap.AlbumArtist = value
			case "album":
				snap.Album = value
			case "title":
				snap.Title = value
			case "musicbrainz_trackid":
				snap.MBTrackID = value
			}
		}
	}

	return snap
}
