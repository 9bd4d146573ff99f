// Package report renders summaries and charts from persisted scrobs.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llehouerou/scrob/internal/scrobble"
)

const topAlbums = 5

type albumGroup struct {
	artist  string
	album   string
	plays   int
	seconds int
}

// Daily renders a textual summary: total play count, total listening
// time, and the five most played albums as "count<TAB>artist - album"
// lines. Albums with equal play counts keep first-played order.
func Daily(records []scrobble.Record) string {
	var groups []*albumGroup
	index := make(map[[2]string]*albumGroup)
	totalSeconds := 0

	for _, rec := range records {
		key := [2]string{rec.Album, rec.AlbumArtist}
		g := index[key]
		if g == nil {
			g = &albumGroup{artist: rec.AlbumArtist, album: rec.Album}
			index[key] = g
			groups = append(groups, g)
		}
		g.plays++
		g.seconds += rec.Duration
		totalSeconds += rec.Duration
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].plays > groups[j].plays
	})
	if len(groups) > topAlbums {
		groups = groups[:topAlbums]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s plays\n", humanize.Comma(int64(len(records))))
	fmt.Fprintf(&b, "%s\n", FormatDuration(time.Duration(totalSeconds)*time.Second))
	for _, g := range groups {
		fmt.Fprintf(&b, "%d\t%s - %s\n", g.plays, g.artist, g.album)
	}

	return b.String()
}

// FormatDuration spells a duration out as days, hours, minutes and
// seconds, omitting zero-valued units. A zero duration renders empty.
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())

	units := []struct {
		name string
		size int
	}{
		{"day", 86400},
		{"hour", 3600},
		{"minute", 60},
		{"second", 1},
	}

	var parts []string
	for _, u := range units {
		n := seconds / u.size
		seconds %= u.size
		if n == 0 {
			continue
		}
		name := u.name
		if n > 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", n, name))
	}

	return strings.Join(parts, " ")
}
