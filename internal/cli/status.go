package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrob/internal/cmus"
	"github.com/llehouerou/scrob/internal/errmsg"
)

const statusTimeout = 5 * time.Second

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print one raw player snapshot",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), statusTimeout)
	defer cancel()

	snap, err := cmus.NewClient(cfg.SocketPath).Status(ctx)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpPlayerStatus, cfg.SocketPath, err))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "status      %s\n", snap.State)
	fmt.Fprintf(out, "artist      %s\n", snap.Artist)
	fmt.Fprintf(out, "albumartist %s\n", snap.AlbumArtist)
	fmt.Fprintf(out, "album       %s\n", snap.Album)
	fmt.Fprintf(out, "title       %s\n", snap.Title)
	fmt.Fprintf(out, "duration    %d\n", snap.Duration)
	fmt.Fprintf(out, "position    %d\n", snap.Position)
	if snap.MBTrackID != "" {
		fmt.Fprintf(out, "mbtrackid   %s\n", snap.MBTrackID)
	}
	return nil
}
