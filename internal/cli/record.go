package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/llehouerou/scrob/internal/cmus"
	"github.com/llehouerou/scrob/internal/errmsg"
	"github.com/llehouerou/scrob/internal/lastfm"
	"github.com/llehouerou/scrob/internal/record"
)

var liveLine bool

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Poll the player and record qualifying plays until interrupted",
	RunE:  runRecord,
}

func init() {
	recordCmd.Flags().BoolVar(&liveLine, "live-line", false, "overwrite a single terminal line instead of logging one per tick")
	rootCmd.AddCommand(recordCmd)
}

func runRecord(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is unactionable

	st, err := openStore()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()

	live := liveLine
	if !cmd.Flags().Changed("live-line") {
		live = cfg.LiveLine
	}

	loop := &record.Loop{
		Source:   cmus.NewClient(cfg.SocketPath),
		Store:    st,
		Log:      logger,
		Out:      cmd.OutOrStdout(),
		LiveLine: live,
		Interval: cfg.PollInterval(),
	}
	if cfg.HasLastfm() {
		loop.Forward = lastfm.NewForwarder(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret, cfg.Lastfm.SessionKey)
		logger.Info("last.fm forwarding enabled")
	}

	if err := loop.Run(ctx); err != nil {
		return errors.New(errmsg.Format(errmsg.OpRecord, err))
	}
	return nil
}

// newLogger builds a console logger on stderr so diagnostics never mix
// with the stdout status line.
func newLogger() (*zap.Logger, error) {
	c := zap.NewProductionConfig()
	c.Encoding = "console"
	c.OutputPaths = []string{"stderr"}
	c.ErrorOutputPaths = []string{"stderr"}
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return c.Build()
}
