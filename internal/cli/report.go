package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/scrob/internal/errmsg"
	"github.com/llehouerou/scrob/internal/report"
)

var reportTodayCmd = &cobra.Command{
	Use:   "report-today",
	Short: "Summarize today's plays",
	RunE:  runReportToday,
}

var reportWeekChartCmd = &cobra.Command{
	Use:   "report-week-chart",
	Short: "Print an SVG bar chart of the trailing seven days",
	RunE:  runReportWeekChart,
}

func init() {
	rootCmd.AddCommand(reportTodayCmd)
	rootCmd.AddCommand(reportWeekChartCmd)
}

func runReportToday(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	records, err := st.Since(midnight)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpScrobQuery, err))
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Daily(records))
	return nil
}

func runReportWeekChart(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpStoreOpen, err))
	}
	defer st.Close()

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)

	records, err := st.Since(start)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpScrobQuery, err))
	}

	fmt.Fprint(cmd.OutOrStdout(), report.WeekChart(records, now))
	return nil
}
