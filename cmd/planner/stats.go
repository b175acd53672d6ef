package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"studyplan/internal/calendar"
	"studyplan/internal/export"
	"studyplan/internal/stats"
)

var (
	statsMonth string
	statsJSON  bool
)

type monthReport struct {
	Month    string                 `json:"month" yaml:"month"`
	Summary  stats.Summary          `json:"summary" yaml:"summary"`
	Subjects []stats.SubjectSummary `json:"subjects" yaml:"subjects"`
	SavedAt  *time.Time             `json:"saved_at,omitempty" yaml:"saved_at,omitempty"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completion for a month, overall and per subject",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ref := time.Now()
		if statsMonth != "" {
			m, err := calendar.ParseMonth(statsMonth)
			if err != nil {
				fatal("invalid --month", err)
			}
			ref = m
		}

		a, cleanup := openApp(false)
		defer cleanup()

		tasks := a.Plan.Tasks()
		report := monthReport{
			Month:    ref.Format("2006-01"),
			Summary:  stats.Monthly(ref, tasks),
			Subjects: stats.BySubject(ref, tasks, stats.WithLocale(a.Config.Locale())),
		}
		if at, ok := a.LastSaved(); ok {
			report.SavedAt = &at
		}

		if statsJSON {
			if err := export.Encode(os.Stdout, export.JSON, report); err != nil {
				cleanup()
				fatal("failed to encode report", err)
			}
			return
		}

		fmt.Printf("%s: %d/%d topics done (%d%%)\n",
			report.Month, report.Summary.Completed, report.Summary.Total, report.Summary.Percent)
		for _, s := range report.Subjects {
			fmt.Printf("  %-20s %3d%% (%d/%d)\n", s.Name, s.Percent, s.Completed, s.Total)
		}
		if report.SavedAt != nil {
			fmt.Printf("last saved %s\n", report.SavedAt.Local().Format("2006-01-02 15:04"))
		}
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsMonth, "month", "m", "", "Month as YYYY-MM (default is the current month)")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(statsCmd)
}
