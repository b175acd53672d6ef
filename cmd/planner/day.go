package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"studyplan/internal/calendar"
	"studyplan/internal/plan"
	"studyplan/internal/stats"
)

var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Print the topics planned for a day, or list every planned day",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		key := ""
		if len(args) == 1 {
			date, err := calendar.ParseKey(args[0])
			if err != nil {
				fatal("invalid date", err)
			}
			key = calendar.Key(date)
		}

		a, cleanup := openApp(false)
		defer cleanup()

		tasks := a.Plan.Tasks()
		if key == "" {
			printDays(tasks)
			return
		}
		printDay(tasks, key)
	},
}

func printDays(tasks plan.Tasks) {
	keys := tasks.Keys()
	if len(keys) == 0 {
		fmt.Println("nothing planned")
		return
	}
	for _, key := range keys {
		sum := stats.Day(tasks, key)
		fmt.Printf("%s  %d subjects  %d/%d (%d%%)\n", key, len(tasks.Day(key)), sum.Completed, sum.Total, sum.Percent)
	}
}

func printDay(tasks plan.Tasks, key string) {
	subjects := tasks.Day(key)
	if len(subjects) == 0 {
		fmt.Printf("%s: nothing planned\n", key)
		return
	}

	sum := stats.Day(tasks, key)
	fmt.Printf("%s: %d/%d topics done (%d%%)\n", key, sum.Completed, sum.Total, sum.Percent)
	for _, s := range subjects {
		fmt.Printf("%s\n", s.Name)
		for _, tp := range s.Topics {
			box := "[ ]"
			if tp.Completed {
				box = "[x]"
			}
			fmt.Printf("  %s %s\n", box, tp.Text)
		}
	}
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
