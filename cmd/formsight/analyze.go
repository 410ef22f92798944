package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/formsight/internal/app"
	"github.com/ayusman/formsight/internal/pose"
)

var (
	analyzeInput    string
	analyzeExercise string
	analyzeSave     bool
	analyzeDemo     bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a pose sequence from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		var seq pose.Sequence

		switch {
		case analyzeDemo:
			seq = pose.SquatSequence(3, 30)
			if analyzeExercise == "" {
				analyzeExercise = "squat"
			}
		case analyzeInput != "":
			data, err := os.ReadFile(analyzeInput)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			if err := json.Unmarshal(data, &seq); err != nil {
				return fmt.Errorf("failed to decode input: %w", err)
			}
		default:
			return fmt.Errorf("either --input or --demo is required")
		}

		if analyzeExercise == "" {
			return fmt.Errorf("--exercise is required")
		}

		cfg := app.Config{Logger: logger}
		if analyzeSave {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()
			cfg.Store = st
		}

		application := app.New(cfg)

		report, err := application.AnalyzeSequence(analyzeExercise, seq)
		if err != nil {
			return err
		}

		if analyzeSave {
			if err := application.SaveReport(report); err != nil {
				return fmt.Errorf("failed to save report: %w", err)
			}
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "input", "i", "", "Path to a JSON file of pose frames")
	analyzeCmd.Flags().StringVarP(&analyzeExercise, "exercise", "e", "", "Exercise to analyze (squat, pushup, deadlift)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "Persist the report to the database")
	analyzeCmd.Flags().BoolVar(&analyzeDemo, "demo", false, "Analyze a generated demonstration squat")
	rootCmd.AddCommand(analyzeCmd)
}
