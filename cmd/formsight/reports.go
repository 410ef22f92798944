package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List stored analysis reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		summaries, err := st.Reports().List()
		if err != nil {
			return fmt.Errorf("failed to list reports: %w", err)
		}

		if len(summaries) == 0 {
			fmt.Println("No reports stored.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEXERCISE\tREPS\tCONSISTENCY\tSMOOTHNESS\tCREATED")
		for _, s := range summaries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%.2f\t%s\n",
				s.ID, s.Exercise, s.RepCount, s.Consistency, s.Smoothness,
				s.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(reportsCmd)
}
