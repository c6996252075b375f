package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wandergenie/wandergenie/internal/app"
	"github.com/wandergenie/wandergenie/internal/planner"
)

var planFlags struct {
	destination string
	days        int
	budget      float64
	style       string
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a day-by-day itinerary",
	Example: `  wandergenie plan --destination "Tokyo, Japan" --days 3 --budget 900 --style cultural
  wandergenie plan -d "Lisbon, Portugal" -n 5 -b 1500 -s budget`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&planFlags.destination, "destination", "d", "", "destination, e.g. \"Tokyo, Japan\" (required)")
	planCmd.Flags().IntVarP(&planFlags.days, "days", "n", 3, "trip length in days (1-30)")
	planCmd.Flags().Float64VarP(&planFlags.budget, "budget", "b", 1000, "total budget in USD")
	planCmd.Flags().StringVarP(&planFlags.style, "style", "s", "cultural", "travel style: adventure, relaxation, cultural, luxury, budget, family")
	_ = planCmd.MarkFlagRequired("destination")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := app.New(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	req := planner.PlanRequest{
		Destination: planFlags.destination,
		Days:        planFlags.days,
		Budget:      planFlags.budget,
		TravelStyle: planner.TravelStyle(planFlags.style),
	}

	it, err := a.Planner.Plan(ctx, req)
	if err != nil {
		return fmt.Errorf("planning itinerary: %w", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(it)
}
