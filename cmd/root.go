// Package cmd implements the wandergenie CLI: planning itineraries,
// ingesting travel documents, and seeding the knowledge base.
package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wandergenie",
	Short: "AI travel planner with a retrieval-augmented knowledge base",
	Long: `WanderGenie turns a destination, duration, budget, and travel style
into a structured day-by-day itinerary. Generation is grounded in a
vector knowledge base of travel guides; unknown destinations get a
guide auto-generated and indexed on first request.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
