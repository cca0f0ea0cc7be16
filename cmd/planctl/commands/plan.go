package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
)

var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build an itinerary with the configured language model",
	Long: `Build an itinerary from flags or from a YAML request file. Without model
credentials the demo itinerary is printed together with a notice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := planRequestFromFlags(cmd)
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.close()

		resp, err := rt.planner.PlanTravel(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var DemoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Print the demo itinerary for a destination",
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := planRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		demo, err := services.NewDemoService(newNormalizer())
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), demo.GenerateDemoResult(req.TravelRequest))
	},
}

func addTripFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("request", "f", "", "YAML or JSON request file")
	cmd.Flags().StringP("destination", "d", "", "destination")
	cmd.Flags().IntP("duration", "n", 0, "trip length in days")
	cmd.Flags().Int("group-size", 1, "number of travellers")
	cmd.Flags().String("style", "", "travel style")
	cmd.Flags().String("budget", "", "budget range")
	cmd.Flags().StringSlice("activities", nil, "preferred activities")
	cmd.Flags().String("variant", "", "budget, luxury, relaxed or adventure")
}

// planRequestFromFlags loads the request file first; explicit flags override it.
func planRequestFromFlags(cmd *cobra.Command) (request_models.PlanRequest, error) {
	var req request_models.PlanRequest
	if path, _ := cmd.Flags().GetString("request"); path != "" {
		if err := loadRequestFile(path, &req); err != nil {
			return req, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("destination") {
		req.Destination, _ = flags.GetString("destination")
	}
	if flags.Changed("duration") {
		req.Duration, _ = flags.GetInt("duration")
	}
	if flags.Changed("group-size") || req.GroupSize == 0 {
		req.GroupSize, _ = flags.GetInt("group-size")
	}
	if flags.Changed("style") {
		req.TravelStyle, _ = flags.GetString("style")
	}
	if flags.Changed("budget") {
		req.BudgetRange, _ = flags.GetString("budget")
	}
	if flags.Changed("activities") {
		req.Activities, _ = flags.GetStringSlice("activities")
	}
	if flags.Changed("variant") {
		req.Variant, _ = flags.GetString("variant")
	}
	if req.GroupSize < 0 {
		return req, fmt.Errorf("group size must be positive")
	}
	return req, nil
}

func init() {
	addTripFlags(PlanCmd)
	addTripFlags(DemoCmd)
}
