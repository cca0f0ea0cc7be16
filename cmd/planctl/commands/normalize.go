package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tripmate/internal/models/request_models"
	"tripmate/internal/models/response_models"
)

var NormalizeCmd = &cobra.Command{
	Use:   "normalize [file|-]",
	Short: "Normalize a saved model answer into a structured itinerary",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}
		duration, _ := cmd.Flags().GetInt("duration")

		result, err := newNormalizer().Normalize(text, request_models.TravelRequest{Duration: duration})
		if err != nil {
			var errResult *response_models.ErrorResult
			if errors.As(err, &errResult) {
				if printErr := printJSON(cmd.OutOrStdout(), errResult); printErr != nil {
					return printErr
				}
			}
			return err
		}
		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	NormalizeCmd.Flags().IntP("duration", "n", 0, "requested trip length, used for mismatch warnings")
}
