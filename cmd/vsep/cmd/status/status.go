package status

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"vocal-separator/internal/app"
	"vocal-separator/internal/app/separator"
)

// Cmd represents the status command
var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether audio-separator and DirectML are available",
	Long: `Report whether audio-separator and DirectML are available.

Prints {"installed":bool,"directml":bool}. A missing Python is reported as
not installed rather than as an error.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg, logger, err := app.LoadEnvironment(verbose)
		if err != nil {
			return err
		}
		defer logger.Sync()

		status := separator.CheckStatus(cmd.Context(), cfg.Python, logger)
		return json.NewEncoder(cmd.OutOrStdout()).Encode(status)
	},
}
