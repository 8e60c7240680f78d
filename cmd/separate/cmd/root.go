package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"vocal-separator/internal/app"
	"vocal-separator/internal/app/result"
	"vocal-separator/internal/app/separation"
)

// exitError carries the exit status of a run whose envelope has already
// been printed.
type exitError int

func (e exitError) Error() string {
	return fmt.Sprintf("separation failed with exit status %d", int(e))
}

// NewRootCmd builds the separate command. The result envelope goes to out;
// logs go to stderr or the configured log file.
func NewRootCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "separate <input_audio> <output_dir> <model_dir>",
		Short: "Isolate the vocal stem of an audio file",
		Long: `Isolate the vocal stem of an audio file with audio-separator.

- Loads the UVR_MDXNET_KARA_2 model from <model_dir>
- Writes the vocal stem as WAV into <output_dir>, using DirectML when available
- Prints one JSON line: {"success": true, "output_files": [...]} or {"error": "..."}`,
		// Every argument is positional; anything after the third is ignored.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := run(cmd.Context(), args)
			if err := result.Write(out, env); err != nil {
				return err
			}
			if code := env.ExitCode(); code != 0 {
				return exitError(code)
			}
			return nil
		},
	}
}

func run(ctx context.Context, args []string) result.Envelope {
	inv, err := separation.ParseArgs(args)
	if err != nil {
		return result.Failure(separation.UsageMessage)
	}

	cfg, logger, err := app.LoadEnvironment(false)
	if err != nil {
		return result.FromError(err)
	}
	defer logger.Sync()

	return app.InitializeRunner(cfg, logger).Execute(ctx, inv)
}

// Execute runs the command and exits with the status of the run.
// This is called by main.main().
func Execute() {
	err := NewRootCmd(os.Stdout).Execute()
	if err == nil {
		return
	}
	var code exitError
	if errors.As(err, &code) {
		os.Exit(int(code))
	}
	os.Exit(1)
}
