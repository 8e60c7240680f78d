package extract

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vocal-separator/internal/app"
	"vocal-separator/internal/app/audio"
	"vocal-separator/internal/app/result"
)

var errExtractFailed = errors.New("audio extraction failed")

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract <video> <output.wav>",
	Short: "Extract the audio track of a video as 44.1 kHz stereo WAV",
	Long: `Extract the audio track of a video as 44.1 kHz stereo WAV, the input
format the separation models expect.

Prints the same JSON envelope as separate, with the WAV as the only output file.`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := run(cmd, args[0], args[1])
		if err := result.Write(cmd.OutOrStdout(), env); err != nil {
			return err
		}
		if !env.Success {
			return errExtractFailed
		}
		return nil
	},
}

func run(cmd *cobra.Command, input, output string) result.Envelope {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg, logger, err := app.LoadEnvironment(verbose)
	if err != nil {
		return result.FromError(err)
	}
	defer logger.Sync()

	if err := audio.ExtractWav(cmd.Context(), cfg.FFmpeg, input, output, logger); err != nil {
		return result.FromError(err)
	}
	if duration, err := audio.GetAudioDuration(cmd.Context(), cfg.FFprobe, output); err == nil {
		logger.Info("Extracted audio", zap.String("output", output), zap.Int("duration_sec", duration))
	}
	return result.Success([]string{output})
}
