package isolate

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"vocal-separator/internal/app"
	"vocal-separator/internal/app/pipeline"
)

var sessionDir string
var workDir string
var modelDir string
var showProgress bool

func init() {
	Cmd.Flags().StringVarP(&sessionDir, "session-dir", "s", "",
		"directory receiving vocals.wav and holding session.json (default: the video's directory)")
	Cmd.Flags().StringVarP(&workDir, "work-dir", "w", "temp",
		"scratch directory for extracted audio and separator output")
	Cmd.Flags().StringVarP(&modelDir, "model-dir", "m", "",
		"directory holding the separation model (default: <work-dir>/audio-separator-models)")
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", false,
		"draw a progress bar on stderr even when it is not a terminal")
}

// Cmd represents the isolate command
var Cmd = &cobra.Command{
	Use:   "isolate <video>",
	Short: "Store the vocal track of a video in its session directory",
	Long: `Store the vocal track of a video in its session directory

- Extract the audio track with ffmpeg
- Separate the vocals with audio-separator
- Copy the vocal stem to <session-dir>/vocals.wav and mark session.json
- Every stage is printed to stdout as one JSON line`,
	Args: cobra.ExactArgs(1),
	// the failure is already on stdout as an error stage
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		video := args[0]
		reporter := pipeline.MultiReporter{pipeline.NewJSONReporter(cmd.OutOrStdout())}

		verbose, _ := cmd.Flags().GetBool("verbose")
		cfg, logger, err := app.LoadEnvironment(verbose)
		if err != nil {
			reporter.Report(pipeline.Update{Stage: pipeline.StageError, Message: err.Error()})
			return err
		}
		defer logger.Sync()

		manager := pipeline.NewProgressManager(pipeline.ProgressConfig{
			Enabled: pipeline.ShouldShowProgress(showProgress),
			Writer:  cmd.ErrOrStderr(),
		})
		reporter = append(reporter, pipeline.NewBarReporter(manager, filepath.Base(video)))

		isolator := app.InitializeIsolator(cfg, logger)
		_, err = isolator.Isolate(cmd.Context(), pipeline.Request{
			VideoPath:  video,
			SessionDir: sessionDir,
			WorkDir:    workDir,
			ModelDir:   modelDir,
		}, reporter)
		manager.Wait()
		return err
	},
}
