package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"vocal-separator/cmd/vsep/cmd/extract"
	"vocal-separator/cmd/vsep/cmd/isolate"
	"vocal-separator/cmd/vsep/cmd/status"
	"vocal-separator/cmd/vsep/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vsep",
	Short: "Vocal isolation tools built around audio-separator",
	Long: `Vocal isolation tools built around audio-separator.
- status reports whether audio-separator and DirectML are available
- extract pulls a 44.1 kHz stereo WAV out of a video
- isolate stores the vocal track of a video in its session directory`,
	TraverseChildren: true,
	SilenceUsage:     true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(status.Cmd)
	rootCmd.AddCommand(extract.Cmd)
	rootCmd.AddCommand(isolate.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "debug logging")
}
