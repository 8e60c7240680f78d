package separator

import (
	"context"
)

// Separator splits a mixed audio file into stems using a pre-trained model.
type Separator interface {
	// LoadModel selects the model used by subsequent Separate calls. It fails
	// when the model file cannot be located in the model directory.
	LoadModel(ctx context.Context, modelFilename string) error

	// Separate blocks until the input has been separated and returns the
	// paths of the stem files written to the output directory.
	Separate(ctx context.Context, inputPath string) ([]string, error)
}

// Options configures a Separator.
type Options struct {
	OutputDir    string
	ModelDir     string
	OutputFormat string
	// SingleStem restricts output to the named stem, e.g. "Vocals".
	// Empty means every stem the model produces.
	SingleStem  string
	UseDirectML bool
}

// Factory constructs a configured Separator.
type Factory func(opts Options) (Separator, error)
