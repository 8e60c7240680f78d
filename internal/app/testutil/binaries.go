package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// MockAudioSeparatorScript imitates the audio-separator CLI. It writes one
// file per stem into --output_dir using the tool's naming convention,
// <input>_(<Stem>)_<model>.<ext>. When MOCK_ARGS_FILE is set the received
// arguments are written there.
const MockAudioSeparatorScript = `#!/bin/bash
ALL_ARGS="$*"
INPUT=""
OUTPUT_DIR="."
MODEL=""
STEM=""
FORMAT="WAV"
while [[ $# -gt 0 ]]; do
    case $1 in
        --model_filename) MODEL="$2"; shift 2 ;;
        --model_file_dir) shift 2 ;;
        --output_dir) OUTPUT_DIR="$2"; shift 2 ;;
        --output_format) FORMAT="$2"; shift 2 ;;
        --single_stem) STEM="$2"; shift 2 ;;
        --use_directml) shift ;;
        *) INPUT="$1"; shift ;;
    esac
done
if [ -n "$MOCK_ARGS_FILE" ]; then
    echo "$ALL_ARGS" > "$MOCK_ARGS_FILE"
fi
if [ ! -f "$INPUT" ]; then
    echo "FileNotFoundError: $INPUT" >&2
    exit 1
fi
BASE=$(basename "$INPUT")
BASE="${BASE%.*}"
MODEL_NAME="${MODEL%.*}"
EXT=$(echo "$FORMAT" | tr '[:upper:]' '[:lower:]')
if [ -n "$STEM" ]; then
    STEMS="$STEM"
else
    STEMS="Instrumental Vocals"
fi
for S in $STEMS; do
    cp "$INPUT" "$OUTPUT_DIR/${BASE}_(${S})_${MODEL_NAME}.${EXT}"
done
echo "Separation complete!" >&2
`

// FailingAudioSeparatorScript exits with a Python style traceback.
const FailingAudioSeparatorScript = `#!/bin/bash
echo "Traceback (most recent call last):" >&2
echo "  File \"separator.py\", line 42, in separate" >&2
echo "RuntimeError: DirectML device not available" >&2
exit 1
`

// SilentAudioSeparatorScript succeeds without writing anything.
const SilentAudioSeparatorScript = `#!/bin/bash
exit 0
`

// SlowAudioSeparatorScript never finishes on its own. exec keeps the
// sleeping process the one that gets killed.
const SlowAudioSeparatorScript = `#!/bin/bash
exec sleep 5
`

// MockFFmpegScript copies the -i input to the last argument, the way a
// successful ffmpeg extraction leaves a file at the output path.
const MockFFmpegScript = `#!/bin/bash
INPUT=""
OUTPUT=""
while [[ $# -gt 0 ]]; do
    case $1 in
        -i) INPUT="$2"; shift 2 ;;
        -vn|-y) shift ;;
        -acodec|-ar|-ac) shift 2 ;;
        *) OUTPUT="$1"; shift ;;
    esac
done
if [ ! -f "$INPUT" ]; then
    echo "$INPUT: No such file or directory" >&2
    exit 1
fi
cp "$INPUT" "$OUTPUT"
`

// MockFFprobeScript reports a fixed duration of 12.6 seconds.
const MockFFprobeScript = `#!/bin/bash
echo "12.600000"
`

// MockPythonScript answers the two toolchain checks: audio_separator imports
// and DirectML is available.
const MockPythonScript = `#!/bin/bash
case "$2" in
    *DmlExecutionProvider*) echo "True" ;;
    *) exit 0 ;;
esac
`

// MissingPackagePythonScript fails every import.
const MissingPackagePythonScript = `#!/bin/bash
echo "ModuleNotFoundError: No module named 'audio_separator'" >&2
exit 1
`

// CreateMockBinary writes scriptContent as an executable named name in a
// temp dir and returns its path.
func CreateMockBinary(t *testing.T, name string, scriptContent string) string {
	t.Helper()

	scriptFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(scriptFile, []byte(scriptContent), 0755); err != nil {
		t.Fatalf("Failed to create mock script: %v", err)
	}
	return scriptFile
}
