package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestModelFilename is the model every test loads unless it says otherwise.
const TestModelFilename = "UVR_MDXNET_KARA_2.onnx"

// wavHeader is a minimal 16 kHz mono PCM WAV file with no samples.
var wavHeader = []byte{
	0x52, 0x49, 0x46, 0x46, // "RIFF"
	0x24, 0x00, 0x00, 0x00, // File size
	0x57, 0x41, 0x56, 0x45, // "WAVE"
	0x66, 0x6D, 0x74, 0x20, // "fmt "
	0x10, 0x00, 0x00, 0x00, // Chunk size
	0x01, 0x00, // Audio format (PCM)
	0x01, 0x00, // Channels (mono)
	0x80, 0x3E, 0x00, 0x00, // Sample rate (16000)
	0x00, 0x7D, 0x00, 0x00, // Byte rate
	0x02, 0x00, // Block align
	0x10, 0x00, // Bits per sample
	0x64, 0x61, 0x74, 0x61, // "data"
	0x00, 0x00, 0x00, 0x00, // Data size
}

// CreateTempAudioFile creates a WAV file named song.wav in a fresh temp dir.
func CreateTempAudioFile(t *testing.T) string {
	t.Helper()
	return CreateTestAudioFile(t, filepath.Join(t.TempDir(), "song.wav"))
}

// CreateTestAudioFile writes a minimal valid WAV file at path.
func CreateTestAudioFile(t *testing.T, path string) string {
	t.Helper()

	if err := os.WriteFile(path, wavHeader, 0644); err != nil {
		t.Fatalf("Failed to create test audio file: %v", err)
	}
	return path
}

// CreateModelFile places an empty model file named name inside dir.
func CreateModelFile(t *testing.T, dir string, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("onnx"), 0644); err != nil {
		t.Fatalf("Failed to create model file: %v", err)
	}
	return path
}
