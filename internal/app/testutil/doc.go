// Package testutil provides testing utilities for the vocal-separator packages.
//
// It contains two components:
//
// 1. Mock Binaries (binaries.go):
//   - CreateMockBinary: writes an executable bash script into t.TempDir()
//   - MockAudioSeparatorScript: a stand-in for the audio-separator CLI that
//     writes stem files named the way the real tool names them
//   - FailingAudioSeparatorScript, MockFFmpegScript, MockPythonScript
//
// 2. Fixtures (fixtures.go):
//   - CreateTestAudioFile: a minimal valid WAV file
//   - CreateModelFile: an empty model file inside a model directory
//   - Standard argument and model names used across tests
//
// # Usage Examples
//
//	func TestSeparate(t *testing.T) {
//	    bin := testutil.CreateMockBinary(t, "audio-separator", testutil.MockAudioSeparatorScript)
//	    modelDir := t.TempDir()
//	    testutil.CreateModelFile(t, modelDir, testutil.TestModelFilename)
//	    input := testutil.CreateTempAudioFile(t)
//	    // ...
//	}
//
// The testify mock of separator.Separator lives in separator/separatortest
// so that the separator package itself can use these fixtures.
package testutil
