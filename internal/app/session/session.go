package session

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "vocal-separator/internal/app/errors"
)

// FileName is the session metadata file kept next to the session's media.
const FileName = "session.json"

// VocalsFileName is the name the isolated vocal track gets inside a session.
const VocalsFileName = "vocals.wav"

// MarkSeparated records in sessionDir/session.json that the session has a
// separated vocal track at vocalsPath. Unknown keys are preserved. A session
// without a metadata file is left alone and reports false.
func MarkSeparated(sessionDir string, vocalsPath string) (bool, error) {
	path := filepath.Join(sessionDir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrFileReadFailed.Error())
	}

	var sessionData map[string]interface{}
	if err := json.Unmarshal(data, &sessionData); err != nil {
		return false, apperrors.Wrapf(err, "invalid %s", path)
	}
	if sessionData == nil {
		sessionData = map[string]interface{}{}
	}

	sessionData["vocalsPath"] = vocalsPath
	sessionData["hasSeparatedAudio"] = true

	out, err := json.MarshalIndent(sessionData, "", "  ")
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrFileWriteFailed.Error())
	}
	return true, nil
}
