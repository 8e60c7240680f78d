package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// Envelope is the single JSON record a separation run prints. Exactly one of
// the two shapes is populated: success with its output files, or an error.
type Envelope struct {
	Success     bool
	OutputFiles []string
	Error       string
}

type successEnvelope struct {
	Success     bool     `json:"success"`
	OutputFiles []string `json:"output_files"`
}

type failureEnvelope struct {
	Error string `json:"error"`
}

// Success builds the success envelope. A nil slice is reported as [].
func Success(outputFiles []string) Envelope {
	if outputFiles == nil {
		outputFiles = []string{}
	}
	return Envelope{Success: true, OutputFiles: outputFiles}
}

// Failure builds the failure envelope carrying message verbatim.
func Failure(message string) Envelope {
	return Envelope{Error: message}
}

// FromError builds the failure envelope for err.
func FromError(err error) Envelope {
	return Failure(err.Error())
}

// MarshalJSON emits only the keys of the populated shape, formatted the way
// the calling application has always received it: ", " and ": " separators
// and non-ASCII characters escaped.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var v interface{}
	if e.Success {
		files := e.OutputFiles
		if files == nil {
			files = []string{}
		}
		v = successEnvelope{Success: true, OutputFiles: files}
	} else {
		v = failureEnvelope{Error: e.Error}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// file paths are printed as-is
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return asciiJSON(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// asciiJSON spaces the separators of compact JSON and escapes every
// non-ASCII rune inside strings as \uXXXX, using surrogate pairs above the
// basic multilingual plane.
func asciiJSON(compact []byte) []byte {
	out := make([]byte, 0, len(compact)+len(compact)/8)
	inString, escaped := false, false

	for i := 0; i < len(compact); {
		c := compact[i]
		if !inString {
			out = append(out, c)
			switch c {
			case '"':
				inString = true
			case ':', ',':
				out = append(out, ' ')
			}
			i++
			continue
		}

		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = false
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(compact[i:])
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
			} else {
				out = fmt.Appendf(out, `\u%04x`, r)
			}
			i += size
			continue
		}
		out = append(out, c)
		i++
	}
	return out
}

// ExitCode maps the envelope to the process exit status.
func (e Envelope) ExitCode() int {
	if e.Success {
		return 0
	}
	return 1
}

// Write prints the envelope as a single line of JSON.
func Write(w io.Writer, e Envelope) error {
	data, err := e.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
