package solution

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/pcview/internal/pc"
)

var Log = logrus.New()

var ErrMalformedFile = errors.New("malformed tree file")

// File is the solver's tree output: the starting field and the undecoded
// root node.
type File struct {
	InitHash pc.Hash
	Data     json.RawMessage
}

// ParseFile reads a tree_data.js file:
//
//	init_hash=<hash>
//	data=<node>
//
// Declarations (var, let, const) and trailing semicolons are accepted.
func ParseFile(r io.Reader) (*File, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read tree file: %w", err)
	}

	var (
		f                File
		hasHash, hasData bool
	)
	for len(src) > 0 {
		var line []byte
		line, src, _ = bytes.Cut(src, []byte("\n"))
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("//")) {
			continue
		}
		for _, decl := range []string{"var ", "let ", "const "} {
			line = bytes.TrimPrefix(line, []byte(decl))
		}
		key, value, found := bytes.Cut(line, []byte("="))
		if !found {
			return nil, fmt.Errorf("%w: expected an assignment, got %q", ErrMalformedFile, truncate(line))
		}
		value = bytes.TrimSuffix(bytes.TrimSpace(value), []byte(";"))

		switch string(bytes.TrimSpace(key)) {
		case "init_hash":
			f.InitHash, err = pc.ParseHash(string(bytes.TrimSpace(value)))
			if err != nil {
				return nil, fmt.Errorf("%w: init_hash: %w", ErrMalformedFile, err)
			}
			hasHash = true
		case "data":
			if !json.Valid(value) {
				return nil, fmt.Errorf("%w: data is not valid JSON", ErrMalformedFile)
			}
			f.Data = json.RawMessage(bytes.Clone(value))
			hasData = true
		default:
			Log.WithField("key", string(key)).Debug("ignoring unknown tree file key")
		}
	}

	if !hasHash {
		return nil, fmt.Errorf("%w: missing init_hash", ErrMalformedFile)
	}
	if !hasData {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedFile)
	}

	Log.WithFields(logrus.Fields{
		"initHash": f.InitHash,
		"bytes":    len(f.Data),
	}).Debug("parsed tree file")
	return &f, nil
}

// Tree decodes the root node.
func (f *File) Tree() (*Tree, error) {
	root, err := Decode(f.Data)
	if err != nil {
		return nil, err
	}
	return &Tree{InitHash: f.InitHash, Root: root}, nil
}

// WriteTo writes the file back in the solver's format.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "init_hash=%d\ndata=%s", f.InitHash, f.Data)
	return int64(n), err
}

func truncate(b []byte) string {
	const limit = 32
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
