package solution

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/vancomm/pcview/internal/pc"
)

var ErrMalformedNode = errors.New("malformed solution node")

func malformed(at string, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", ErrMalformedNode, at, fmt.Sprintf(format, args...))
}

// Decode parses the JSON form of a solution node:
//
//	null                              Unreachable
//	[-1, -1, cap]                     NoSolution
//	[hash, shape]                     Move
//	[hash, shape, score, [7 nodes]]   Branch
//	[[score], [hash, shape], ...]     Line
func Decode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedNode, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed("$", "trailing data after node")
	}
	return decodeNode(v, "$")
}

func decodeNode(v any, at string) (Node, error) {
	if v == nil {
		return Unreachable{}, nil
	}
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, malformed(at, "expected null or a non-empty array")
	}

	if _, ok := arr[0].([]any); ok {
		return decodeLine(arr, at)
	}

	first, ok := arr[0].(json.Number)
	if !ok {
		return nil, malformed(at, "first element must be a number or an array")
	}
	if first.String() == "-1" {
		var ns NoSolution
		if len(arr) >= 3 {
			score, err := decodeScore(arr[2], at+"[2]")
			if err != nil {
				return nil, err
			}
			ns.Score = score
		}
		return ns, nil
	}

	hash, err := decodeHash(first, at+"[0]")
	if err != nil {
		return nil, err
	}

	switch len(arr) {
	case 2:
		shape, err := decodeShape(arr[1], at+"[1]")
		if err != nil {
			return nil, err
		}
		return Move{Hash: hash, Shape: shape}, nil

	case 4:
		b := Branch{Hash: hash}
		if b.Shape, err = decodeShape(arr[1], at+"[1]"); err != nil {
			return nil, err
		}
		if b.Score, err = decodeScore(arr[2], at+"[2]"); err != nil {
			return nil, err
		}
		options, ok := arr[3].([]any)
		if !ok || len(options) != pc.NumShapes {
			return nil, malformed(at+"[3]", "expected %d options", pc.NumShapes)
		}
		for i, o := range options {
			if b.Options[i], err = decodeNode(o, fmt.Sprintf("%s[3][%d]", at, i)); err != nil {
				return nil, err
			}
		}
		return b, nil
	}

	return nil, malformed(at, "unexpected array of length %d", len(arr))
}

func decodeLine(arr []any, at string) (Node, error) {
	header, _ := arr[0].([]any)
	if len(header) == 0 {
		return nil, malformed(at+"[0]", "line header must hold the score")
	}
	score, err := decodeScore(header[0], at+"[0][0]")
	if err != nil {
		return nil, err
	}
	if len(arr) < 2 {
		return nil, malformed(at, "line has no steps")
	}

	line := Line{Score: score, Steps: make([]Step, 0, len(arr)-1)}
	for i, v := range arr[1:] {
		stepAt := fmt.Sprintf("%s[%d]", at, i+1)
		pair, ok := v.([]any)
		if !ok || len(pair) != 2 {
			return nil, malformed(stepAt, "step must be [hash, shape]")
		}
		n, ok := pair[0].(json.Number)
		if !ok {
			return nil, malformed(stepAt+"[0]", "hash must be a number")
		}
		hash, err := decodeHash(n, stepAt+"[0]")
		if err != nil {
			return nil, err
		}
		shape, err := decodeShape(pair[1], stepAt+"[1]")
		if err != nil {
			return nil, err
		}
		line.Steps = append(line.Steps, Step{Hash: hash, Shape: shape})
	}
	return line, nil
}

func decodeHash(n json.Number, at string) (pc.Hash, error) {
	h, err := pc.ParseHash(n.String())
	if err != nil {
		return 0, fmt.Errorf("%w at %s: %w", ErrMalformedNode, at, err)
	}
	return h, nil
}

func decodeShape(v any, at string) (pc.Shape, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, malformed(at, "shape must be a number")
	}
	i, err := n.Int64()
	if err != nil || i < 0 || i >= pc.NumShapes {
		return 0, malformed(at, "shape %s out of range", n)
	}
	return pc.Shape(i), nil
}

func decodeScore(v any, at string) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, malformed(at, "score must be a number")
	}
	f, err := n.Float64()
	if err != nil {
		return 0, malformed(at, "score %s: %v", n, err)
	}
	return f, nil
}
