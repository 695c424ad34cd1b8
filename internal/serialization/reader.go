package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/born-ml/shallow/internal/tensor"
)

// Read reads a parameter file and returns its tensors by name.
//
// All failures are reported as a *LoadError wrapping a sentinel or the
// underlying I/O error; nothing is retried.
func Read(path string) (map[string]*tensor.Dense, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	const prefix = 4 + 4 + 4 // magic + version + header length
	if len(raw) < prefix {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %d bytes", ErrTruncated, len(raw))}
	}
	if string(raw[:4]) != MagicBytes {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrInvalidMagic, raw[:4])}
	}
	version := binary.LittleEndian.Uint32(raw[4:8])
	if version != FormatVersion {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)}
	}
	headerLen := int(binary.LittleEndian.Uint32(raw[8:12]))
	if prefix+headerLen > len(raw) {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: header of %d bytes", ErrTruncated, headerLen)}
	}

	var header Header
	if err := json.Unmarshal(raw[prefix:prefix+headerLen], &header); err != nil {
		return nil, &LoadError{Path: path, Err: fmt.Errorf("parse header: %w", err)}
	}

	data := raw[prefix+headerLen:]
	tensors := make(map[string]*tensor.Dense, len(header.Tensors))
	for _, meta := range header.Tensors {
		if _, dup := tensors[meta.Name]; dup {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: %q", ErrDuplicateTensor, meta.Name)}
		}
		if meta.Rows <= 0 || meta.Cols <= 0 {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: tensor %q has shape %dx%d", ErrShapeMismatch, meta.Name, meta.Rows, meta.Cols)}
		}
		want := int64(meta.Rows) * int64(meta.Cols) * 4
		if meta.Size != want {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: tensor %q declares %d bytes for shape %dx%d", ErrShapeMismatch, meta.Name, meta.Size, meta.Rows, meta.Cols)}
		}
		if meta.Offset < 0 || meta.Offset+meta.Size > int64(len(data)) {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("%w: tensor %q", ErrTruncated, meta.Name)}
		}

		values := make([]float32, meta.Rows*meta.Cols)
		payload := data[meta.Offset : meta.Offset+meta.Size]
		for i := range values {
			values[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		d, err := tensor.FromSlice(values, meta.Rows, meta.Cols)
		if err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		tensors[meta.Name] = d
	}

	return tensors, nil
}
