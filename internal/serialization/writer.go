package serialization

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/born-ml/shallow/internal/tensor"
)

// Entry pairs a tensor with the name it is stored under.
//
// Entries are written in order, which keeps the file layout
// deterministic for a given parameter set.
type Entry struct {
	Name  string
	Dense *tensor.Dense
}

// Write writes the entries to path in the parameter-file format.
func Write(path string, entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	var offset int64
	metas := make([]TensorMeta, 0, len(entries))
	for _, e := range entries {
		if _, dup := seen[e.Name]; dup {
			return fmt.Errorf("write %s: %w: %q", path, ErrDuplicateTensor, e.Name)
		}
		seen[e.Name] = struct{}{}

		size := int64(len(e.Dense.Data())) * 4
		metas = append(metas, TensorMeta{
			Name:   e.Name,
			Rows:   e.Dense.Rows(),
			Cols:   e.Dense.Cols(),
			Offset: offset,
			Size:   size,
		})
		offset += size
	}

	headerJSON, err := json.Marshal(Header{FormatVersion: FormatVersion, Tensors: metas})
	if err != nil {
		return fmt.Errorf("write %s: marshal header: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(MagicBytes); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(headerJSON))); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	buf := make([]byte, 4)
	for _, e := range entries {
		for _, v := range e.Dense.Data() {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := w.Write(buf); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Sync()
}
