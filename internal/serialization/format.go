// Package serialization implements the binary parameter-file format.
//
// Layout:
//
//	magic "SHAL" (4 bytes)
//	format version (uint32, little-endian)
//	header length (uint32, little-endian)
//	JSON header: ordered tensor metadata (name, rows, cols, offset, size)
//	data section: float32 little-endian tensor payloads
//
// The format stores raw parameter tensors only; there is no optimizer
// state, compression, or checksum.
package serialization

// Format constants.
const (
	MagicBytes    = "SHAL"
	FormatVersion = 1
)

// Header is the JSON header of a parameter file.
type Header struct {
	FormatVersion int          `json:"format_version"`
	Tensors       []TensorMeta `json:"tensors"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	Rows   int    `json:"rows"`
	Cols   int    `json:"cols"`
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Bytes
}
