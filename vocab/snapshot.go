package vocab

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
)

var errTruncated = errors.New("vocab: truncated snapshot")

// MarshalBinary encodes the store as dim(uint32), n(uint32), then for each
// token in load order: len(uint32), token bytes, vec(float32[dim]), all
// little-endian.
func (s *Store) MarshalBinary() ([]byte, error) {
	size := 8
	for _, token := range s.tokens {
		size += 4 + len(token) + 4*s.dim
	}
	out := make([]byte, 0, size)
	out = binary.LittleEndian.AppendUint32(out, uint32(s.dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(s.tokens)))
	for i, token := range s.tokens {
		out = binary.LittleEndian.AppendUint32(out, uint32(len(token)))
		out = append(out, token...)
		for _, v := range s.vecs[i] {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	}
	return out, nil
}

// SnapshotProvider replays records from a snapshot produced by
// Store.MarshalBinary.
type SnapshotProvider struct {
	name string
	load func() ([]byte, error)
}

// NewSnapshotProvider returns a provider over an in-memory snapshot.
func NewSnapshotProvider(data []byte) *SnapshotProvider {
	return &SnapshotProvider{name: "snapshot", load: func() ([]byte, error) { return data, nil }}
}

// NewSnapshotFileProvider returns a provider reading the snapshot file at path.
func NewSnapshotFileProvider(path string) *SnapshotProvider {
	return &SnapshotProvider{name: path, load: func() ([]byte, error) { return os.ReadFile(path) }}
}

// Records implements Provider.
func (p *SnapshotProvider) Records(ctx context.Context, fn func(token string, vec []float32) error) error {
	data, err := p.load()
	if err != nil {
		return fmt.Errorf("vocab: load %s: %w", p.name, err)
	}
	if len(data) < 8 {
		return fmt.Errorf("vocab: invalid snapshot %s: %d bytes", p.name, len(data))
	}
	off := 0
	getU32 := func() uint32 { v := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return v }
	dim := int(getU32())
	n := int(getU32())
	for idx := 0; idx < n; idx++ {
		if idx%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if off+4 > len(data) {
			return errTruncated
		}
		tokenLen := int(getU32())
		if off+tokenLen+4*dim > len(data) {
			return errTruncated
		}
		token := string(data[off : off+tokenLen])
		off += tokenLen
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(getU32())
		}
		if err := fn(token, vec); err != nil {
			return err
		}
	}
	return nil
}
