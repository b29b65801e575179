package document

import (
	"encoding/binary"
	"math"
	"strings"

	domdoc "github.com/woped/rag/internal/domain/document"
)

// buildHashFields converts a domain Document into a flat map[string]string for HSET.
func buildHashFields(doc *domdoc.Document) map[string]string {
	m := make(map[string]string, 2+len(doc.Meta()))
	m["__content"] = doc.Content()
	m["__vector"] = vectorToBytes(doc.Vector())
	for k, v := range doc.Meta() {
		m[k] = v
	}
	return m
}

// parseHashFields converts a flat hash map back into a domain Document.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	var content string
	var vector []float32
	meta := make(map[string]string)

	for k, v := range m {
		switch {
		case k == "__content":
			content = v
		case k == "__vector":
			vector = bytesToVector(v)
		case strings.HasPrefix(k, "__"):
			// reserved fields other than the known ones are dropped
		default:
			meta[k] = v
		}
	}

	return domdoc.Reconstruct(id, content, meta, vector)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float, little-endian).
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
