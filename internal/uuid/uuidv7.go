// Package uuid generates the opaque string keys assigned to documents on create.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	googleuuid "github.com/google/uuid"
)

// generator hands out strictly increasing keys: within one millisecond the
// 12-bit rand_a field is used as a sequence counter (RFC 9562, method 1).
type generator struct {
	mu     sync.Mutex
	millis int64
	seq    uint16
}

var gen generator

// New generates a new UUIDv7 based on the current timestamp.
// Keys are time-ordered and strictly increasing within a process, so
// documents created later sort after earlier ones when keys are compared.
//
// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: sequence within the millisecond
// - 2 bits: variant (10)
// - 62 bits: random data
func New() string {
	return gen.newAt(time.Now())
}

func (g *generator) newAt(now time.Time) string {
	g.mu.Lock()
	millis := now.UnixMilli()
	switch {
	case millis > g.millis:
		g.millis = millis
		g.seq = 0
	case g.seq < 0x0fff:
		g.seq++
	default:
		// Sequence exhausted or clock went backwards: borrow the next millisecond.
		g.millis++
		g.seq = 0
	}
	millis, seq := g.millis, g.seq
	g.mu.Unlock()

	var id [16]byte
	if _, err := rand.Read(id[8:]); err != nil {
		// Fallback to a random UUIDv4 if the entropy source fails.
		return googleuuid.New().String()
	}

	binary.BigEndian.PutUint64(id[0:8], uint64(millis)<<16|uint64(seq))
	id[6] = (id[6] & 0x0f) | 0x70
	id[8] = (id[8] & 0x3f) | 0x80

	return format(id)
}

func format(id [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// IsValid checks if a string is a valid UUID
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
