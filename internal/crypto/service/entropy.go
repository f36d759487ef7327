package service

import (
	"encoding/binary"
	"time"

	"github.com/allisson/docsim/internal/budget"
	cryptoDomain "github.com/allisson/docsim/internal/crypto/domain"
)

// HostEntropy is the randomness hook handed to the primitive. Each byte mixes
// host time, the call's compute counter and the caller identity:
//
//	out[i] = time[i%8] ^ counter[i%8] ^ identity[i%len(identity)] ^ byte(i)
//
// It is NOT a cryptographically secure source.
type HostEntropy struct {
	clock    func() uint64
	counter  budget.Counter
	identity []byte
}

// NewHostEntropy creates a hook for a single caller.
func NewHostEntropy(clock func() uint64, counter budget.Counter, identity []byte) *HostEntropy {
	if clock == nil {
		clock = UnixNanoClock
	}
	return &HostEntropy{clock: clock, counter: counter, identity: identity}
}

// UnixNanoClock returns the current Unix time in nanoseconds.
func UnixNanoClock() uint64 {
	return uint64(time.Now().UnixNano())
}

// Read fills dest. It fails when the caller identity is empty.
func (h *HostEntropy) Read(dest []byte) (int, error) {
	if len(h.identity) == 0 {
		return 0, cryptoDomain.ErrEmptyIdentity
	}

	var timeBytes, counterBytes [8]byte
	binary.BigEndian.PutUint64(timeBytes[:], h.clock())
	if h.counter != nil {
		binary.BigEndian.PutUint64(counterBytes[:], h.counter.Units())
	}

	for i := range dest {
		dest[i] = timeBytes[i%8] ^ counterBytes[i%8] ^ h.identity[i%len(h.identity)] ^ byte(i)
	}
	return len(dest), nil
}
