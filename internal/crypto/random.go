package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	mrand "math/rand/v2"

	"github.com/sirupsen/logrus"
)

// EntropySize is the entropy drawn for a newly generated 12-word backup key.
const EntropySize = 16

// RandomSource reads from a secure source and, when strict is off, degrades
// to math/rand if that source fails. The degraded path logs a warning on
// every read and must never be enabled in production.
type RandomSource struct {
	secure io.Reader
	strict bool
	log    logrus.FieldLogger
}

// NewRandomSource returns a RandomSource over crypto/rand.
func NewRandomSource(strict bool, log logrus.FieldLogger) *RandomSource {
	return NewRandomSourceFrom(rand.Reader, strict, log)
}

// NewRandomSourceFrom returns a RandomSource over secure.
func NewRandomSourceFrom(secure io.Reader, strict bool, log logrus.FieldLogger) *RandomSource {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &RandomSource{secure: secure, strict: strict, log: log}
}

// Read fills p completely or fails.
func (s *RandomSource) Read(p []byte) (int, error) {
	n, err := io.ReadFull(s.secure, p)
	if err == nil {
		return n, nil
	}
	if s.strict {
		return 0, fmt.Errorf("%w: %v", ErrRandomSourceUnavailable, err)
	}

	s.log.WithError(err).Warn("secure random source failed; using INSECURE math/rand fallback")
	insecureFill(p)
	return len(p), nil
}

func insecureFill(p []byte) {
	var word [8]byte
	for i := 0; i < len(p); i += len(word) {
		binary.LittleEndian.PutUint64(word[:], mrand.Uint64()) // #nosec G404
		copy(p[i:], word[:])
	}
}
