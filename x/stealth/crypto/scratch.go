package crypto

import (
	"errors"
	"sync"
	"time"

	"github.com/lightningnetwork/lnd/clock"

	"github.com/Hikari-Chain/hikari-stealth/x/stealth/types"
)

// ErrScratchNotSerializable is returned by every serialization hook of
// ScratchKey.
var ErrScratchNotSerializable = errors.New("scratch key material cannot be serialized")

// ScratchKey is a single in-memory slot retaining the last used ephemeral key
// for diagnostics. The private half is wiped by a timer armed on the slot's
// clock once the ttl elapses, or when Clear is called, and the slot refuses to
// be serialized.
type ScratchKey struct {
	mu    sync.Mutex
	clock clock.Clock
	ttl   time.Duration

	private []byte
	public  string
	expires time.Time
	// stop disarms the expiry timer of the retained key
	stop chan struct{}
}

// NewScratchKey creates a slot keeping keys for ttl. A zero ttl disables
// retention entirely.
func NewScratchKey(clk clock.Clock, ttl time.Duration) *ScratchKey {
	if clk == nil {
		clk = clock.NewDefaultClock()
	}
	return &ScratchKey{clock: clk, ttl: ttl}
}

// Store replaces the retained key, wiping the previous one
func (s *ScratchKey) Store(key types.EphemeralKey) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.wipeLocked()
	if s.ttl <= 0 || key.PrivateKey == "" {
		return
	}
	s.private = []byte(key.PrivateKey)
	s.public = key.PublicKey
	s.expires = s.clock.Now().Add(s.ttl)
	s.stop = make(chan struct{})

	go s.expire(s.clock.TickAfter(s.ttl), s.stop)
}

// expire wipes the slot when tick fires, unless stop is closed first because
// the key was replaced or cleared.
func (s *ScratchKey) expire(tick <-chan time.Time, stop chan struct{}) {
	select {
	case <-tick:
	case <-stop:
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop == stop {
		s.wipeLocked()
	}
}

// Load returns the retained key if it has not expired
func (s *ScratchKey) Load() (types.EphemeralKey, bool) {
	if s == nil {
		return types.EphemeralKey{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.private == nil {
		return types.EphemeralKey{}, false
	}
	if !s.clock.Now().Before(s.expires) {
		s.wipeLocked()
		return types.EphemeralKey{}, false
	}
	return types.EphemeralKey{PrivateKey: string(s.private), PublicKey: s.public}, true
}

// Clear wipes the slot
func (s *ScratchKey) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wipeLocked()
}

func (s *ScratchKey) wipeLocked() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
	Zero(s.private)
	s.private = nil
	s.public = ""
	s.expires = time.Time{}
}

// String never prints key material
func (s *ScratchKey) String() string {
	return "ScratchKey{redacted}"
}

// GoString never prints key material
func (s *ScratchKey) GoString() string {
	return s.String()
}

// MarshalJSON always fails
func (s *ScratchKey) MarshalJSON() ([]byte, error) {
	return nil, ErrScratchNotSerializable
}

// MarshalText always fails
func (s *ScratchKey) MarshalText() ([]byte, error) {
	return nil, ErrScratchNotSerializable
}

// MarshalYAML always fails
func (s *ScratchKey) MarshalYAML() (interface{}, error) {
	return nil, ErrScratchNotSerializable
}
