package claim

import (
	"sync"

	"github.com/0x1723/mfbldr/internal/assets"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// Session holds the per-address claim state: resolved assets, the
// selected token, and the transaction record. Resolutions are tagged
// with a generation counter so an answer that arrives after the address
// changed is discarded instead of overwriting fresh state.
type Session struct {
	mu         sync.Mutex
	address    string
	generation uint64
	assets     []assets.Asset
	selected   string // token ID, empty when nothing selected
	record     *TransactionRecord
	notified   bool
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// SetAddress switches the session to a new address. Resolved assets and
// selection are cleared and in-flight resolutions for the old address
// are invalidated. The transaction record survives: a broadcast claim
// is on chain regardless of which address the session looks at.
func (s *Session) SetAddress(address string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.address == address {
		return
	}
	s.address = address
	s.generation++
	s.assets = nil
	s.selected = ""
}

// Address returns the session's current address.
func (s *Session) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.address
}

// Begin marks the start of a resolution and returns the generation the
// answer must carry to be applied.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// ApplyResolution installs a resolution answer. Answers from a stale
// generation are dropped. Exactly one resolved token is auto-selected;
// otherwise any prior selection is kept only if it still resolves.
func (s *Session) ApplyResolution(generation uint64, resolved []assets.Asset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		return false
	}

	s.assets = resolved

	switch {
	case len(resolved) == 0:
		s.selected = ""
	case len(resolved) == 1:
		s.selected = resolved[0].TokenID
	default:
		if s.selected != "" && !containsToken(resolved, s.selected) {
			s.selected = ""
		}
	}
	return true
}

// Assets returns a copy of the resolved assets.
func (s *Session) Assets() []assets.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]assets.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Select marks the token with the given ID as the one to claim with.
func (s *Session) Select(tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !containsToken(s.assets, tokenID) {
		return mferr.WithDetails(mferr.ErrInvalidTokenID, map[string]string{
			"token_id": tokenID,
		})
	}
	s.selected = tokenID
	return nil
}

// Selected returns the selected asset, if any.
func (s *Session) Selected() (assets.Asset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.assets {
		if s.assets[i].TokenID == s.selected && s.selected != "" {
			return s.assets[i], true
		}
	}
	return assets.Asset{}, false
}

// Record returns the session's transaction record, nil when no claim
// has been broadcast.
func (s *Session) Record() *TransactionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.record == nil {
		return nil
	}
	r := *s.record
	return &r
}

// setRecord installs a new transaction record and re-arms the one-time
// success notification.
func (s *Session) setRecord(r *TransactionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = r
	s.notified = false
}

// setStatus transitions the current record to the given status.
func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record != nil {
		s.record.Status = status
	}
}

// clearRecord drops the current record so a new claim may be submitted.
func (s *Session) clearRecord() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = nil
	s.notified = false
}

// markNotified flips the notification guard, returning true only the
// first time it is called for the current record.
func (s *Session) markNotified() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notified {
		return false
	}
	s.notified = true
	return true
}

func containsToken(list []assets.Asset, tokenID string) bool {
	for i := range list {
		if list[i].TokenID == tokenID {
			return true
		}
	}
	return false
}
