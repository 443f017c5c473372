package session

import (
	"encoding/json"
	"sync"
	"time"
)

// CartLine is one entry in a session cart, keyed by furniture item ID.
// Adding an item that is already present increments the existing line
// instead of appending a duplicate.
type CartLine struct {
	FurnitureItemID uint   `json:"furnitureItemId"`
	Name            string `json:"name"`
	PriceCents      int64  `json:"priceCents"`
	ImageURL        string `json:"imageUrl"`
	Quantity        int    `json:"quantity"`
}

// Session owns all per-visitor mutable state: the cart, the favorite set and
// the checkout in-flight guard. It is the explicit, session-scoped equivalent
// of what the storefront used to keep at its application root. All state is
// ephemeral; nothing survives session expiry.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	lines     []CartLine
	favorites map[uint]bool
}

// New creates an empty session with the given ID.
func New(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		favorites: make(map[uint]bool),
	}
}

// Add merges the line into the cart. If a line for the same item already
// exists its quantity is incremented by line.Quantity; otherwise the line is
// appended, preserving insertion order. A non-positive quantity defaults to 1.
func (s *Session) Add(line CartLine) {
	if line.Quantity <= 0 {
		line.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].FurnitureItemID == line.FurnitureItemID {
			s.lines[i].Quantity += line.Quantity
			return
		}
	}
	s.lines = append(s.lines, line)
}

// SetQuantity replaces the quantity of the line for itemID. A quantity of
// zero or less removes the line. Unknown itemID is a no-op.
func (s *Session) SetQuantity(itemID uint, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].FurnitureItemID != itemID {
			continue
		}
		if quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		} else {
			s.lines[i].Quantity = quantity
		}
		return
	}
}

// Remove deletes the line for itemID if present; no-op otherwise.
func (s *Session) Remove(itemID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].FurnitureItemID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return
		}
	}
}

// TotalCents returns the cart total in minor units, recomputed on every call.
func (s *Session) TotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.lines {
		total += line.PriceCents * int64(line.Quantity)
	}
	return total
}

// ItemCount returns the total number of units across all lines (cart badge).
func (s *Session) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Session) Lines() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Clear empties the cart. Called after a successful order submission.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
}

// ToggleFavorite flips itemID in the favorite set and reports the new state.
func (s *Session) ToggleFavorite(itemID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.favorites[itemID] {
		delete(s.favorites, itemID)
		return false
	}
	s.favorites[itemID] = true
	return true
}

// Favorites returns the favorited item IDs.
func (s *Session) Favorites() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uint, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	return ids
}

// checkoutsInFlight tracks sessions with a submission outstanding. It is
// keyed by session ID rather than kept on the Session struct, so copies of
// the same session deserialized by concurrent requests (the Redis store
// builds a fresh object per request) still share the guard. Process-local;
// persistent stores never see it.
var (
	checkoutsMu       sync.Mutex
	checkoutsInFlight = make(map[string]struct{})
)

// BeginCheckout marks a submission as in flight. It returns false when a
// submission is already outstanding; at most one checkout runs per session
// ID at a time.
func (s *Session) BeginCheckout() bool {
	checkoutsMu.Lock()
	defer checkoutsMu.Unlock()

	if _, inFlight := checkoutsInFlight[s.ID]; inFlight {
		return false
	}
	checkoutsInFlight[s.ID] = struct{}{}
	return true
}

// EndCheckout clears the in-flight flag, on success and on failure alike.
func (s *Session) EndCheckout() {
	checkoutsMu.Lock()
	defer checkoutsMu.Unlock()
	delete(checkoutsInFlight, s.ID)
}

// sessionData is the wire form used by persistent stores. The checkout
// guard is process-local state keyed by session ID and is not persisted.
type sessionData struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"createdAt"`
	Lines     []CartLine `json:"lines"`
	Favorites []uint     `json:"favorites"`
}

// MarshalJSON implements json.Marshaler.
func (s *Session) MarshalJSON() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := sessionData{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Lines:     s.lines,
	}
	for id := range s.favorites {
		data.Favorites = append(data.Favorites, id)
	}
	return json.Marshal(data)
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Session) UnmarshalJSON(b []byte) error {
	var data sessionData
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ID = data.ID
	s.CreatedAt = data.CreatedAt
	s.lines = data.Lines
	s.favorites = make(map[uint]bool, len(data.Favorites))
	for _, id := range data.Favorites {
		s.favorites[id] = true
	}
	return nil
}
