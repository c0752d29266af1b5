// Package ledger holds the in-memory balance vector, the selected account
// cursor, and the rules for changing them.
package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a balance input is unparseable or negative.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOutOfRange is returned when a selection index is outside the catalog.
	ErrOutOfRange = errors.New("account index out of range")
	// ErrNotHydrated is returned for mutations attempted before Hydrate.
	ErrNotHydrated = errors.New("ledger not hydrated")
)

// State is the lifecycle position of a Store.
type State int

// Lifecycle states. Mutated and Persisted alternate after hydration.
const (
	Uninitialized State = iota
	Hydrated
	Mutated
	Persisted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Hydrated:
		return "hydrated"
	case Mutated:
		return "mutated"
	case Persisted:
		return "persisted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Store exclusively owns the balances and the selected index.
// It is not safe for concurrent use; callers serialize user actions.
type Store struct {
	balances []decimal.Decimal
	selected int
	state    State
	origin   Origin
	revision uint64
}

// New returns an uninitialized store for n accounts, all balances zero.
func New(n int) *Store {
	return &Store{
		balances: zeroBalances(n),
	}
}

func zeroBalances(n int) []decimal.Decimal {
	b := make([]decimal.Decimal, n)
	for i := range b {
		b[i] = decimal.Zero
	}
	return b
}

// Len returns the number of balance slots.
func (s *Store) Len() int { return len(s.balances) }

// State returns the current lifecycle state.
func (s *Store) State() State { return s.state }

// Origin reports where the hydrated values came from.
func (s *Store) Origin() Origin { return s.origin }

// Revision increases by one for every accepted mutation.
func (s *Store) Revision() uint64 { return s.revision }

// Dirty reports whether there are in-memory changes not yet saved.
func (s *Store) Dirty() bool { return s.state == Mutated }

// Selected returns the index of the selected account.
func (s *Store) Selected() int { return s.selected }

// SelectAccount moves the cursor to index i. Balances are untouched.
func (s *Store) SelectAccount(i int) error {
	if s.state == Uninitialized {
		return ErrNotHydrated
	}
	if i < 0 || i >= len(s.balances) {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrOutOfRange, i, len(s.balances)-1)
	}
	if i == s.selected {
		return nil
	}
	s.selected = i
	s.touch()
	return nil
}

// CurrentBalance returns the balance of the selected account.
func (s *Store) CurrentBalance() decimal.Decimal {
	return s.balances[s.selected]
}

// Balance returns the balance at index i, or zero when i is out of range.
func (s *Store) Balance(i int) decimal.Decimal {
	if i < 0 || i >= len(s.balances) {
		return decimal.Zero
	}
	return s.balances[i]
}

// SetBalance parses raw and stores it as the selected account's balance.
// Negative and unparseable input is rejected and leaves the ledger unchanged.
func (s *Store) SetBalance(raw string) (decimal.Decimal, error) {
	if s.state == Uninitialized {
		return decimal.Zero, ErrNotHydrated
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, err
	}
	s.balances[s.selected] = amount
	s.touch()
	return amount, nil
}

// ParseAmount parses a user-entered balance. Zero is allowed.
func ParseAmount(raw string) (decimal.Decimal, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, raw)
	}
	if d.IsZero() {
		// normalizes "-0", "0.000" and "0e9"
		return decimal.Zero, nil
	}
	if !withinDigits(d) {
		return decimal.Zero, fmt.Errorf("%w: %q has more than %d digits", ErrInvalidAmount, raw, maxDigits)
	}
	return d, nil
}

// maxDigits bounds the integer digits and the fractional digits of a balance.
// Rendering expands the exponent, so "1e2000000000" must never be stored.
const maxDigits = 64

// withinDigits reports whether a non-negative d fits in maxDigits.
func withinDigits(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxDigits || exp > maxDigits {
		return false
	}
	return int64(len(d.Coefficient().String()))+exp <= maxDigits
}

// Total returns the sum of all balances.
func (s *Store) Total() decimal.Decimal {
	return decimal.Sum(decimal.Zero, s.balances...)
}

// Balances returns a copy of the balance vector.
func (s *Store) Balances() []decimal.Decimal {
	out := make([]decimal.Decimal, len(s.balances))
	copy(out, s.balances)
	return out
}

// MarkPersisted records a successful save of the snapshot taken at rev.
// A save that finished after newer edits leaves the store Mutated.
func (s *Store) MarkPersisted(rev uint64) {
	if s.state == Uninitialized || rev != s.revision {
		return
	}
	s.state = Persisted
}

func (s *Store) touch() {
	s.revision++
	s.state = Mutated
}
