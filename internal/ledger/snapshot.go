package ledger

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Snapshot is the durable form of a ledger: the savings vector as a JSON
// array of numbers and the selected index as a decimal string.
type Snapshot struct {
	Savings       string
	SelectedIndex string

	// Revision is the store revision the snapshot was taken at. Not persisted.
	Revision uint64
}

// Origin describes how Hydrate arrived at the in-memory values.
type Origin int

const (
	// OriginDefault means no snapshot existed; the zero ledger was used.
	OriginDefault Origin = iota
	// OriginRestored means the snapshot was applied as stored.
	OriginRestored
	// OriginRecovered means part or all of the snapshot was unusable and
	// the zero default was substituted for it.
	OriginRecovered
)

func (o Origin) String() string {
	switch o {
	case OriginDefault:
		return "default"
	case OriginRestored:
		return "restored"
	case OriginRecovered:
		return "recovered"
	default:
		return "unknown"
	}
}

// Serialize returns the durable representation of the current state.
func (s *Store) Serialize() Snapshot {
	nums := make([]json.Number, len(s.balances))
	for i, b := range s.balances {
		nums[i] = json.Number(b.String())
	}
	// Marshalling []json.Number cannot fail.
	data, _ := json.Marshal(nums)
	return Snapshot{
		Savings:       string(data),
		SelectedIndex: strconv.Itoa(s.selected),
		Revision:      s.revision,
	}
}

// Hydrate loads snap into an uninitialized store. A nil or unusable snapshot
// falls back to all-zero balances and index 0; it never fails. Calls after
// the first are ignored.
func (s *Store) Hydrate(snap *Snapshot) Origin {
	if s.state != Uninitialized {
		return s.origin
	}
	s.state = Hydrated
	s.balances = zeroBalances(len(s.balances))
	s.selected = 0
	s.origin = OriginDefault

	if snap == nil || (snap.Savings == "" && snap.SelectedIndex == "") {
		return s.origin
	}
	s.origin = OriginRestored

	if snap.Savings != "" {
		balances, ok := decodeSavings(snap.Savings, len(s.balances))
		if !ok {
			s.origin = OriginRecovered
			return s.origin
		}
		s.balances = balances
	}

	if snap.SelectedIndex != "" {
		i, err := strconv.Atoi(strings.TrimSpace(snap.SelectedIndex))
		if err != nil || i < 0 || i >= len(s.balances) {
			s.origin = OriginRecovered
			return s.origin
		}
		s.selected = i
	}
	return s.origin
}

// decodeSavings accepts exactly n finite, non-negative JSON numbers of at
// most maxDigits integer and fractional digits.
// Quoted numbers and nulls are rejected.
func decodeSavings(data string, n int) ([]decimal.Decimal, bool) {
	var raws []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raws); err != nil {
		return nil, false
	}
	if len(raws) != n {
		return nil, false
	}
	out := make([]decimal.Decimal, n)
	for i, raw := range raws {
		var num json.Number
		if len(raw) == 0 || raw[0] == '"' || json.Unmarshal(raw, &num) != nil || num == "" {
			return nil, false
		}
		d, err := decimal.NewFromString(num.String())
		if err != nil || d.IsNegative() {
			return nil, false
		}
		if d.IsZero() {
			d = decimal.Zero
		} else if !withinDigits(d) {
			return nil, false
		}
		out[i] = d
	}
	return out, true
}
