package ledger

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

func hydrated(t *testing.T) *Store {
	t.Helper()
	s := New(10)
	if o := s.Hydrate(nil); o != OriginDefault {
		t.Fatalf("Hydrate(nil) origin = %v, want default", o)
	}
	return s
}

func TestConcreteScenario(t *testing.T) {
	s := hydrated(t)

	if err := s.SelectAccount(7); err != nil {
		t.Fatalf("SelectAccount(7): %v", err)
	}
	got, err := s.SetBalance("250.5")
	if err != nil {
		t.Fatalf("SetBalance(250.5): %v", err)
	}
	if !got.Equal(dec(t, "250.5")) {
		t.Fatalf("SetBalance returned %s, want 250.5", got)
	}
	if !s.CurrentBalance().Equal(dec(t, "250.5")) {
		t.Fatalf("CurrentBalance = %s, want 250.5", s.CurrentBalance())
	}
	if !s.Total().Equal(dec(t, "250.5")) {
		t.Fatalf("Total = %s, want 250.5", s.Total())
	}

	if err := s.SelectAccount(0); err != nil {
		t.Fatalf("SelectAccount(0): %v", err)
	}
	if _, err := s.SetBalance("1000"); err != nil {
		t.Fatalf("SetBalance(1000): %v", err)
	}
	if !s.Total().Equal(dec(t, "1250.5")) {
		t.Fatalf("Total = %s, want 1250.5", s.Total())
	}

	snap := s.Serialize()
	if snap.Savings != "[1000,0,0,0,0,0,0,250.5,0,0]" {
		t.Fatalf("Savings = %s", snap.Savings)
	}
	if snap.SelectedIndex != "0" {
		t.Fatalf("SelectedIndex = %q, want 0", snap.SelectedIndex)
	}

	r := New(10)
	if o := r.Hydrate(&snap); o != OriginRestored {
		t.Fatalf("Hydrate origin = %v, want restored", o)
	}
	if !r.Balance(0).Equal(dec(t, "1000")) || !r.Balance(7).Equal(dec(t, "250.5")) {
		t.Fatalf("round-trip balances = %v", r.Balances())
	}
	if !r.Total().Equal(s.Total()) {
		t.Fatalf("round-trip total = %s, want %s", r.Total(), s.Total())
	}
}

func TestSelectionIsolation(t *testing.T) {
	s := hydrated(t)
	_ = s.SelectAccount(0)
	if _, err := s.SetBalance("42"); err != nil {
		t.Fatal(err)
	}

	_ = s.SelectAccount(3)
	if _, err := s.SetBalance("500"); err != nil {
		t.Fatal(err)
	}
	_ = s.SelectAccount(0)

	if !s.CurrentBalance().Equal(dec(t, "42")) {
		t.Fatalf("index 0 balance = %s after writing index 3, want 42", s.CurrentBalance())
	}
}

func TestSetBalanceRejectsInvalid(t *testing.T) {
	s := hydrated(t)
	_ = s.SelectAccount(2)
	if _, err := s.SetBalance("12.75"); err != nil {
		t.Fatal(err)
	}
	before := s.Serialize()

	for _, raw := range []string{"", "   ", "-1", "-0.01", "abc", "NaN", "Infinity", "1,000", "12abc", ".",
		"1e2000000000", "1e-2000000000", "1e65", "0.00000000000000000000000000000000000000000000000000000000000000001"} {
		if _, err := s.SetBalance(raw); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("SetBalance(%q) err = %v, want ErrInvalidAmount", raw, err)
		}
	}

	after := s.Serialize()
	if after.Savings != before.Savings || after.Revision != before.Revision {
		t.Fatalf("rejected input changed ledger: %s -> %s", before.Savings, after.Savings)
	}
}

func TestSetBalanceAcceptsZeroAndDecimals(t *testing.T) {
	s := hydrated(t)
	for _, tc := range []struct{ raw, want string }{
		{"0", "0"},
		{"-0", "0"},
		{" 15 ", "15"},
		{"0.10", "0.1"},
		{"1e3", "1000"},
		{"0e2000000000", "0"},
		{"1e63", "1" + strings.Repeat("0", 63)},
		{"0." + strings.Repeat("0", 63) + "1", "0." + strings.Repeat("0", 63) + "1"},
	} {
		got, err := s.SetBalance(tc.raw)
		if err != nil {
			t.Fatalf("SetBalance(%q): %v", tc.raw, err)
		}
		if got.String() != tc.want {
			t.Fatalf("SetBalance(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestTotalTracksSingleIndexDelta(t *testing.T) {
	s := hydrated(t)
	inputs := []struct {
		idx int
		raw string
	}{
		{1, "100"}, {4, "33.3"}, {1, "20"}, {9, "0.7"}, {4, "0"},
	}
	for _, in := range inputs {
		_ = s.SelectAccount(in.idx)
		old := s.CurrentBalance()
		prevTotal := s.Total()

		v, err := s.SetBalance(in.raw)
		if err != nil {
			t.Fatal(err)
		}
		wantTotal := prevTotal.Add(v.Sub(old))
		if !s.Total().Equal(wantTotal) {
			t.Fatalf("after %v total = %s, want %s", in, s.Total(), wantTotal)
		}

		sum := decimal.Zero
		for _, b := range s.Balances() {
			sum = sum.Add(b)
		}
		if !s.Total().Equal(sum) {
			t.Fatalf("Total = %s, sum of balances = %s", s.Total(), sum)
		}
	}
}

func TestSelectAccountOutOfRange(t *testing.T) {
	s := hydrated(t)
	for _, i := range []int{-1, 10, 99} {
		if err := s.SelectAccount(i); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("SelectAccount(%d) err = %v, want ErrOutOfRange", i, err)
		}
	}
	if err := s.SelectAccount(9); err != nil {
		t.Fatalf("SelectAccount(9): %v", err)
	}
	if s.Selected() != 9 {
		t.Fatalf("Selected = %d, want 9", s.Selected())
	}
}

func TestMutationsRequireHydration(t *testing.T) {
	s := New(10)
	if err := s.SelectAccount(1); !errors.Is(err, ErrNotHydrated) {
		t.Fatalf("SelectAccount before hydrate err = %v", err)
	}
	if _, err := s.SetBalance("1"); !errors.Is(err, ErrNotHydrated) {
		t.Fatalf("SetBalance before hydrate err = %v", err)
	}
	if s.State() != Uninitialized {
		t.Fatalf("State = %v, want uninitialized", s.State())
	}
}

func TestHydrateFallbacks(t *testing.T) {
	cases := []struct {
		name   string
		snap   *Snapshot
		origin Origin
	}{
		{"nil", nil, OriginDefault},
		{"empty", &Snapshot{}, OriginDefault},
		{"bad json", &Snapshot{Savings: "[1,2", SelectedIndex: "3"}, OriginRecovered},
		{"short", &Snapshot{Savings: "[1,2,3]", SelectedIndex: "1"}, OriginRecovered},
		{"negative", &Snapshot{Savings: "[1,0,0,0,0,0,0,-5,0,0]"}, OriginRecovered},
		{"null entry", &Snapshot{Savings: "[1,null,0,0,0,0,0,0,0,0]"}, OriginRecovered},
		{"object", &Snapshot{Savings: `{"a":1}`}, OriginRecovered},
		{"huge exponent", &Snapshot{Savings: "[1e2000000000,0,0,0,0,0,0,0,0,0]"}, OriginRecovered},
		{"tiny exponent", &Snapshot{Savings: "[1e-2000000000,0,0,0,0,0,0,0,0,0]"}, OriginRecovered},
		{"quoted number", &Snapshot{Savings: `[1,"5",0,0,0,0,0,0,0,0]`}, OriginRecovered},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(10)
			if o := s.Hydrate(tc.snap); o != tc.origin {
				t.Fatalf("origin = %v, want %v", o, tc.origin)
			}
			if !s.Total().IsZero() {
				t.Fatalf("Total = %s, want 0", s.Total())
			}
			if s.Selected() != 0 {
				t.Fatalf("Selected = %d, want 0", s.Selected())
			}
			if s.State() != Hydrated {
				t.Fatalf("State = %v, want hydrated", s.State())
			}
		})
	}
}

func TestHydrateBadIndexKeepsBalances(t *testing.T) {
	s := New(10)
	o := s.Hydrate(&Snapshot{Savings: "[5,0,0,0,0,0,0,0,0,0]", SelectedIndex: "12"})
	if o != OriginRecovered {
		t.Fatalf("origin = %v, want recovered", o)
	}
	if s.Selected() != 0 {
		t.Fatalf("Selected = %d, want 0", s.Selected())
	}
	if !s.Total().Equal(dec(t, "5")) {
		t.Fatalf("Total = %s, want 5", s.Total())
	}
}

func TestHydrateOnlyOnce(t *testing.T) {
	s := hydrated(t)
	_, _ = s.SetBalance("9")

	snap := &Snapshot{Savings: "[1,1,1,1,1,1,1,1,1,1]", SelectedIndex: "4"}
	s.Hydrate(snap)

	if !s.Total().Equal(dec(t, "9")) {
		t.Fatalf("second Hydrate overwrote ledger: total = %s", s.Total())
	}
}

func TestRoundTripArbitraryState(t *testing.T) {
	s := hydrated(t)
	values := []string{"0.01", "123456789.123456789", "7", "0", "1e-3", "99.90", "3", "0", "250.5", "1000000"}
	for i, v := range values {
		_ = s.SelectAccount(i)
		if _, err := s.SetBalance(v); err != nil {
			t.Fatal(err)
		}
	}
	_ = s.SelectAccount(5)

	snap := s.Serialize()
	if strings.ContainsAny(snap.Savings, `"e`) {
		t.Fatalf("Savings should be plain numbers: %s", snap.Savings)
	}

	r := New(10)
	r.Hydrate(&snap)
	if r.Selected() != 5 {
		t.Fatalf("Selected = %d, want 5", r.Selected())
	}
	for i := range values {
		if !r.Balance(i).Equal(s.Balance(i)) {
			t.Fatalf("balance %d = %s, want %s", i, r.Balance(i), s.Balance(i))
		}
	}
	if r.Serialize().Savings != snap.Savings {
		t.Fatalf("re-serialized %s, want %s", r.Serialize().Savings, snap.Savings)
	}
}

func TestStateTransitions(t *testing.T) {
	s := hydrated(t)
	if s.State() != Hydrated || s.Dirty() {
		t.Fatalf("State = %v dirty=%v after hydrate", s.State(), s.Dirty())
	}

	_ = s.SelectAccount(1)
	if s.State() != Mutated || !s.Dirty() {
		t.Fatalf("State = %v after select", s.State())
	}

	snap := s.Serialize()
	_, _ = s.SetBalance("10") // edit while a save is in flight
	s.MarkPersisted(snap.Revision)
	if s.State() != Mutated {
		t.Fatalf("stale save marked store %v", s.State())
	}

	s.MarkPersisted(s.Serialize().Revision)
	if s.State() != Persisted || s.Dirty() {
		t.Fatalf("State = %v after save, want persisted", s.State())
	}

	_ = s.SelectAccount(1) // same index: not a mutation
	if s.State() != Persisted {
		t.Fatalf("re-selecting same index changed state to %v", s.State())
	}
}
