package ledger

import (
	"testing"

	"github.com/theirongolddev/banktally/internal/catalog"
)

func TestSelectorOnUserPick(t *testing.T) {
	st := New(catalog.Default.Len())
	st.Hydrate(nil)
	sel := NewSelector(catalog.Default, st)

	if !sel.OnUserPick("(048)王道銀行(2897)") {
		t.Fatal("OnUserPick(known label) = false")
	}
	if st.Selected() != 3 {
		t.Fatalf("Selected = %d, want 3", st.Selected())
	}
	if got := sel.Current().Label; got != "(048)王道銀行(2897)" {
		t.Fatalf("Current = %q", got)
	}

	if sel.OnUserPick("(000)Nowhere") {
		t.Fatal("OnUserPick(unknown label) = true")
	}
	if st.Selected() != 3 {
		t.Fatalf("unknown label moved selection to %d", st.Selected())
	}
}
