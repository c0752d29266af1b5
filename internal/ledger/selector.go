package ledger

import "github.com/theirongolddev/banktally/internal/catalog"

// Selector turns an account label picked by the user into a selection on
// the store. It holds only the immutable catalog.
type Selector struct {
	cat   catalog.Catalog
	store *Store
}

// NewSelector returns a selector routing picks from cat to st.
func NewSelector(cat catalog.Catalog, st *Store) *Selector {
	return &Selector{cat: cat, store: st}
}

// OnUserPick selects the account named label. Unknown labels leave the
// selection unchanged and report false.
func (s *Selector) OnUserPick(label string) bool {
	i, err := s.cat.IndexOf(label)
	if err != nil {
		return false
	}
	return s.store.SelectAccount(i) == nil
}

// Current returns the selected account.
func (s *Selector) Current() catalog.Account {
	a, _ := s.cat.Account(s.store.Selected())
	return a
}
