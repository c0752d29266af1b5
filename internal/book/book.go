// Package book wires the catalog, the ledger store, and a persistence
// gateway into the load, select, modify, and save flow.
package book

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/banktally/internal/catalog"
	"github.com/theirongolddev/banktally/internal/ledger"
	"github.com/theirongolddev/banktally/internal/logging"
	"github.com/theirongolddev/banktally/internal/persist"
)

// Receipt confirms an accepted balance change.
type Receipt struct {
	Account catalog.Account
	Amount  decimal.Decimal
}

// Summary is everything a view needs to draw the ledger.
type Summary struct {
	Account  catalog.Account
	Balance  decimal.Decimal
	Total    decimal.Decimal
	Balances []decimal.Decimal
	Dirty    bool
}

// Book is a hydrated ledger bound to its gateway.
type Book struct {
	cat      catalog.Catalog
	store    *ledger.Store
	selector *ledger.Selector
	gw       persist.Gateway
	log      *log.Logger
}

// Open loads the ledger from gw. Read failures and corrupt data fall back to
// an empty ledger and are only logged.
func Open(ctx context.Context, gw persist.Gateway, cat catalog.Catalog, logger *log.Logger) *Book {
	if logger == nil {
		logger = logging.Discard()
	}
	st := ledger.New(cat.Len())

	snap, err := persist.Load(ctx, gw)
	if err != nil {
		logger.Warn("loading ledger failed, starting empty", logging.FieldError, err)
		snap = nil
	}
	origin := st.Hydrate(snap)

	switch origin {
	case ledger.OriginRecovered:
		logger.Warn("stored ledger was unreadable, reset to defaults", logging.FieldOrigin, origin)
	default:
		logger.Info("ledger hydrated", logging.FieldOrigin, origin, logging.FieldTotal, st.Total())
	}

	return &Book{
		cat:      cat,
		store:    st,
		selector: ledger.NewSelector(cat, st),
		gw:       gw,
		log:      logger,
	}
}

// Catalog returns the account catalog.
func (b *Book) Catalog() catalog.Catalog { return b.cat }

// Ledger exposes the underlying store for read-only inspection.
func (b *Book) Ledger() *ledger.Store { return b.store }

// Pick selects the account with the given label; unknown labels are ignored.
func (b *Book) Pick(label string) bool {
	ok := b.selector.OnUserPick(label)
	if !ok {
		b.log.Debug("ignored unknown account label", logging.FieldAccount, label)
	}
	return ok
}

// Select selects by index.
func (b *Book) Select(i int) error {
	return b.store.SelectAccount(i)
}

// Modify sets the selected account's balance from user input.
func (b *Book) Modify(raw string) (Receipt, error) {
	acct := b.selector.Current()
	amount, err := b.store.SetBalance(raw)
	if err != nil {
		b.log.Debug("rejected amount", logging.FieldAccount, acct.Label, logging.FieldError, err)
		return Receipt{Account: acct}, err
	}
	b.log.Info("balance modified", logging.FieldAccount, acct.Label, logging.FieldAmount, amount)
	return Receipt{Account: acct, Amount: amount}, nil
}

// Checkpoint serializes the current state for a later Commit.
func (b *Book) Checkpoint() ledger.Snapshot {
	return b.store.Serialize()
}

// Commit writes snap to the gateway. It never touches the ledger, so it may
// run on another goroutine while the user keeps editing; call Persisted
// afterwards from the owning goroutine.
func (b *Book) Commit(ctx context.Context, snap ledger.Snapshot) error {
	if err := persist.Save(ctx, b.gw, snap); err != nil {
		b.log.Error("save failed", logging.FieldRevision, snap.Revision, logging.FieldError, err)
		return err
	}
	b.log.Info("ledger saved", logging.FieldRevision, snap.Revision)
	return nil
}

// Persisted records that snap reached durable storage.
func (b *Book) Persisted(snap ledger.Snapshot) {
	b.store.MarkPersisted(snap.Revision)
}

// Save serializes the current state and writes it.
func (b *Book) Save(ctx context.Context) error {
	snap := b.Checkpoint()
	if err := b.Commit(ctx, snap); err != nil {
		return err
	}
	b.Persisted(snap)
	return nil
}

// View returns the derived display values for the current state.
func (b *Book) View() Summary {
	return Summary{
		Account:  b.selector.Current(),
		Balance:  b.store.CurrentBalance(),
		Total:    b.store.Total(),
		Balances: b.store.Balances(),
		Dirty:    b.store.Dirty(),
	}
}

// IsInvalidAmount reports whether err is a rejected balance input.
func IsInvalidAmount(err error) bool {
	return errors.Is(err, ledger.ErrInvalidAmount)
}

// IsWriteFailure reports whether err is a failed save.
func IsWriteFailure(err error) bool {
	return errors.Is(err, persist.ErrWriteFailure)
}
