// Package persist moves ledger snapshots between memory and a durable
// string key-value store.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/theirongolddev/banktally/internal/ledger"
)

// Keys under which the ledger is stored.
const (
	KeySavings       = "bankSavings"
	KeySelectedIndex = "selectedIndex"
)

var (
	// ErrReadFailure wraps any error returned while loading a snapshot.
	ErrReadFailure = errors.New("persistence read failure")
	// ErrWriteFailure wraps any error returned while saving a snapshot.
	ErrWriteFailure = errors.New("persistence write failure")
)

// Gateway is a durable map from string keys to string values.
type Gateway interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// BatchSetter is implemented by gateways that can write several keys at once.
type BatchSetter interface {
	SetAll(ctx context.Context, values map[string]string) error
}

// Deleter is implemented by gateways that can remove keys.
type Deleter interface {
	Delete(ctx context.Context, key string) error
}

// ErrClearUnsupported is returned by Clear for gateways without Delete.
var ErrClearUnsupported = errors.New("gateway cannot delete keys")

// Clear removes both ledger keys, so the next Load finds nothing and the
// ledger starts from defaults.
func Clear(ctx context.Context, gw Gateway) error {
	d, ok := gw.(Deleter)
	if !ok {
		return ErrClearUnsupported
	}
	for _, key := range []string{KeySavings, KeySelectedIndex} {
		if err := d.Delete(ctx, key); err != nil {
			return fmt.Errorf("%w: delete %s: %w", ErrWriteFailure, key, err)
		}
	}
	return nil
}

// Load reads the ledger snapshot. It returns a nil snapshot when neither key
// has ever been written.
func Load(ctx context.Context, gw Gateway) (*ledger.Snapshot, error) {
	savings, hasSavings, err := gw.Get(ctx, KeySavings)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrReadFailure, KeySavings, err)
	}
	index, hasIndex, err := gw.Get(ctx, KeySelectedIndex)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %w", ErrReadFailure, KeySelectedIndex, err)
	}
	if !hasSavings && !hasIndex {
		return nil, nil
	}
	return &ledger.Snapshot{Savings: savings, SelectedIndex: index}, nil
}

// Save writes snap under both keys.
func Save(ctx context.Context, gw Gateway, snap ledger.Snapshot) error {
	if b, ok := gw.(BatchSetter); ok {
		err := b.SetAll(ctx, map[string]string{
			KeySavings:       snap.Savings,
			KeySelectedIndex: snap.SelectedIndex,
		})
		if err != nil {
			return fmt.Errorf("%w: %w", ErrWriteFailure, err)
		}
		return nil
	}

	if err := gw.Set(ctx, KeySavings, snap.Savings); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrWriteFailure, KeySavings, err)
	}
	if err := gw.Set(ctx, KeySelectedIndex, snap.SelectedIndex); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrWriteFailure, KeySelectedIndex, err)
	}
	return nil
}
