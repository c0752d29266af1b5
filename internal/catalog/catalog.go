// Package catalog defines the fixed set of bank accounts tracked by banktally.
package catalog

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a label does not name a known account.
var ErrNotFound = errors.New("account not found")

// Account is one fixed, named account. ID is its index in the catalog.
type Account struct {
	ID    int
	Label string
}

// Catalog is an ordered, immutable list of accounts.
type Catalog struct {
	accounts []Account
}

// Default is the catalog used by the app: ten Taiwanese banks and payment
// institutions, ordered by bank code.
var Default = New(
	"(006)合作金庫(5880)",
	"(013)國泰世華(2882)",
	"(017)兆豐銀行(2886)",
	"(048)王道銀行(2897)",
	"(103)新光銀行(2888)",
	"(396)街口支付(6038)",
	"(700)中華郵政",
	"(808)玉山銀行(2884)",
	"(812)台新銀行(2887)",
	"(822)中國信託(2891)",
)

// New builds a catalog from labels; IDs follow argument order.
func New(labels ...string) Catalog {
	accounts := make([]Account, len(labels))
	for i, l := range labels {
		accounts[i] = Account{ID: i, Label: l}
	}
	return Catalog{accounts: accounts}
}

// List returns a copy of the accounts in catalog order.
func (c Catalog) List() []Account {
	out := make([]Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// Len returns the number of accounts.
func (c Catalog) Len() int {
	return len(c.accounts)
}

// Label returns the display label for index i.
func (c Catalog) Label(i int) (string, bool) {
	if i < 0 || i >= len(c.accounts) {
		return "", false
	}
	return c.accounts[i].Label, true
}

// Account returns the account at index i.
func (c Catalog) Account(i int) (Account, bool) {
	if i < 0 || i >= len(c.accounts) {
		return Account{}, false
	}
	return c.accounts[i], true
}

// IndexOf returns the index of the account with exactly this label.
func (c Catalog) IndexOf(label string) (int, error) {
	for _, a := range c.accounts {
		if a.Label == label {
			return a.ID, nil
		}
	}
	return -1, ErrNotFound
}

// Resolve accepts a label, a decimal index, or a bank code such as "808".
func (c Catalog) Resolve(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i, err := c.IndexOf(ref); err == nil {
		return i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 0 && n < len(c.accounts) && len(ref) < 3 {
		return n, nil
	}
	code := "(" + ref + ")"
	for _, a := range c.accounts {
		if strings.HasPrefix(a.Label, code) {
			return a.ID, nil
		}
	}
	return -1, ErrNotFound
}
