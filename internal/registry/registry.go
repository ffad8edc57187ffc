package registry

import (
	"fmt"
	"sort"

	"ambi-feed/internal/model"
)

// Registry is the account map plus the active selection. Every mutating
// operation returns a new registry; the receiver is never modified, so
// state transitions stay auditable.
type Registry struct {
	Accounts map[string]model.Account
	ActiveID string
}

// New builds a registry from a list of accounts. When activeID does not
// name a known account, the first id in sorted order becomes active.
func New(accounts []model.Account, activeID string) Registry {
	m := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		m[a.ID] = a
	}
	r := Registry{Accounts: m, ActiveID: activeID}
	if _, ok := m[activeID]; !ok {
		r.ActiveID = firstID(m)
	}
	return r
}

// Active returns the selected account, if any.
func (r Registry) Active() (model.Account, bool) {
	a, ok := r.Accounts[r.ActiveID]
	return a, ok
}

// IDs returns all account ids in sorted order.
func (r Registry) IDs() []string {
	ids := make([]string, 0, len(r.Accounts))
	for id := range r.Accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Add inserts or replaces an account. An empty registry makes the new
// account active.
func (r Registry) Add(acc model.Account) (Registry, error) {
	if err := acc.Validate(); err != nil {
		return r, err
	}
	next := r.clone()
	next.Accounts[acc.ID] = acc
	if next.ActiveID == "" {
		next.ActiveID = acc.ID
	}
	return next, nil
}

// Remove deletes an account. Removing the active account reassigns the
// selection to the first remaining id in sorted order; removing the last
// account leaves the selection empty.
func (r Registry) Remove(id string) (Registry, error) {
	if _, ok := r.Accounts[id]; !ok {
		return r, fmt.Errorf("account not found: %s", id)
	}
	next := r.clone()
	delete(next.Accounts, id)
	if next.ActiveID == id {
		next.ActiveID = firstID(next.Accounts)
	}
	return next, nil
}

// SetActive moves the selection to a known account id.
func (r Registry) SetActive(id string) (Registry, error) {
	if _, ok := r.Accounts[id]; !ok {
		return r, fmt.Errorf("account not found: %s", id)
	}
	next := r.clone()
	next.ActiveID = id
	return next, nil
}

func (r Registry) clone() Registry {
	m := make(map[string]model.Account, len(r.Accounts)+1)
	for id, a := range r.Accounts {
		m[id] = a
	}
	return Registry{Accounts: m, ActiveID: r.ActiveID}
}

func firstID(m map[string]model.Account) string {
	first := ""
	for id := range m {
		if first == "" || id < first {
			first = id
		}
	}
	return first
}
