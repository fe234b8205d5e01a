package domain

import "sort"

// Effect is one balance delta against one account. An effect set is the
// full, ordered outcome of compiling a business event.
type Effect struct {
	OwnerID string
	Kind    AccountKind
	Delta   int64
	// Guarded effects refuse to take the target balance negative.
	Guarded bool
}

// Key returns the registry key the effect applies to.
func (e Effect) Key() AccountKey {
	return AccountKey{OwnerID: e.OwnerID, Kind: e.Kind}
}

// EffectSet is an ordered list of effects produced by the rule compiler.
type EffectSet []Effect

// Negate returns the exact reversal of the set, preserving order.
func (s EffectSet) Negate() EffectSet {
	out := make(EffectSet, len(s))
	for i, e := range s {
		e.Delta = -e.Delta
		e.Guarded = false
		out[i] = e
	}
	return out
}

// Keys returns the unique account keys of the set sorted by
// (OwnerID, Kind), the canonical lock-acquisition order.
func (s EffectSet) Keys() []AccountKey {
	seen := make(map[AccountKey]bool, len(s))

	var keys []AccountKey
	for _, e := range s {
		k := e.Key()
		if !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	return keys
}

// Total returns the aggregate delta per account key.
func (s EffectSet) Total() map[AccountKey]int64 {
	totals := make(map[AccountKey]int64, len(s))
	for _, e := range s {
		totals[e.Key()] += e.Delta
	}
	return totals
}
