package fragment

// Override stores a fragment at a fixed table slot, replacing whatever the
// base array put there. Index is never negative; pointer lines only carry
// decimal digits.
type Override struct {
	Index    int
	Fragment any
}

type slot struct {
	value   any
	present bool
}

// Table is the indexable store of all fragments. It is built once from the
// base array plus ordered overrides and is read-only afterwards, so a single
// table can serve concurrent decode calls.
type Table struct {
	slots     []slot
	baseLen   int
	overrides int
}

// Build creates a table from the base fragments and the overrides in input
// order. An override beyond the current length grows the table and leaves
// the intervening slots absent. Later overrides for the same index replace
// earlier ones.
func Build(base []any, overrides []Override) *Table {
	slots := make([]slot, len(base))
	for i, frag := range base {
		slots[i] = slot{value: frag, present: true}
	}

	for _, o := range overrides {
		if o.Index < 0 {
			continue
		}
		for o.Index >= len(slots) {
			slots = append(slots, slot{})
		}
		slots[o.Index] = slot{value: o.Fragment, present: true}
	}

	return &Table{
		slots:     slots,
		baseLen:   len(base),
		overrides: len(overrides),
	}
}

// Get returns the fragment at index and whether the slot was ever
// populated. Indexes outside [0, Len()) report an absent slot.
func (t *Table) Get(index int) (any, bool) {
	if index < 0 || index >= len(t.slots) {
		return nil, false
	}
	s := t.slots[index]
	return s.value, s.present
}

// Len reports the table size, including absent slots.
func (t *Table) Len() int {
	return len(t.slots)
}

// BaseLen reports how many slots came from the base array.
func (t *Table) BaseLen() int {
	return t.baseLen
}

// Overrides reports how many override lines were applied.
func (t *Table) Overrides() int {
	return t.overrides
}
