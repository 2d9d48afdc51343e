package domain

import "github.com/shopspring/decimal"

// Record is a single (name, amount) entry taken from one source document.
type Record struct {
	Name        string              `json:"name"`
	Amount      decimal.NullDecimal `json:"amount"`
	SecondaryID string              `json:"secondary_id,omitempty"` // e.g. a CPF
	Origin      string              `json:"origin,omitempty"`
}

// Dataset maps a name to its record and remembers insertion order.
// Putting a name that already exists replaces the record in place, so the
// last occurrence of a name wins while its first position is kept.
type Dataset struct {
	Origin  string
	records map[string]Record
	order   []string
}

// NewDataset creates an empty dataset tagged with the given origin.
func NewDataset(origin string) *Dataset {
	return &Dataset{
		Origin:  origin,
		records: make(map[string]Record),
	}
}

// Put inserts or replaces a record. Records without an origin inherit the
// dataset's origin.
func (d *Dataset) Put(r Record) {
	if r.Origin == "" {
		r.Origin = d.Origin
	}
	if _, ok := d.records[r.Name]; !ok {
		d.order = append(d.order, r.Name)
	}
	d.records[r.Name] = r
}

// Get looks a name up verbatim.
func (d *Dataset) Get(name string) (Record, bool) {
	if d == nil {
		return Record{}, false
	}
	r, ok := d.records[name]
	return r, ok
}

// Len returns the number of distinct names.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.order)
}

// Names returns the names in insertion order.
func (d *Dataset) Names() []string {
	if d == nil {
		return nil
	}
	names := make([]string, len(d.order))
	copy(names, d.order)
	return names
}

// Records returns the records in insertion order.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	out := make([]Record, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.records[name])
	}
	return out
}

// Merge combines several datasets into one reference. Records keep their own
// origin; when a name appears in more than one dataset the first one wins, so
// the name is a single candidate when matching against the merged reference.
func Merge(origin string, sets ...*Dataset) *Dataset {
	merged := NewDataset(origin)
	for _, set := range sets {
		for _, r := range set.Records() {
			if _, ok := merged.records[r.Name]; ok {
				continue
			}
			merged.Put(r)
		}
	}
	return merged
}

// Query is a name to resolve against a reference dataset.
type Query struct {
	Name   string
	Amount decimal.NullDecimal
	Source string // file the name was read from
}

// QueriesFrom turns every record of a dataset into a query, in order.
func QueriesFrom(d *Dataset) []Query {
	records := d.Records()
	queries := make([]Query, 0, len(records))
	for _, r := range records {
		queries = append(queries, Query{Name: r.Name, Amount: r.Amount, Source: r.Origin})
	}
	return queries
}
