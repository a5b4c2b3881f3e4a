package reconcile

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Value is an EP List AA cell coerced into the integer domain of the mapped C flag.
// Raw keeps the cell text for reporting.
type Value struct {
	Raw     string
	Int     int64
	Present bool
	Numeric bool
}

// ParseValue coerces an AA cell. Blank cells are absent; integral decimals
// ("1", "1.0", "1.000000") are numeric; anything else is present but can never
// equal a mapped C flag.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{Raw: raw}
	}

	v := Value{Raw: raw, Present: true}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return v
	}
	if !d.Equal(d.Truncate(0)) {
		return v
	}

	v.Int = d.IntPart()
	v.Numeric = true
	return v
}

// Equals reports whether the value agrees with a mapped C flag.
func (v Value) Equals(mapped int) bool {
	return v.Present && v.Numeric && v.Int == int64(mapped)
}

// MapC maps a C flag to 1 ("-") or 0 ("S"). Other values, blanks included, have no mapping.
func MapC(c string) (int, bool) {
	mapped, ok := cFlagMapping[c]
	return mapped, ok
}

func combine(src SourceRecord) CombinedRecord {
	rec := CombinedRecord{SourceRecord: src}
	if !src.HasC {
		return rec
	}
	rec.CMapped, rec.IsMapped = MapC(src.C)
	return rec
}

// classify returns the discrepancy for a joined row, if any. A missing EP List
// match wins over an unmapped C flag, which wins over a value mismatch.
func classify(row JoinedRecord) (Discrepancy, bool) {
	d := Discrepancy{
		ComponentID: row.ComponentID,
		Symbol:      row.Symbol,
		FileC:       row.C,
	}

	switch {
	case !row.Matched || !row.AA.Present:
		d.Field = FieldNoMatch
		return d, true
	case !row.IsMapped:
		d.Field = FieldUnrecognized
		d.EPAA = row.AA.Raw
		return d, true
	case !row.AA.Equals(row.CMapped):
		d.Field = FieldCvsAA
		d.EPAA = row.AA.Raw
		return d, true
	}

	return Discrepancy{}, false
}
