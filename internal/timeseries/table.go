package timeseries

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"
)

// Point is a single row of a Table: a timestamp and an optional value.
// A nil Value marks a missing observation.
type Point struct {
	Time  time.Time
	Value *float64
}

// Table is an ordered, single-column, time-indexed series. It replaces the
// labeled-dataframe abstraction: one value column with a name, rows keyed by
// timestamp once cleaned and sorted.
type Table struct {
	column string
	points []Point
}

// New builds a Table over the given points as-is; no cleaning is applied.
func New(column string, points []Point) *Table {
	return &Table{
		column: column,
		points: points,
	}
}

// Column returns the value column name.
func (t *Table) Column() string {
	return t.column
}

// Rename changes the value column name.
func (t *Table) Rename(column string) {
	t.column = column
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.points)
}

// Points returns the underlying rows in their current order.
func (t *Table) Points() []Point {
	return t.points
}

// Head returns a new Table holding at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.points) {
		n = len(t.points)
	}
	if n < 0 {
		n = 0
	}
	return &Table{
		column: t.column,
		points: t.points[:n],
	}
}

// DropMissingTime removes rows whose timestamp is the zero time. Rows without
// a usable index key cannot be kept.
func (t *Table) DropMissingTime() {
	kept := t.points[:0]
	for _, p := range t.points {
		if !p.Time.IsZero() {
			kept = append(kept, p)
		}
	}
	t.points = kept
}

// DedupKeepLast removes rows sharing a timestamp, keeping the last occurrence.
// The surviving rows retain their relative order.
func (t *Table) DedupKeepLast() {
	last := make(map[int64]int, len(t.points))
	for i, p := range t.points {
		last[p.Time.UnixNano()] = i
	}

	kept := t.points[:0]
	for i, p := range t.points {
		if last[p.Time.UnixNano()] == i {
			kept = append(kept, p)
		}
	}
	t.points = kept
}

// SortByTime sorts rows ascending by timestamp. The sort is stable.
func (t *Table) SortByTime() {
	sort.SliceStable(t.points, func(i, j int) bool {
		return t.points[i].Time.Before(t.points[j].Time)
	})
}

// Lookup returns the value stored under the given timestamp. It requires the
// table to be sorted (see SortByTime); the index is searched binarily.
func (t *Table) Lookup(ts time.Time) (*float64, bool) {
	i := sort.Search(len(t.points), func(i int) bool {
		return !t.points[i].Time.Before(ts)
	})
	if i < len(t.points) && t.points[i].Time.Equal(ts) {
		return t.points[i].Value, true
	}
	return nil, false
}

// MarshalJSON encodes the table as an array of row objects, using the column
// name as the value key, e.g. {"time":"...","temp_2m_celsius":2.1}. Missing
// values encode as null.
func (t *Table) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')

	key, err := json.Marshal(t.column)
	if err != nil {
		return nil, err
	}

	for i, p := range t.points {
		if i > 0 {
			buf.WriteByte(',')
		}
		ts, err := json.Marshal(p.Time.Format(time.RFC3339))
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(p.Value)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`{"time":`)
		buf.Write(ts)
		buf.WriteByte(',')
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		buf.WriteByte('}')
	}

	buf.WriteByte(']')
	return buf.Bytes(), nil
}
