package core

import (
	"encoding/json"
	"math"
	"strconv"
)

// Distance is a path cost. Infinity marks a node that has not been reached.
type Distance int64

// Infinity is the distance of an unreached node.
const Infinity Distance = math.MaxInt64

// IsInf reports whether d is Infinity.
func (d Distance) IsInf() bool { return d == Infinity }

// Add returns d+w, saturating at Infinity. Adding to Infinity stays Infinity.
func (d Distance) Add(w int64) Distance {
	if d == Infinity || (w > 0 && int64(d) > math.MaxInt64-w) {
		return Infinity
	}

	return d + Distance(w)
}

// String renders the distance, using "∞" for Infinity.
func (d Distance) String() string {
	if d.IsInf() {
		return "∞"
	}

	return strconv.FormatInt(int64(d), 10)
}

// MarshalJSON encodes Infinity as null and finite values as numbers.
func (d Distance) MarshalJSON() ([]byte, error) {
	if d.IsInf() {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(int64(d), 10)), nil
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (d *Distance) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Infinity
		return nil
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return err
	}
	*d = Distance(v)

	return nil
}

// DistanceMap maps node IDs to their current distance.
type DistanceMap map[string]Distance

// PredecessorMap maps node IDs to the node they were reached from.
// The empty string means no predecessor.
type PredecessorMap map[string]string

// MarshalJSON encodes a missing predecessor as null.
func (p PredecessorMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]*string, len(p))
	for k, v := range p {
		if v == "" {
			out[k] = nil
			continue
		}
		v := v
		out[k] = &v
	}

	return json.Marshal(out)
}
