package news

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// ID identifies a post. The feed may use JSON strings or integers; numeric
// ids are kept as their literal text and re-encoded as JSON numbers.
type ID string

// String returns the id text.
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("post id: missing")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("post id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	if !isNumberLiteral(string(data)) {
		return fmt.Errorf("post id: expected string or number, got %s", data)
	}
	*id = ID(data)
	return nil
}

// MarshalJSON writes numeric ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if isNumberLiteral(string(id)) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// isNumberLiteral reports whether s is a JSON number.
func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}

// Timestamp is a publication time in UNIX seconds.
//
// The feed may carry a JSON number or an RFC 3339 string; both decode to
// seconds. Timestamps always encode as numbers.
type Timestamp int64

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*ts = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("post timestamp: %w", err)
		}
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("post timestamp: %w", err)
		}
		*ts = Timestamp(t.Unix())
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("post timestamp: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		*ts = Timestamp(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("post timestamp: %w", err)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("post timestamp: %s is out of range", n)
	}
	*ts = Timestamp(int64(f))
	return nil
}

// Time returns the timestamp as a UTC time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(int64(ts), 0).UTC()
}

// Post is a single news item. Posts are read-only from the store's
// perspective; Body is searched verbatim.
type Post struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp Timestamp `json:"timestamp"`
}

// Headline is the compact projection used by the "latest news" sidebar.
type Headline struct {
	ID        ID        `json:"id"`
	Timestamp Timestamp `json:"timestamp"`
	Title     string    `json:"title"`
}

// SearchState is the search box state.
//
// Value is the raw text as typed. Keywords are the whitespace-delimited
// tokens of the last committed Value and may lag behind it until the
// debounce delay elapses.
type SearchState struct {
	Value    string   `json:"value"`
	Keywords []string `json:"keywords"`
}
