package court

import (
	"encoding/json"
	"fmt"
	"time"
)

type Entry struct {
	ID        string      `json:"id"`
	Role      SpeakerRole `json:"role"`
	Speaker   string      `json:"speakerName"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
}

// Transcript is the append-only record of a session. Entries are never
// edited or removed; a new session starts a new Transcript.
type Transcript struct {
	entries []Entry
}

// Append stores e, pushing its timestamp forward if the clock went backwards
// so that entries stay ordered by creation.
func (t *Transcript) Append(e Entry) Entry {
	if n := len(t.entries); n > 0 {
		last := t.entries[n-1].Timestamp
		if e.Timestamp.Before(last) {
			e.Timestamp = last
		}
	}
	t.entries = append(t.entries, e)
	return e
}

func (t Transcript) Len() int {
	return len(t.entries)
}

func (t Transcript) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

// Recent returns at most n of the latest entries, oldest first.
func (t Transcript) Recent(n int) []Entry {
	if n <= 0 {
		return nil
	}
	start := len(t.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]Entry, len(t.entries)-start)
	copy(out, t.entries[start:])
	return out
}

type wireEntry struct {
	ID        string      `json:"id"`
	Role      SpeakerRole `json:"role"`
	Speaker   string      `json:"speakerName"`
	Text      string      `json:"text"`
	Timestamp string      `json:"timestamp"`
}

func (t Transcript) MarshalJSON() ([]byte, error) {
	wire := make([]wireEntry, 0, len(t.entries))
	for _, e := range t.entries {
		wire = append(wire, wireEntry{
			ID:        e.ID,
			Role:      e.Role,
			Speaker:   e.Speaker,
			Text:      e.Text,
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}
	return json.Marshal(wire)
}

func (t *Transcript) UnmarshalJSON(b []byte) error {
	var wire []wireEntry
	if err := json.Unmarshal(b, &wire); err != nil {
		return err
	}
	if wire == nil {
		return fmt.Errorf("transcript must be a JSON array")
	}
	entries := make([]Entry, 0, len(wire))
	seen := map[string]bool{}
	for i, w := range wire {
		ts, err := time.Parse(time.RFC3339Nano, w.Timestamp)
		if err != nil {
			return fmt.Errorf("entry %d: parse timestamp: %w", i, err)
		}
		if w.ID == "" {
			return fmt.Errorf("entry %d: missing id", i)
		}
		if seen[w.ID] {
			return fmt.Errorf("entry %d: duplicate id %q", i, w.ID)
		}
		seen[w.ID] = true
		if i > 0 && ts.Before(entries[i-1].Timestamp) {
			return fmt.Errorf("entry %d: timestamp before previous entry", i)
		}
		entries = append(entries, Entry{
			ID:        w.ID,
			Role:      w.Role,
			Speaker:   w.Speaker,
			Text:      w.Text,
			Timestamp: ts,
		})
	}
	t.entries = entries
	return nil
}
