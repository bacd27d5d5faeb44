package audit

import (
	"encoding/json"
	"time"
)

// ISO8601Format is the time format used for event timestamps.
const ISO8601Format = time.RFC3339

// eventJSON is the wire representation. Optional fields use pointers
// so omitempty drops them cleanly.
type eventJSON struct {
	Timestamp string    `json:"timestamp"`
	RunID     RunID     `json:"runId"`
	EventType EventType `json:"eventType"`
	OldPath   *string   `json:"oldPath,omitempty"`
	NewPath   *string   `json:"newPath,omitempty"`
	Detail    *string   `json:"detail,omitempty"`
}

// MarshalJSON implements json.Marshaler for Event.
func (e Event) MarshalJSON() ([]byte, error) {
	ej := eventJSON{
		Timestamp: e.Timestamp.Format(ISO8601Format),
		RunID:     e.RunID,
		EventType: e.Type,
	}
	if e.OldPath != "" {
		ej.OldPath = &e.OldPath
	}
	if e.NewPath != "" {
		ej.NewPath = &e.NewPath
	}
	if e.Detail != "" {
		ej.Detail = &e.Detail
	}
	return json.Marshal(ej)
}

// UnmarshalJSON implements json.Unmarshaler for Event.
func (e *Event) UnmarshalJSON(data []byte) error {
	var ej eventJSON
	if err := json.Unmarshal(data, &ej); err != nil {
		return err
	}

	t, err := time.Parse(ISO8601Format, ej.Timestamp)
	if err != nil {
		return err
	}

	e.Timestamp = t
	e.RunID = ej.RunID
	e.Type = ej.EventType
	if ej.OldPath != nil {
		e.OldPath = *ej.OldPath
	}
	if ej.NewPath != nil {
		e.NewPath = *ej.NewPath
	}
	if ej.Detail != nil {
		e.Detail = *ej.Detail
	}
	return nil
}
