package model

import (
	"encoding/json"
	"strconv"
	"time"
)

// CVRecord stores arbitrary CV fields as submitted by the client.
// It serializes flat: the client fields with id, createdAt and updatedAt laid over them.
// The id is kept as text in storage and emitted as a JSON number.
type CVRecord struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r CVRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Data)+3)
	for k, v := range r.Data {
		out[k] = v
	}
	out["id"] = r.JSONID()
	out["createdAt"] = r.CreatedAt
	out["updatedAt"] = r.UpdatedAt
	return json.Marshal(out)
}

// JSONID returns the millisecond id as a number, or the raw text for ids that are not one.
func (r CVRecord) JSONID() any {
	if n, err := strconv.ParseInt(r.ID, 10, 64); err == nil {
		return n
	}
	return r.ID
}
