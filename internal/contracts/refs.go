package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ref is a reference that travels either as a bare string or as an embedded
// {_id, name} object. A bare string is kept in ID and displayed as-is.
type Ref struct {
	ID       string
	Name     string
	Embedded bool
}

type embeddedRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// IDRef is a bare string reference.
func IDRef(id string) Ref { return Ref{ID: id} }

// NamedRef is an embedded reference.
func NamedRef(id, name string) Ref { return Ref{ID: id, Name: name, Embedded: true} }

// Label is what a table cell shows for the reference.
func (r Ref) Label() string {
	if r.Embedded && r.Name != "" {
		return r.Name
	}
	return r.ID
}

func (r Ref) String() string { return r.Label() }

func (r Ref) IsZero() bool { return r.ID == "" && r.Name == "" }

func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Embedded {
		return json.Marshal(embeddedRef{ID: r.ID, Name: r.Name})
	}
	return json.Marshal(r.ID)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*r = Ref{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Ref{ID: s}
		return nil
	case len(data) > 0 && data[0] == '{':
		var e embeddedRef
		if err := json.Unmarshal(data, &e); err != nil {
			return err
		}
		*r = Ref{ID: e.ID, Name: e.Name, Embedded: true}
		return nil
	default:
		return fmt.Errorf("reference must be a string or an object, got %s", string(data))
	}
}
