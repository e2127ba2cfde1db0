package domain

import "encoding/json"

// SpecRecord is the stored form of a property spec. Hidden and Disabled are
// stored inverted so that a zero record describes a visible property.
type SpecRecord struct {
	Name              string          `json:"name"`
	TypeName          string          `json:"typeName"`
	Category          string          `json:"category,omitempty"`
	Description       string          `json:"description,omitempty"`
	Editor            string          `json:"editor,omitempty"`
	Expandable        bool            `json:"expandable"`
	ReadOnly          bool            `json:"readOnly"`
	Hidden            bool            `json:"hidden"`
	Disabled          bool            `json:"disabled"`
	RefreshProperties bool            `json:"refreshProperties"`
	DefaultValue      json.RawMessage `json:"defaultValue,omitempty"`
	Position          int             `json:"position"`
}

// KindSummary describes one node kind and its catalog.
type KindSummary struct {
	Kind            string `json:"kind"`
	DefaultProperty string `json:"defaultProperty,omitempty"`
	SpecCount       int    `json:"specCount"`
}
