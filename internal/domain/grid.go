package domain

// DescriptorView is the JSON form of one property descriptor, including the
// value read through it.
type DescriptorView struct {
	Name              string `json:"name"`
	DisplayName       string `json:"displayName"`
	Category          string `json:"category,omitempty"`
	Description       string `json:"description,omitempty"`
	Editor            string `json:"editor,omitempty"`
	Type              string `json:"type"`
	TypeLabel         string `json:"typeLabel"`
	ReadOnly          bool   `json:"readOnly"`
	Browsable         bool   `json:"browsable"`
	RefreshProperties bool   `json:"refreshProperties"`
	Expandable        bool   `json:"expandable"`
	DisplayOrder      int    `json:"displayOrder"`
	Value             any    `json:"value"`
	DefaultValue      any    `json:"defaultValue,omitempty"`
	CanReset          bool   `json:"canReset"`
	ShouldSerialize   bool   `json:"shouldSerialize"`
}

// Grid is the enumerated property set of one node.
type Grid struct {
	NodeID          string           `json:"nodeId"`
	Kind            string           `json:"kind"`
	DefaultProperty string           `json:"defaultProperty,omitempty"`
	Results         []DescriptorView `json:"results"`
}

// SetResult is returned after a property write. Grid is present when the
// written property triggers a refresh.
type SetResult struct {
	Property DescriptorView `json:"property"`
	Refresh  bool           `json:"refresh"`
	Grid     *Grid          `json:"grid,omitempty"`
}
