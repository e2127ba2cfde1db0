package domain

// Node kinds. Each kind has its own property spec catalog.
const (
	KindCamera   = "camera"
	KindLight    = "light"
	KindMaterial = "material"
	KindGeometry = "geometry"
)

// Node is a scene-graph node whose attributes are edited through the grid.
type Node struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Name      string `json:"name"`
	ParentID  string `json:"parentId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// AttributeChange is one recorded write to a node attribute.
type AttributeChange struct {
	NodeID    string `json:"nodeId"`
	Name      string `json:"name"`
	Value     any    `json:"value"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}
