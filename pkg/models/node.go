package models

// SpecPayload is a node's kind-specific configuration. Its shape depends on
// the owning Node's Type; callers use the typed accessors below instead of
// indexing the map directly, the way the teacher's node executors treat a
// Node.Config map[string]interface{} as a loosely-typed, kind-dispatched
// payload (pkg/builder.ValidateNodeConfig).
type SpecPayload map[string]any

// String returns the string value at key, or "" if absent or not a string.
func (p SpecPayload) String(key string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Has reports whether key is present with a non-nil value.
func (p SpecPayload) Has(key string) bool {
	v, ok := p[key]
	return ok && v != nil
}

// Bool returns the bool value at key, or false if absent or not a bool.
func (p SpecPayload) Bool(key string) bool {
	if v, ok := p[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Int returns the int value at key, tolerating float64 (YAML/JSON numbers
// decode as float64), or 0 if absent.
func (p SpecPayload) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Slice returns the []any value at key, or nil if absent or not a slice.
func (p SpecPayload) Slice(key string) []any {
	if v, ok := p[key]; ok {
		if s, ok := v.([]any); ok {
			return s
		}
	}
	return nil
}

// StringSlice returns the string elements of the slice at key.
func (p SpecPayload) StringSlice(key string) []string {
	raw := p.Slice(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Map returns the map[string]any value at key, or nil if absent or not a map.
func (p SpecPayload) Map(key string) map[string]any {
	if v, ok := p[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return m
		}
	}
	return nil
}

// StringOrList reports whether key holds either a non-empty string or a
// non-empty list — used for fields like "event" that the spec allows to be
// either shape (spec.md §4.3, "Trigger event").
func (p SpecPayload) StringOrList(key string) bool {
	switch v := p[key].(type) {
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	default:
		return false
	}
}

// Connection is a directed, handle-tagged edge out of a node.
type Connection struct {
	TargetNodeID string `yaml:"target_node_id" json:"target_node_id"`
	SourceHandle string `yaml:"source_handle" json:"source_handle"`
}

// Node is a single vertex in a flow's graph.
type Node struct {
	ID          string       `yaml:"id" json:"id"`
	Type        NodeKind     `yaml:"type" json:"type"`
	Label       string       `yaml:"label" json:"label"`
	Spec        SpecPayload  `yaml:"spec" json:"spec"`
	Connections []Connection `yaml:"connections" json:"connections"`
}

// Handles returns the set of distinct source handles used by this node's
// outgoing connections.
func (n *Node) Handles() map[string]bool {
	handles := make(map[string]bool, len(n.Connections))
	for _, c := range n.Connections {
		handles[c.SourceHandle] = true
	}
	return handles
}
