package models

// FlowEntry is a domain's declared reference to one of its flows, used for
// cross-reference resolution (spec.md §4.3 "Cross-reference") without
// requiring the referenced flow document itself to be loaded.
type FlowEntry struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Type            FlowType `yaml:"type" json:"type"`
	Tags            []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Group           string   `yaml:"group,omitempty" json:"group,omitempty"`
	KeyboardShortcut string  `yaml:"keyboard_shortcut,omitempty" json:"keyboard_shortcut,omitempty"`
}

// EventWiring is a domain's declaration that it publishes or consumes a
// named event, optionally with a payload shape and flow wiring.
type EventWiring struct {
	Event          string         `yaml:"event" json:"event"`
	Payload        map[string]any `yaml:"payload,omitempty" json:"payload,omitempty"`
	FromFlow       string         `yaml:"from_flow,omitempty" json:"from_flow,omitempty"`
	HandledByFlow  string         `yaml:"handled_by_flow,omitempty" json:"handled_by_flow,omitempty"`
	Description    string         `yaml:"description,omitempty" json:"description,omitempty"`
}

// EventGroup is a named grouping of related events a domain can trigger
// flows on via "event_group:<name>" triggers.
type EventGroup struct {
	Name string `yaml:"name" json:"name"`
}

// StoreDecl declares a named memory store a domain exposes for data_store
// nodes with store_type "memory".
type StoreDecl struct {
	Name string `yaml:"name" json:"name"`
}

// Position is a 2D layout coordinate for a portal in the domain map.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// LayoutConfig holds the optional visual layout of cross-domain portals.
type LayoutConfig struct {
	Portals map[string]Position `yaml:"portals,omitempty" json:"portals,omitempty"`
}

// DomainConfig is a domain's own declared configuration: its flows, its
// event wiring, the schemas it owns, and the memory stores it exposes.
type DomainConfig struct {
	Name            string        `yaml:"name" json:"name"`
	Description     string        `yaml:"description,omitempty" json:"description,omitempty"`
	Role            string        `yaml:"role,omitempty" json:"role,omitempty"`
	OwnsSchemas     []string      `yaml:"owns_schemas,omitempty" json:"owns_schemas,omitempty"`
	Flows           []FlowEntry   `yaml:"flows,omitempty" json:"flows,omitempty"`
	PublishesEvents []EventWiring `yaml:"publishes_events,omitempty" json:"publishes_events,omitempty"`
	ConsumesEvents  []EventWiring `yaml:"consumes_events,omitempty" json:"consumes_events,omitempty"`
	EventGroups     []EventGroup  `yaml:"event_groups,omitempty" json:"event_groups,omitempty"`
	Stores          []StoreDecl   `yaml:"stores,omitempty" json:"stores,omitempty"`
	Layout          *LayoutConfig `yaml:"layout,omitempty" json:"layout,omitempty"`
}

// HasEventGroup reports whether this domain declares an event group with
// the given name.
func (d *DomainConfig) HasEventGroup(name string) bool {
	for _, g := range d.EventGroups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// HasStore reports whether this domain declares a memory store with the
// given name.
func (d *DomainConfig) HasStore(name string) bool {
	for _, s := range d.Stores {
		if s.Name == name {
			return true
		}
	}
	return false
}

// HasFlow reports whether this domain declares a flow entry with the given
// flow ID.
func (d *DomainConfig) HasFlow(flowID string) bool {
	for _, f := range d.Flows {
		if f.ID == flowID {
			return true
		}
	}
	return false
}

// PagesConfig is the system-wide page/navigation tree consumed by the
// system validator's pages→flows checks (spec.md §4.5).
type PagesConfig struct {
	Navigation NavigationConfig `yaml:"navigation" json:"navigation"`
}

// NavigationConfig lists the navigation items shown in the UI shell.
type NavigationConfig struct {
	Items []NavigationItem `yaml:"items" json:"items"`
}

// NavigationItem references a page by ID.
type NavigationItem struct {
	Page string `yaml:"page" json:"page"`
}

// PageSpec describes a single page's data wiring to flows.
type PageSpec struct {
	ID       string          `yaml:"id" json:"id"`
	Sections []PageSection   `yaml:"sections,omitempty" json:"sections,omitempty"`
	Forms    []PageForm      `yaml:"forms,omitempty" json:"forms,omitempty"`
	State    *PageStateSpec  `yaml:"state,omitempty" json:"state,omitempty"`
}

// PageSection is a page region backed by a data_source flow reference.
type PageSection struct {
	DataSource string `yaml:"data_source,omitempty" json:"data_source,omitempty"`
}

// PageForm is a submittable form backed by a flow.
type PageForm struct {
	Submit PageFormSubmit `yaml:"submit" json:"submit"`
}

// PageFormSubmit names the flow a form submission is wired to.
type PageFormSubmit struct {
	Flow string `yaml:"flow" json:"flow"`
}

// PageStateSpec lists flows used to hydrate a page's initial state.
type PageStateSpec struct {
	InitialFetch []string `yaml:"initial_fetch,omitempty" json:"initial_fetch,omitempty"`
}

// SchemaFile is a single schema definition file discovered under
// specs/schemas/.
type SchemaFile struct {
	Name string `yaml:"name" json:"name"`
}
