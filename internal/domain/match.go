package domain

// Direction tells which side of a pairing supplies the attacher.
type Direction int

const (
	// AttachableTo lists vehicles whose attachers the subject's input
	// attachers accept. These are the vehicles the subject hitches onto, so
	// the CLI and TUI label them "Vehicles that <subject> can attach to".
	AttachableTo Direction = iota
	// AttachesFrom lists vehicles whose input attachers accept one of the
	// subject's attachers.
	AttachesFrom
)

func (d Direction) String() string {
	switch d {
	case AttachableTo:
		return "attachable-to"
	case AttachesFrom:
		return "attaches-from"
	default:
		return "unknown"
	}
}

// KindGroup is an ordered run of vehicles sharing one kind.
type KindGroup struct {
	Kind     string     `json:"kind"`
	Vehicles []*Vehicle `json:"vehicles"`
}

// ConnectorGroup holds every match reported under one connector type.
// Kinds partitions Vehicles without reordering them.
type ConnectorGroup struct {
	Connector string      `json:"connector"`
	Vehicles  []*Vehicle  `json:"vehicles"`
	Kinds     []KindGroup `json:"kinds"`
}

// MatchResult is the outcome of one directional query.
type MatchResult struct {
	Subject   *Vehicle         `json:"-"`
	Direction Direction        `json:"-"`
	Groups    []ConnectorGroup `json:"groups"`
}

// IsEmpty reports whether no vehicle matched.
func (r MatchResult) IsEmpty() bool { return len(r.Groups) == 0 }

// Count is the number of matched vehicles. Each vehicle is counted once.
func (r MatchResult) Count() int {
	n := 0
	for _, g := range r.Groups {
		n += len(g.Vehicles)
	}
	return n
}

// Connectors returns the group keys in result order.
func (r MatchResult) Connectors() []string {
	out := make([]string, len(r.Groups))
	for i, g := range r.Groups {
		out[i] = g.Connector
	}
	return out
}

// Group returns the group for connector, if any vehicle matched through it.
func (r MatchResult) Group(connector string) (ConnectorGroup, bool) {
	for _, g := range r.Groups {
		if g.Connector == connector {
			return g, true
		}
	}
	return ConnectorGroup{}, false
}

// Compatibility bundles both directions for one subject vehicle.
type Compatibility struct {
	Vehicle      *Vehicle    `json:"vehicle"`
	AttachableTo MatchResult `json:"attachableTo"`
	AttachesFrom MatchResult `json:"attachesFrom"`
}

// ConnectorUsage counts how many vehicles expose a connector type on each side.
type ConnectorUsage struct {
	Connector      string `json:"connector"`
	Attachers      int    `json:"attachers"`
	InputAttachers int    `json:"inputAttachers"`
}
