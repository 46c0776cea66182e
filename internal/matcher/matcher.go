// Package matcher answers directional compatibility queries over a registry.
//
// A pair of vehicles is reported once per direction, under the first
// connector type of the offering side's attacher list that the seeking side
// accepts. Pairs sharing further connector types are not reported again.
package matcher

import (
	"attachsearch/internal/domain"
	"attachsearch/internal/index"
	"attachsearch/internal/registry"
)

// Options tune matching.
type Options struct {
	// ExcludeSelf drops the subject vehicle from its own results. Off by
	// default: a vehicle whose attachers fit its own inputs lists itself.
	ExcludeSelf bool
}

// Matcher runs queries against one registry. Safe for concurrent use.
type Matcher struct {
	reg  *registry.Registry
	idx  *index.Index
	opts Options
}

// New returns a matcher over idx and the registry it was built from.
func New(idx *index.Index, opts Options) *Matcher {
	return &Matcher{reg: idx.Registry(), idx: idx, opts: opts}
}

// FirstMatchingConnector returns the first type in offerer, in its order,
// that also appears in seeker.
func FirstMatchingConnector(offerer, seeker []string) (string, bool) {
	if len(offerer) == 0 || len(seeker) == 0 {
		return "", false
	}
	for _, c := range offerer {
		for _, s := range seeker {
			if c == s {
				return c, true
			}
		}
	}
	return "", false
}

// AttachableTo finds the vehicles whose attachers v's input attachers accept.
// Each match is grouped under the first such type in the other vehicle's
// attacher order.
func (m *Matcher) AttachableTo(v *domain.Vehicle) domain.MatchResult {
	res := domain.MatchResult{Subject: v, Direction: domain.AttachableTo}
	if v == nil || len(v.InputAttacherTypes()) == 0 {
		return res
	}
	var b builder
	for _, pos := range m.idx.AttacherCandidates(v.InputAttacherTypes()) {
		o := m.reg.At(pos)
		if m.skip(v, o) {
			continue
		}
		if c, ok := FirstMatchingConnector(o.AttacherTypes(), v.InputAttacherTypes()); ok {
			b.add(c, o)
		}
	}
	res.Groups = b.groups()
	return res
}

// AttachesFrom finds the vehicles whose input attachers accept one of v's
// attachers. Each match is grouped under the first such type in v's
// attacher order.
func (m *Matcher) AttachesFrom(v *domain.Vehicle) domain.MatchResult {
	res := domain.MatchResult{Subject: v, Direction: domain.AttachesFrom}
	if v == nil || len(v.AttacherTypes()) == 0 {
		return res
	}
	var b builder
	for _, pos := range m.idx.InputAttacherCandidates(v.AttacherTypes()) {
		o := m.reg.At(pos)
		if m.skip(v, o) {
			continue
		}
		if c, ok := FirstMatchingConnector(v.AttacherTypes(), o.InputAttacherTypes()); ok {
			b.add(c, o)
		}
	}
	res.Groups = b.groups()
	return res
}

// Compatibility runs both directions for v.
func (m *Matcher) Compatibility(v *domain.Vehicle) domain.Compatibility {
	return domain.Compatibility{
		Vehicle:      v,
		AttachableTo: m.AttachableTo(v),
		AttachesFrom: m.AttachesFrom(v),
	}
}

func (m *Matcher) skip(subject, other *domain.Vehicle) bool {
	return m.opts.ExcludeSelf && subject == other
}

// builder collects matches in scan order, keyed by connector in order of
// first appearance.
type builder struct {
	out []domain.ConnectorGroup
	pos map[string]int
}

func (b *builder) add(connector string, v *domain.Vehicle) {
	if b.pos == nil {
		b.pos = make(map[string]int)
	}
	i, ok := b.pos[connector]
	if !ok {
		i = len(b.out)
		b.pos[connector] = i
		b.out = append(b.out, domain.ConnectorGroup{Connector: connector})
	}
	b.out[i].Vehicles = append(b.out[i].Vehicles, v)
}

func (b *builder) groups() []domain.ConnectorGroup {
	for i := range b.out {
		b.out[i].Kinds = registry.GroupByKind(b.out[i].Vehicles)
	}
	return b.out
}
