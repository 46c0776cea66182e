// Package index maps connector types to the vehicles exposing them.
//
// Posting lists are Roaring bitmaps of registry positions, so unions over a
// vehicle's connector list come back in registry order for free.
package index

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"attachsearch/internal/domain"
	"attachsearch/internal/registry"
)

// Index is the derived connector lookup for one registry. Read-only after Build.
type Index struct {
	reg       *registry.Registry
	attachers map[string]*roaring.Bitmap
	inputs    map[string]*roaring.Bitmap
}

// Stats describes the size of an index.
type Stats struct {
	Vehicles     int
	Connectors   int
	AttacherRefs uint64
	InputRefs    uint64
}

// Build indexes every vehicle in reg.
func Build(reg *registry.Registry) *Index {
	x := &Index{
		reg:       reg,
		attachers: make(map[string]*roaring.Bitmap),
		inputs:    make(map[string]*roaring.Bitmap),
	}
	for i, v := range reg.All() {
		pos := uint32(i)
		for _, c := range v.AttacherTypes() {
			posting(x.attachers, c).Add(pos)
		}
		for _, c := range v.InputAttacherTypes() {
			posting(x.inputs, c).Add(pos)
		}
	}
	for _, b := range x.attachers {
		b.RunOptimize()
	}
	for _, b := range x.inputs {
		b.RunOptimize()
	}
	return x
}

func posting(m map[string]*roaring.Bitmap, key string) *roaring.Bitmap {
	b, ok := m[key]
	if !ok {
		b = roaring.New()
		m[key] = b
	}
	return b
}

// Registry returns the registry the index was built from.
func (x *Index) Registry() *registry.Registry { return x.reg }

// Attachers lists, in registry order, the vehicles offering connector.
func (x *Index) Attachers(connector string) []*domain.Vehicle {
	return x.vehicles(x.attachers[connector])
}

// InputAttachers lists, in registry order, the vehicles able to plug into connector.
func (x *Index) InputAttachers(connector string) []*domain.Vehicle {
	return x.vehicles(x.inputs[connector])
}

// AttacherCandidates returns the registry positions of vehicles offering any
// of types, ascending.
func (x *Index) AttacherCandidates(types []string) []int {
	return positions(union(x.attachers, types))
}

// InputAttacherCandidates returns the registry positions of vehicles that
// accept any of types, ascending.
func (x *Index) InputAttacherCandidates(types []string) []int {
	return positions(union(x.inputs, types))
}

// ConnectorTypes returns every connector type seen on either side, sorted.
func (x *Index) ConnectorTypes() []string {
	seen := make(map[string]struct{}, len(x.attachers)+len(x.inputs))
	for c := range x.attachers {
		seen[c] = struct{}{}
	}
	for c := range x.inputs {
		seen[c] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Usage counts, per connector type, the vehicles on each side.
func (x *Index) Usage() []domain.ConnectorUsage {
	types := x.ConnectorTypes()
	out := make([]domain.ConnectorUsage, len(types))
	for i, c := range types {
		out[i] = domain.ConnectorUsage{
			Connector:      c,
			Attachers:      cardinality(x.attachers[c]),
			InputAttachers: cardinality(x.inputs[c]),
		}
	}
	return out
}

// Stats reports index size.
func (x *Index) Stats() Stats {
	s := Stats{Vehicles: x.reg.Len(), Connectors: len(x.ConnectorTypes())}
	for _, b := range x.attachers {
		s.AttacherRefs += b.GetCardinality()
	}
	for _, b := range x.inputs {
		s.InputRefs += b.GetCardinality()
	}
	return s
}

func (x *Index) vehicles(b *roaring.Bitmap) []*domain.Vehicle {
	if b == nil {
		return nil
	}
	out := make([]*domain.Vehicle, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, x.reg.At(int(it.Next())))
	}
	return out
}

func union(m map[string]*roaring.Bitmap, types []string) *roaring.Bitmap {
	var parts []*roaring.Bitmap
	for _, t := range types {
		if b, ok := m[t]; ok {
			parts = append(parts, b)
		}
	}
	switch len(parts) {
	case 0:
		return nil
	case 1:
		return parts[0]
	default:
		return roaring.FastOr(parts...)
	}
}

func positions(b *roaring.Bitmap) []int {
	if b == nil {
		return nil
	}
	out := make([]int, 0, b.GetCardinality())
	it := b.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

func cardinality(b *roaring.Bitmap) int {
	if b == nil {
		return 0
	}
	return int(b.GetCardinality())
}
