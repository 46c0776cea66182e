// Package registry holds the loaded vehicle records in load order.
package registry

import "attachsearch/internal/domain"

// Registry is an ordered, read-only collection of vehicles. It is built once
// and may be shared between goroutines without locking.
type Registry struct {
	vehicles []*domain.Vehicle
	byName   map[string]int
}

// New builds a registry over records, keeping their order. Nil records are
// dropped. For duplicate full names the first record wins lookups.
func New(records []*domain.Vehicle) *Registry {
	r := &Registry{
		vehicles: make([]*domain.Vehicle, 0, len(records)),
		byName:   make(map[string]int, len(records)),
	}
	for _, v := range records {
		if v == nil {
			continue
		}
		if _, seen := r.byName[v.FullName()]; !seen {
			r.byName[v.FullName()] = len(r.vehicles)
		}
		r.vehicles = append(r.vehicles, v)
	}
	return r
}

// Len returns the number of vehicles.
func (r *Registry) Len() int { return len(r.vehicles) }

// At returns the vehicle at position i in load order.
func (r *Registry) At(i int) *domain.Vehicle { return r.vehicles[i] }

// All returns the vehicles in load order. The slice must not be modified.
func (r *Registry) All() []*domain.Vehicle { return r.vehicles }

// FindByFullName does an exact, case-sensitive lookup.
func (r *Registry) FindByFullName(name string) (*domain.Vehicle, bool) {
	i, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return r.vehicles[i], true
}

// Duplicates returns the full names that occur more than once.
func (r *Registry) Duplicates() []string {
	counts := make(map[string]int, len(r.byName))
	var out []string
	for _, v := range r.vehicles {
		name := v.FullName()
		counts[name]++
		if counts[name] == 2 {
			out = append(out, name)
		}
	}
	return out
}

// GroupByKind partitions the registry by kind. Groups appear in order of
// first occurrence and keep load order inside.
func (r *Registry) GroupByKind() []domain.KindGroup {
	return GroupByKind(r.vehicles)
}

// GroupByKind partitions vehicles by kind, preserving relative order.
func GroupByKind(vehicles []*domain.Vehicle) []domain.KindGroup {
	var groups []domain.KindGroup
	pos := make(map[string]int)
	for _, v := range vehicles {
		i, ok := pos[v.Kind()]
		if !ok {
			i = len(groups)
			pos[v.Kind()] = i
			groups = append(groups, domain.KindGroup{Kind: v.Kind()})
		}
		groups[i].Vehicles = append(groups[i].Vehicles, v)
	}
	return groups
}
