package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Vehicle is a single parsed vehicle definition. It is immutable once built
// by NewVehicle; the connector slices returned by its accessors are shared
// and must not be modified by callers.
type Vehicle struct {
	brand         string
	name          string
	kind          string
	storeCategory string
	attachers     []string
	inputs        []string
	source        string
}

// VehicleSpec carries the raw fields used to construct a Vehicle.
type VehicleSpec struct {
	Brand              string
	Name               string
	Kind               string
	StoreCategory      string
	AttacherTypes      []string
	InputAttacherTypes []string
	Source             string
}

// NewVehicle validates spec and returns the immutable record.
// Empty connector types are rejected with ErrMalformedRecord.
func NewVehicle(spec VehicleSpec) (*Vehicle, error) {
	for i, t := range spec.AttacherTypes {
		if t == "" {
			return nil, fmt.Errorf("%w: attacher joint %d of %q has no type", ErrMalformedRecord, i, spec.Brand+" "+spec.Name)
		}
	}
	for i, t := range spec.InputAttacherTypes {
		if t == "" {
			return nil, fmt.Errorf("%w: input attacher joint %d of %q has no type", ErrMalformedRecord, i, spec.Brand+" "+spec.Name)
		}
	}
	return &Vehicle{
		brand:         spec.Brand,
		name:          spec.Name,
		kind:          spec.Kind,
		storeCategory: spec.StoreCategory,
		attachers:     slices.Clone(spec.AttacherTypes),
		inputs:        slices.Clone(spec.InputAttacherTypes),
		source:        spec.Source,
	}, nil
}

// MustVehicle is like NewVehicle but panics on invalid input.
// Intended for fixtures and tests.
func MustVehicle(spec VehicleSpec) *Vehicle {
	v, err := NewVehicle(spec)
	if err != nil {
		panic(err)
	}
	return v
}

func (v *Vehicle) Brand() string         { return v.brand }
func (v *Vehicle) Name() string          { return v.name }
func (v *Vehicle) Kind() string          { return v.kind }
func (v *Vehicle) StoreCategory() string { return v.storeCategory }
func (v *Vehicle) Source() string        { return v.source }

// FullName is the brand and name joined by a single space. It is the key
// users search by, but it is not guaranteed to be unique.
func (v *Vehicle) FullName() string { return v.brand + " " + v.name }

// AttacherTypes are the connector types this vehicle offers, in document order.
func (v *Vehicle) AttacherTypes() []string { return v.attachers }

// InputAttacherTypes are the connector types this vehicle can plug into.
func (v *Vehicle) InputAttacherTypes() []string { return v.inputs }

// Summary is the one-line description used in listings.
func (v *Vehicle) Summary() string {
	return fmt.Sprintf("%s - Type: %s, Store Category: %s", v.FullName(), v.kind, v.storeCategory)
}

func (v *Vehicle) String() string { return v.FullName() }

type vehicleJSON struct {
	FullName           string   `json:"fullName"`
	Brand              string   `json:"brand"`
	Name               string   `json:"name"`
	Kind               string   `json:"kind"`
	StoreCategory      string   `json:"storeCategory"`
	AttacherTypes      []string `json:"attacherTypes"`
	InputAttacherTypes []string `json:"inputAttacherTypes"`
	Source             string   `json:"source,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (v *Vehicle) MarshalJSON() ([]byte, error) {
	out := vehicleJSON{
		FullName:           v.FullName(),
		Brand:              v.brand,
		Name:               v.name,
		Kind:               v.kind,
		StoreCategory:      v.storeCategory,
		AttacherTypes:      v.attachers,
		InputAttacherTypes: v.inputs,
		Source:             v.source,
	}
	if out.AttacherTypes == nil {
		out.AttacherTypes = []string{}
	}
	if out.InputAttacherTypes == nil {
		out.InputAttacherTypes = []string{}
	}
	return json.Marshal(out)
}
