package domain

import "errors"

var (
	// ErrNotFound indicates no vehicle has the requested full name.
	ErrNotFound = errors.New("vehicle not found")

	// ErrMalformedRecord indicates a document or record that violates the
	// minimal shape a vehicle needs (missing name, untyped joint).
	ErrMalformedRecord = errors.New("malformed vehicle record")

	// ErrNotVehicle indicates a document whose root element is not a vehicle.
	ErrNotVehicle = errors.New("not a vehicle document")

	// ErrNoVehicles indicates an ingest that produced no vehicles at all.
	ErrNoVehicles = errors.New("no vehicles found")
)
