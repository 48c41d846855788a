package motiontest

import (
	"github.com/go-drift/choreo/pkg/choreography"
)

// Change is one value a FakeTarget received.
type Change struct {
	Property choreography.Property
	Value    any
}

// FakeTarget records every property value applied to it.
type FakeTarget struct {
	ID      choreography.TargetID
	values  map[choreography.Property]any
	history []Change
}

// NewFakeTarget returns an empty recording target.
func NewFakeTarget(id choreography.TargetID) *FakeTarget {
	return &FakeTarget{ID: id, values: make(map[choreography.Property]any)}
}

// SetProperty implements choreography.Animatable.
func (f *FakeTarget) SetProperty(p choreography.Property, v any) {
	f.values[p] = v
	f.history = append(f.history, Change{Property: p, Value: v})
}

// Value returns the last value applied to p.
func (f *FakeTarget) Value(p choreography.Property) (any, bool) {
	v, ok := f.values[p]
	return v, ok
}

// Float returns the last scalar value applied to p, or 0.
func (f *FakeTarget) Float(p choreography.Property) float64 {
	v, _ := f.values[p].(float64)
	return v
}

// History returns every change in the order it was applied.
func (f *FakeTarget) History() []Change {
	return append([]Change(nil), f.history...)
}

// Changes returns the values applied to p, in order.
func (f *FakeTarget) Changes(p choreography.Property) []any {
	var out []any
	for _, c := range f.history {
		if c.Property == p {
			out = append(out, c.Value)
		}
	}
	return out
}

// Clear forgets every recorded value.
func (f *FakeTarget) Clear() {
	clear(f.values)
	f.history = nil
}
