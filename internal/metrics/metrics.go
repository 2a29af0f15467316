// Package metrics accumulates per-frame measurements of a viewer run.
package metrics

type Metric interface {
	Name() string
	Value() float64
	Reset()
}
