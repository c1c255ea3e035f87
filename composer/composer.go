// Package composer builds timed pose sequences from a catalog.
package composer

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/benjamonnguyen/vinyasa-go"
)

const (
	AnchoredName   = "anchored"
	StochasticName = "stochastic"
)

// Strategy selects and orders poses from catalog to approximate target.
// It never fails; an empty catalog or an unreachable target yields an empty sequence.
type Strategy interface {
	Compose(catalog []vinyasa.ExistingPoseRecord, target time.Duration) vinyasa.ComposedSequence
}

// Picker returns an index in [0, n). n is always positive.
type Picker func(n int) int

func DefaultPicker() Picker {
	return rand.IntN
}

// SeededPicker returns a reproducible picker.
func SeededPicker(seed uint64) Picker {
	r := rand.New(rand.NewPCG(seed, seed))
	return r.IntN
}

func ByName(name string, picker Picker) (Strategy, error) {
	switch name {
	case AnchoredName, "":
		return NewAnchored(picker), nil
	case StochasticName:
		return NewStochastic(picker), nil
	default:
		return nil, fmt.Errorf("unknown composer %q (want %s or %s)", name, AnchoredName, StochasticName)
	}
}

func fraction(target time.Duration, f float64) time.Duration {
	return time.Duration(float64(target) * f)
}

// pool is the set of catalog poses not yet placed in the sequence.
type pool struct {
	catalog []vinyasa.ExistingPoseRecord
	used    map[vinyasa.PoseID]bool
}

func newPool(catalog []vinyasa.ExistingPoseRecord) *pool {
	return &pool{
		catalog: catalog,
		used:    make(map[vinyasa.PoseID]bool, len(catalog)),
	}
}

func (p *pool) take(s *vinyasa.ComposedSequence, pose vinyasa.ExistingPoseRecord) {
	p.used[pose.ID] = true
	s.Append(pose)
}

// unused returns the unused poses matching keep, in catalog order.
func (p *pool) unused(keep func(vinyasa.ExistingPoseRecord) bool) []vinyasa.ExistingPoseRecord {
	var out []vinyasa.ExistingPoseRecord
	for _, pose := range p.catalog {
		if p.used[pose.ID] || !keep(pose) {
			continue
		}
		out = append(out, pose)
	}
	return out
}
