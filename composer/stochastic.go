package composer

import (
	"time"

	"github.com/benjamonnguyen/vinyasa-go"
)

type stochastic struct {
	pick Picker
}

// NewStochastic returns a strategy that draws poses uniformly without regard to
// category until 90% of the target is reached or the catalog is exhausted.
func NewStochastic(picker Picker) Strategy {
	if picker == nil {
		picker = DefaultPicker()
	}
	return &stochastic{pick: picker}
}

func (st *stochastic) Compose(catalog []vinyasa.ExistingPoseRecord, target time.Duration) vinyasa.ComposedSequence {
	var s vinyasa.ComposedSequence
	if target <= 0 {
		return s
	}

	candidates := make([]vinyasa.ExistingPoseRecord, 0, len(catalog))
	seen := make(map[vinyasa.PoseID]bool, len(catalog))
	for _, pose := range catalog {
		if seen[pose.ID] {
			continue
		}
		seen[pose.ID] = true
		candidates = append(candidates, pose)
	}

	threshold := fraction(target, 0.9)
	for s.TotalDuration() < threshold && len(candidates) > 0 {
		i := st.pick(len(candidates))
		pose := candidates[i]
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]

		if s.TotalDuration()+pose.Duration <= target {
			s.Append(pose)
		}
	}
	return s
}
