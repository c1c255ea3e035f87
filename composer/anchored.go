package composer

import (
	"time"

	"github.com/benjamonnguyen/vinyasa-go"
)

const maxWarmUps = 2

var mainCategories = []vinyasa.Category{
	vinyasa.StandingCategory,
	vinyasa.BalanceCategory,
	vinyasa.BackbendCategory,
	vinyasa.ForwardFoldCategory,
	vinyasa.TwistCategory,
}

type anchored struct {
	pick Picker
}

// NewAnchored returns the category-aware strategy: opening anchor, up to two
// warm-ups, one pose per main category, a capacity fill and the closing anchor.
func NewAnchored(picker Picker) Strategy {
	if picker == nil {
		picker = DefaultPicker()
	}
	return &anchored{pick: picker}
}

func (a *anchored) Compose(catalog []vinyasa.ExistingPoseRecord, target time.Duration) vinyasa.ComposedSequence {
	var (
		s       vinyasa.ComposedSequence
		p       = newPool(catalog)
		opening = findRole(catalog, vinyasa.OpeningRole)
		closing = findRole(catalog, vinyasa.ClosingRole)
	)
	if target <= 0 {
		return s
	}

	if opening != nil && opening.Duration <= target {
		p.take(&s, *opening)
	}
	if closing != nil {
		// reserved for the end
		p.used[closing.ID] = true
	}

	// only the first two warm-up candidates are considered
	warmUpCap := fraction(target, 0.8)
	warmUps := p.unused(func(pose vinyasa.ExistingPoseRecord) bool {
		return !pose.Role.IsAnchor() && isWarmUp(pose)
	})
	if len(warmUps) > maxWarmUps {
		warmUps = warmUps[:maxWarmUps]
	}
	for _, pose := range warmUps {
		if s.TotalDuration()+pose.Duration < warmUpCap {
			p.take(&s, pose)
		}
	}

	mainCap := fraction(target, 0.9)
	for _, category := range mainCategories {
		if s.TotalDuration() >= mainCap {
			break
		}
		total := s.TotalDuration()
		candidates := p.unused(func(pose vinyasa.ExistingPoseRecord) bool {
			return pose.Category == category && !pose.Role.IsAnchor() && total+pose.Duration <= target
		})
		if len(candidates) == 0 {
			continue
		}
		p.take(&s, candidates[a.pick(len(candidates))])
	}

	fillCap := fraction(target, 0.95)
	fill := p.unused(func(pose vinyasa.ExistingPoseRecord) bool {
		return pose.Category != vinyasa.RelaxationCategory && !pose.Role.IsAnchor()
	})
	for _, pose := range fill {
		if !p.used[pose.ID] && s.TotalDuration()+pose.Duration <= fillCap {
			p.take(&s, pose)
		}
	}

	if closing != nil && !s.Contains(closing.ID) {
		s.Append(*closing)
	}
	return s
}

func isWarmUp(pose vinyasa.ExistingPoseRecord) bool {
	if pose.Category == vinyasa.CoreCategory {
		return true
	}
	return pose.Difficulty == vinyasa.Beginner && pose.Category != vinyasa.RelaxationCategory
}

// findRole returns the first pose in catalog order carrying role.
func findRole(catalog []vinyasa.ExistingPoseRecord, role vinyasa.PoseRole) *vinyasa.ExistingPoseRecord {
	for i := range catalog {
		if catalog[i].Role == role {
			return &catalog[i]
		}
	}
	return nil
}
