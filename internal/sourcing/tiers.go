package sourcing

import (
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/questiongen"
	"github.com/Levisoloai/MediPrepBeta-sub001/internal/variant"
)

// Tier identifies one question source. Tiers share identity with question
// source types so provenance falls out of sourcing for free.
type Tier = questiongen.SourceType

const (
	TierVerified  Tier = questiongen.SourceVerified
	TierBank      Tier = questiongen.SourceBank
	TierGenerated Tier = questiongen.SourceGenerated
)

var (
	verifiedFirst = []Tier{TierVerified, TierBank, TierGenerated}
	bankFirst     = []Tier{TierBank, TierVerified, TierGenerated}
)

// TierOrder maps a variant assignment to the tier order for one batch
// slot. Generation always comes last: it is the expensive fallback, never
// the preference. Split alternates the leading stored tier per slot.
func TierOrder(a variant.Assignment, slot int) []Tier {
	switch a {
	case variant.BankFirst:
		return bankFirst
	case variant.Split:
		if slot%2 == 1 {
			return bankFirst
		}
		return verifiedFirst
	default:
		return verifiedFirst
	}
}
