package solana

// GovernanceConfigPatch holds the governance config fields a caller wants to change. Nil fields
// keep their current value.
type GovernanceConfigPatch struct {
	// VoteThresholdPercentage is applied as a YesVote threshold.
	VoteThresholdPercentage            *uint8
	MinCommunityWeightToCreateProposal *uint64
	MinCouncilWeightToCreateProposal   *uint64
	MinTransactionHoldUpTime           *uint32
	MaxVotingTime                      *uint32
	ProposalCoolOffTime                *uint32
}

// IsEmpty reports whether the patch changes nothing.
func (p GovernanceConfigPatch) IsEmpty() bool {
	return p == GovernanceConfigPatch{}
}

// Apply returns current with the fields set in p replaced.
func (p GovernanceConfigPatch) Apply(current GovernanceConfig) GovernanceConfig {
	next := current
	if p.VoteThresholdPercentage != nil {
		next.VoteThreshold = VoteThreshold{Type: VoteThresholdYesVote, Percentage: *p.VoteThresholdPercentage}
	}
	if p.MinCommunityWeightToCreateProposal != nil {
		next.MinCommunityWeightToCreateProposal = *p.MinCommunityWeightToCreateProposal
	}
	if p.MinCouncilWeightToCreateProposal != nil {
		next.MinCouncilWeightToCreateProposal = *p.MinCouncilWeightToCreateProposal
	}
	if p.MinTransactionHoldUpTime != nil {
		next.MinTransactionHoldUpTime = *p.MinTransactionHoldUpTime
	}
	if p.MaxVotingTime != nil {
		next.MaxVotingTime = *p.MaxVotingTime
	}
	if p.ProposalCoolOffTime != nil {
		next.ProposalCoolOffTime = *p.ProposalCoolOffTime
	}

	return next
}
