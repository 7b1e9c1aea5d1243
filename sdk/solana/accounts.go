package solana

import (
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/samber/lo"

	sdkerrors "github.com/smartcontractkit/themis/sdk/errors"
	"github.com/smartcontractkit/themis/types"
)

// GovernanceAccountType is the leading byte of every governance program account.
type GovernanceAccountType uint8

const (
	AccountTypeProposalTransactionV2 GovernanceAccountType = 13
	AccountTypeProposalV2            GovernanceAccountType = 14
	AccountTypeRealmV2               GovernanceAccountType = 16
	AccountTypeTokenOwnerRecordV2    GovernanceAccountType = 17
	AccountTypeGovernanceV2          GovernanceAccountType = 18
	AccountTypeProgramGovernanceV2   GovernanceAccountType = 19
	AccountTypeMintGovernanceV2      GovernanceAccountType = 20
	AccountTypeTokenGovernanceV2     GovernanceAccountType = 21
	AccountTypeSignatoryRecordV2     GovernanceAccountType = 22
)

func (t GovernanceAccountType) String() string {
	switch t {
	case AccountTypeProposalTransactionV2:
		return "ProposalTransactionV2"
	case AccountTypeProposalV2:
		return "ProposalV2"
	case AccountTypeRealmV2:
		return "RealmV2"
	case AccountTypeTokenOwnerRecordV2:
		return "TokenOwnerRecordV2"
	case AccountTypeGovernanceV2:
		return "GovernanceV2"
	case AccountTypeProgramGovernanceV2:
		return "ProgramGovernanceV2"
	case AccountTypeMintGovernanceV2:
		return "MintGovernanceV2"
	case AccountTypeTokenGovernanceV2:
		return "TokenGovernanceV2"
	case AccountTypeSignatoryRecordV2:
		return "SignatoryRecordV2"
	default:
		return fmt.Sprintf("GovernanceAccountType(%d)", uint8(t))
	}
}

// ----- realm -----

type MaxVoteWeightSourceType uint8

const (
	MaxVoteWeightSupplyFraction MaxVoteWeightSourceType = iota
	MaxVoteWeightAbsolute
)

type MaxVoteWeightSource struct {
	Type  MaxVoteWeightSourceType
	Value uint64
}

type RealmConfig struct {
	UseCommunityVoterWeightAddin         bool
	UseMaxCommunityVoterWeightAddin      bool
	Reserved                             [6]byte
	MinCommunityWeightToCreateGovernance uint64
	CommunityMintMaxVoteWeightSource     MaxVoteWeightSource
	CouncilMint                          *solana.PublicKey
}

// Realm is the RealmV2 record. Trailing reserved bytes are not decoded.
type Realm struct {
	AccountType         GovernanceAccountType
	CommunityMint       solana.PublicKey
	Config              RealmConfig
	Reserved            [6]byte
	VotingProposalCount uint16
	Authority           *solana.PublicKey
	Name                string
}

// GoverningMint resolves the mint selected by mintType. A council selection on a realm without a
// council mint is a configuration error.
func (r *Realm) GoverningMint(mintType types.MintType) (solana.PublicKey, error) {
	switch mintType {
	case types.MintTypeMember:
		return r.CommunityMint, nil
	case types.MintTypeCouncil:
		if r.Config.CouncilMint == nil {
			return solana.PublicKey{}, sdkerrors.NewConfigurationError("mintType", "council mint is not configured for realm "+r.Name)
		}

		return *r.Config.CouncilMint, nil
	default:
		return solana.PublicKey{}, sdkerrors.NewConfigurationError("mintType", "unsupported mint type "+mintType.String())
	}
}

func (r *Realm) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if r.AccountType, err = readAccountType(dec, AccountTypeRealmV2); err != nil {
		return err
	}
	if r.CommunityMint, err = readPublicKey(dec); err != nil {
		return err
	}
	if err = r.Config.unmarshal(dec); err != nil {
		return fmt.Errorf("realm config: %w", err)
	}
	raw, err := dec.ReadNBytes(len(r.Reserved))
	if err != nil {
		return err
	}
	copy(r.Reserved[:], raw)
	if r.VotingProposalCount, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	if r.Authority, err = readOptionalPublicKey(dec); err != nil {
		return fmt.Errorf("authority: %w", err)
	}
	if r.Name, err = readString(dec); err != nil {
		return fmt.Errorf("name: %w", err)
	}

	return nil
}

func (r Realm) MarshalWithEncoder(enc *bin.Encoder) error {
	return firstErr(
		func() error { return enc.WriteUint8(uint8(AccountTypeRealmV2)) },
		func() error { return writePublicKey(enc, r.CommunityMint) },
		func() error { return r.Config.marshal(enc) },
		func() error { return enc.WriteBytes(r.Reserved[:], false) },
		func() error { return enc.WriteUint16(r.VotingProposalCount, bin.LE) },
		func() error { return writeOptionalPublicKey(enc, r.Authority) },
		func() error { return writeString(enc, r.Name) },
	)
}

func (c *RealmConfig) unmarshal(dec *bin.Decoder) (err error) {
	if c.UseCommunityVoterWeightAddin, err = readFlag(dec); err != nil {
		return err
	}
	if c.UseMaxCommunityVoterWeightAddin, err = readFlag(dec); err != nil {
		return err
	}
	raw, err := dec.ReadNBytes(len(c.Reserved))
	if err != nil {
		return err
	}
	copy(c.Reserved[:], raw)
	if c.MinCommunityWeightToCreateGovernance, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	sourceType, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if MaxVoteWeightSourceType(sourceType) > MaxVoteWeightAbsolute {
		return fmt.Errorf("max vote weight source: %w: %d", ErrInvalidEnumVariant, sourceType)
	}
	c.CommunityMintMaxVoteWeightSource.Type = MaxVoteWeightSourceType(sourceType)
	if c.CommunityMintMaxVoteWeightSource.Value, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if c.CouncilMint, err = readOptionalPublicKey(dec); err != nil {
		return fmt.Errorf("council mint: %w", err)
	}

	return nil
}

func (c RealmConfig) marshal(enc *bin.Encoder) error {
	return firstErr(
		func() error { return writeFlag(enc, c.UseCommunityVoterWeightAddin) },
		func() error { return writeFlag(enc, c.UseMaxCommunityVoterWeightAddin) },
		func() error { return enc.WriteBytes(c.Reserved[:], false) },
		func() error { return enc.WriteUint64(c.MinCommunityWeightToCreateGovernance, bin.LE) },
		func() error { return enc.WriteUint8(uint8(c.CommunityMintMaxVoteWeightSource.Type)) },
		func() error { return enc.WriteUint64(c.CommunityMintMaxVoteWeightSource.Value, bin.LE) },
		func() error { return writeOptionalPublicKey(enc, c.CouncilMint) },
	)
}

// ----- governance -----

type VoteThresholdType uint8

const (
	VoteThresholdYesVote VoteThresholdType = iota
	VoteThresholdQuorum
)

func (t VoteThresholdType) String() string {
	switch t {
	case VoteThresholdYesVote:
		return "YesVote"
	case VoteThresholdQuorum:
		return "Quorum"
	default:
		return fmt.Sprintf("VoteThresholdType(%d)", uint8(t))
	}
}

type VoteThreshold struct {
	Type       VoteThresholdType `json:"type" yaml:"type"`
	Percentage uint8             `json:"percentage" yaml:"percentage"`
}

type VoteTipping uint8

const (
	VoteTippingStrict VoteTipping = iota
	VoteTippingEarly
	VoteTippingDisabled
)

func (v VoteTipping) String() string {
	switch v {
	case VoteTippingStrict:
		return "Strict"
	case VoteTippingEarly:
		return "Early"
	case VoteTippingDisabled:
		return "Disabled"
	default:
		return fmt.Sprintf("VoteTipping(%d)", uint8(v))
	}
}

// GovernanceConfig holds the rules a governance applies to its proposals. Times are seconds.
type GovernanceConfig struct {
	VoteThreshold                      VoteThreshold `json:"voteThreshold" yaml:"voteThreshold"`
	MinCommunityWeightToCreateProposal uint64        `json:"minCommunityWeightToCreateProposal" yaml:"minCommunityWeightToCreateProposal"`
	MinTransactionHoldUpTime           uint32        `json:"minTransactionHoldUpTime" yaml:"minTransactionHoldUpTime"`
	MaxVotingTime                      uint32        `json:"maxVotingTime" yaml:"maxVotingTime"`
	VoteTipping                        VoteTipping   `json:"voteTipping" yaml:"voteTipping"`
	ProposalCoolOffTime                uint32        `json:"proposalCoolOffTime" yaml:"proposalCoolOffTime"`
	MinCouncilWeightToCreateProposal   uint64        `json:"minCouncilWeightToCreateProposal" yaml:"minCouncilWeightToCreateProposal"`
}

func (c *GovernanceConfig) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	thresholdType, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if VoteThresholdType(thresholdType) > VoteThresholdQuorum {
		return fmt.Errorf("vote threshold: %w: %d", ErrInvalidEnumVariant, thresholdType)
	}
	c.VoteThreshold.Type = VoteThresholdType(thresholdType)
	if c.VoteThreshold.Percentage, err = dec.ReadUint8(); err != nil {
		return err
	}
	if c.MinCommunityWeightToCreateProposal, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if c.MinTransactionHoldUpTime, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if c.MaxVotingTime, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	tipping, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if VoteTipping(tipping) > VoteTippingDisabled {
		return fmt.Errorf("vote tipping: %w: %d", ErrInvalidEnumVariant, tipping)
	}
	c.VoteTipping = VoteTipping(tipping)
	if c.ProposalCoolOffTime, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if c.MinCouncilWeightToCreateProposal, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}

	return nil
}

func (c GovernanceConfig) MarshalWithEncoder(enc *bin.Encoder) error {
	return firstErr(
		func() error { return enc.WriteUint8(uint8(c.VoteThreshold.Type)) },
		func() error { return enc.WriteUint8(c.VoteThreshold.Percentage) },
		func() error { return enc.WriteUint64(c.MinCommunityWeightToCreateProposal, bin.LE) },
		func() error { return enc.WriteUint32(c.MinTransactionHoldUpTime, bin.LE) },
		func() error { return enc.WriteUint32(c.MaxVotingTime, bin.LE) },
		func() error { return enc.WriteUint8(uint8(c.VoteTipping)) },
		func() error { return enc.WriteUint32(c.ProposalCoolOffTime, bin.LE) },
		func() error { return enc.WriteUint64(c.MinCouncilWeightToCreateProposal, bin.LE) },
	)
}

// Governance is the GovernanceV2 record; program, mint and token governances share its layout.
type Governance struct {
	AccountType     GovernanceAccountType
	Realm           solana.PublicKey
	GovernedAccount solana.PublicKey
	ProposalsCount  uint32
	Config          GovernanceConfig
}

func (g *Governance) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	g.AccountType, err = readAccountType(dec, AccountTypeGovernanceV2, AccountTypeProgramGovernanceV2,
		AccountTypeMintGovernanceV2, AccountTypeTokenGovernanceV2)
	if err != nil {
		return err
	}
	if g.Realm, err = readPublicKey(dec); err != nil {
		return err
	}
	if g.GovernedAccount, err = readPublicKey(dec); err != nil {
		return err
	}
	if g.ProposalsCount, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if err = g.Config.UnmarshalWithDecoder(dec); err != nil {
		return fmt.Errorf("governance config: %w", err)
	}

	return nil
}

func (g Governance) MarshalWithEncoder(enc *bin.Encoder) error {
	accountType := g.AccountType
	if accountType == 0 {
		accountType = AccountTypeGovernanceV2
	}

	return firstErr(
		func() error { return enc.WriteUint8(uint8(accountType)) },
		func() error { return writePublicKey(enc, g.Realm) },
		func() error { return writePublicKey(enc, g.GovernedAccount) },
		func() error { return enc.WriteUint32(g.ProposalsCount, bin.LE) },
		func() error { return g.Config.MarshalWithEncoder(enc) },
	)
}

// ----- proposal -----

type ProposalState uint8

const (
	ProposalStateDraft ProposalState = iota
	ProposalStateSigningOff
	ProposalStateVoting
	ProposalStateSucceeded
	ProposalStateExecuting
	ProposalStateCompleted
	ProposalStateCancelled
	ProposalStateDefeated
	ProposalStateExecutingWithErrors
)

var proposalStateNames = []string{
	"Draft", "SigningOff", "Voting", "Succeeded", "Executing", "Completed", "Cancelled", "Defeated",
	"ExecutingWithErrors",
}

func (s ProposalState) String() string {
	if int(s) < len(proposalStateNames) {
		return proposalStateNames[s]
	}

	return fmt.Sprintf("ProposalState(%d)", uint8(s))
}

type VoteKind uint8

const (
	VoteKindSingleChoice VoteKind = iota
	VoteKindMultiChoice
)

// VoteType is the proposal's choice shape. MaxVoterOptions only applies to multi choice.
type VoteType struct {
	Kind            VoteKind
	MaxVoterOptions uint16
}

func (v *VoteType) unmarshal(dec *bin.Decoder) (err error) {
	kind, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	switch VoteKind(kind) {
	case VoteKindSingleChoice:
		v.Kind, v.MaxVoterOptions = VoteKindSingleChoice, 0
	case VoteKindMultiChoice:
		v.Kind = VoteKindMultiChoice
		if v.MaxVoterOptions, err = dec.ReadUint16(bin.LE); err != nil {
			return err
		}
	default:
		return fmt.Errorf("vote type: %w: %d", ErrInvalidEnumVariant, kind)
	}

	return nil
}

func (v VoteType) marshal(enc *bin.Encoder) error {
	if err := enc.WriteUint8(uint8(v.Kind)); err != nil {
		return err
	}
	if v.Kind == VoteKindMultiChoice {
		return enc.WriteUint16(v.MaxVoterOptions, bin.LE)
	}

	return nil
}

type ProposalOption struct {
	Label                     string
	VoteWeight                uint64
	VoteResult                uint8
	TransactionsExecutedCount uint16
	TransactionsCount         uint16
	TransactionsNextIndex     uint16
}

func (o *ProposalOption) unmarshal(dec *bin.Decoder) (err error) {
	if o.Label, err = readString(dec); err != nil {
		return err
	}
	if o.VoteWeight, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if o.VoteResult, err = dec.ReadUint8(); err != nil {
		return err
	}
	if o.TransactionsExecutedCount, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	if o.TransactionsCount, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	if o.TransactionsNextIndex, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}

	return nil
}

func (o ProposalOption) marshal(enc *bin.Encoder) error {
	return firstErr(
		func() error { return writeString(enc, o.Label) },
		func() error { return enc.WriteUint64(o.VoteWeight, bin.LE) },
		func() error { return enc.WriteUint8(o.VoteResult) },
		func() error { return enc.WriteUint16(o.TransactionsExecutedCount, bin.LE) },
		func() error { return enc.WriteUint16(o.TransactionsCount, bin.LE) },
		func() error { return enc.WriteUint16(o.TransactionsNextIndex, bin.LE) },
	)
}

// Proposal is the leading part of the ProposalV2 record, up to and including the deny vote
// weight. Voting timestamps and the description link that follow are not decoded.
type Proposal struct {
	AccountType               GovernanceAccountType
	Governance                solana.PublicKey
	GoverningTokenMint        solana.PublicKey
	State                     ProposalState
	TokenOwnerRecord          solana.PublicKey
	SignatoriesCount          uint8
	SignatoriesSignedOffCount uint8
	VoteType                  VoteType
	Options                   []ProposalOption
	DenyVoteWeight            *uint64
}

func (p *Proposal) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if p.AccountType, err = readAccountType(dec, AccountTypeProposalV2); err != nil {
		return err
	}
	if p.Governance, err = readPublicKey(dec); err != nil {
		return err
	}
	if p.GoverningTokenMint, err = readPublicKey(dec); err != nil {
		return err
	}
	state, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	p.State = ProposalState(state)
	if p.TokenOwnerRecord, err = readPublicKey(dec); err != nil {
		return err
	}
	if p.SignatoriesCount, err = dec.ReadUint8(); err != nil {
		return err
	}
	if p.SignatoriesSignedOffCount, err = dec.ReadUint8(); err != nil {
		return err
	}
	if err = p.VoteType.unmarshal(dec); err != nil {
		return err
	}

	// label length prefix plus the fixed option fields
	const minOptionSize = 4 + 8 + 1 + 2 + 2 + 2
	n, err := readLength(dec, minOptionSize)
	if err != nil {
		return fmt.Errorf("options: %w", err)
	}
	p.Options = make([]ProposalOption, n)
	for i := range p.Options {
		if err = p.Options[i].unmarshal(dec); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}

	present, err := readFlag(dec)
	if err != nil {
		return fmt.Errorf("deny vote weight: %w", err)
	}
	if present {
		weight, err := dec.ReadUint64(bin.LE)
		if err != nil {
			return err
		}
		p.DenyVoteWeight = &weight
	}

	return nil
}

func (p Proposal) MarshalWithEncoder(enc *bin.Encoder) error {
	err := firstErr(
		func() error { return enc.WriteUint8(uint8(AccountTypeProposalV2)) },
		func() error { return writePublicKey(enc, p.Governance) },
		func() error { return writePublicKey(enc, p.GoverningTokenMint) },
		func() error { return enc.WriteUint8(uint8(p.State)) },
		func() error { return writePublicKey(enc, p.TokenOwnerRecord) },
		func() error { return enc.WriteUint8(p.SignatoriesCount) },
		func() error { return enc.WriteUint8(p.SignatoriesSignedOffCount) },
		func() error { return p.VoteType.marshal(enc) },
		func() error { return writeLength(enc, len(p.Options)) },
	)
	if err != nil {
		return err
	}
	for _, option := range p.Options {
		if err = option.marshal(enc); err != nil {
			return err
		}
	}
	if err = writeFlag(enc, p.DenyVoteWeight != nil); err != nil || p.DenyVoteWeight == nil {
		return err
	}

	return enc.WriteUint64(*p.DenyVoteWeight, bin.LE)
}

// ----- token owner record -----

type TokenOwnerRecord struct {
	AccountType                 GovernanceAccountType
	Realm                       solana.PublicKey
	GoverningTokenMint          solana.PublicKey
	GoverningTokenOwner         solana.PublicKey
	GoverningTokenDepositAmount uint64
	UnrelinquishedVotesCount    uint32
	TotalVotesCount             uint32
	OutstandingProposalCount    uint8
	Reserved                    [7]byte
	GovernanceDelegate          *solana.PublicKey
}

func (r *TokenOwnerRecord) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if r.AccountType, err = readAccountType(dec, AccountTypeTokenOwnerRecordV2); err != nil {
		return err
	}
	if r.Realm, err = readPublicKey(dec); err != nil {
		return err
	}
	if r.GoverningTokenMint, err = readPublicKey(dec); err != nil {
		return err
	}
	if r.GoverningTokenOwner, err = readPublicKey(dec); err != nil {
		return err
	}
	if r.GoverningTokenDepositAmount, err = dec.ReadUint64(bin.LE); err != nil {
		return err
	}
	if r.UnrelinquishedVotesCount, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if r.TotalVotesCount, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	if r.OutstandingProposalCount, err = dec.ReadUint8(); err != nil {
		return err
	}
	raw, err := dec.ReadNBytes(len(r.Reserved))
	if err != nil {
		return err
	}
	copy(r.Reserved[:], raw)
	if r.GovernanceDelegate, err = readOptionalPublicKey(dec); err != nil {
		return fmt.Errorf("governance delegate: %w", err)
	}

	return nil
}

func (r TokenOwnerRecord) MarshalWithEncoder(enc *bin.Encoder) error {
	return firstErr(
		func() error { return enc.WriteUint8(uint8(AccountTypeTokenOwnerRecordV2)) },
		func() error { return writePublicKey(enc, r.Realm) },
		func() error { return writePublicKey(enc, r.GoverningTokenMint) },
		func() error { return writePublicKey(enc, r.GoverningTokenOwner) },
		func() error { return enc.WriteUint64(r.GoverningTokenDepositAmount, bin.LE) },
		func() error { return enc.WriteUint32(r.UnrelinquishedVotesCount, bin.LE) },
		func() error { return enc.WriteUint32(r.TotalVotesCount, bin.LE) },
		func() error { return enc.WriteUint8(r.OutstandingProposalCount) },
		func() error { return enc.WriteBytes(r.Reserved[:], false) },
		func() error { return writeOptionalPublicKey(enc, r.GovernanceDelegate) },
	)
}

// ----- proposal transaction -----

type AccountMetaData struct {
	PublicKey  solana.PublicKey
	IsSigner   bool
	IsWritable bool
}

// InstructionData is an instruction as stored inside a proposal transaction.
type InstructionData struct {
	ProgramID solana.PublicKey
	Accounts  []AccountMetaData
	Data      []byte
}

// NewInstructionData captures ix in the form the governance program stores.
func NewInstructionData(ix solana.Instruction) (InstructionData, error) {
	data, err := ix.Data()
	if err != nil {
		return InstructionData{}, fmt.Errorf("unable to get instruction data: %w", err)
	}

	return InstructionData{
		ProgramID: ix.ProgramID(),
		Accounts: lo.Map(ix.Accounts(), func(meta *solana.AccountMeta, _ int) AccountMetaData {
			return AccountMetaData{PublicKey: meta.PublicKey, IsSigner: meta.IsSigner, IsWritable: meta.IsWritable}
		}),
		Data: data,
	}, nil
}

func (d *InstructionData) unmarshal(dec *bin.Decoder) (err error) {
	if d.ProgramID, err = readPublicKey(dec); err != nil {
		return err
	}
	const accountMetaSize = solana.PublicKeyLength + 2
	n, err := readLength(dec, accountMetaSize)
	if err != nil {
		return fmt.Errorf("accounts: %w", err)
	}
	d.Accounts = make([]AccountMetaData, n)
	for i := range d.Accounts {
		if d.Accounts[i].PublicKey, err = readPublicKey(dec); err != nil {
			return err
		}
		if d.Accounts[i].IsSigner, err = readFlag(dec); err != nil {
			return err
		}
		if d.Accounts[i].IsWritable, err = readFlag(dec); err != nil {
			return err
		}
	}
	if d.Data, err = readByteVec(dec); err != nil {
		return fmt.Errorf("data: %w", err)
	}

	return nil
}

func (d InstructionData) MarshalWithEncoder(enc *bin.Encoder) error {
	if err := writePublicKey(enc, d.ProgramID); err != nil {
		return err
	}
	if err := writeLength(enc, len(d.Accounts)); err != nil {
		return err
	}
	for _, account := range d.Accounts {
		err := firstErr(
			func() error { return writePublicKey(enc, account.PublicKey) },
			func() error { return writeFlag(enc, account.IsSigner) },
			func() error { return writeFlag(enc, account.IsWritable) },
		)
		if err != nil {
			return err
		}
	}

	return writeByteVec(enc, d.Data)
}

type TransactionExecutionStatus uint8

const (
	TransactionExecutionNone TransactionExecutionStatus = iota
	TransactionExecutionSuccess
	TransactionExecutionError
)

// ProposalTransaction is the ProposalTransactionV2 record.
type ProposalTransaction struct {
	AccountType      GovernanceAccountType
	Proposal         solana.PublicKey
	OptionIndex      uint8
	TransactionIndex uint16
	HoldUpTime       uint32
	Instructions     []InstructionData
	ExecutedAt       *int64
	ExecutionStatus  TransactionExecutionStatus
}

func (t *ProposalTransaction) UnmarshalWithDecoder(dec *bin.Decoder) (err error) {
	if t.AccountType, err = readAccountType(dec, AccountTypeProposalTransactionV2); err != nil {
		return err
	}
	if t.Proposal, err = readPublicKey(dec); err != nil {
		return err
	}
	if t.OptionIndex, err = dec.ReadUint8(); err != nil {
		return err
	}
	if t.TransactionIndex, err = dec.ReadUint16(bin.LE); err != nil {
		return err
	}
	if t.HoldUpTime, err = dec.ReadUint32(bin.LE); err != nil {
		return err
	}
	// program id plus two empty length prefixes
	const minInstructionSize = solana.PublicKeyLength + 4 + 4
	n, err := readLength(dec, minInstructionSize)
	if err != nil {
		return fmt.Errorf("instructions: %w", err)
	}
	t.Instructions = make([]InstructionData, n)
	for i := range t.Instructions {
		if err = t.Instructions[i].unmarshal(dec); err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
	}
	present, err := readFlag(dec)
	if err != nil {
		return fmt.Errorf("executed at: %w", err)
	}
	if present {
		executedAt, err := dec.ReadInt64(bin.LE)
		if err != nil {
			return err
		}
		t.ExecutedAt = &executedAt
	}
	status, err := dec.ReadUint8()
	if err != nil {
		return err
	}
	if TransactionExecutionStatus(status) > TransactionExecutionError {
		return fmt.Errorf("execution status: %w: %d", ErrInvalidEnumVariant, status)
	}
	t.ExecutionStatus = TransactionExecutionStatus(status)

	return nil
}

func (t ProposalTransaction) MarshalWithEncoder(enc *bin.Encoder) error {
	err := firstErr(
		func() error { return enc.WriteUint8(uint8(AccountTypeProposalTransactionV2)) },
		func() error { return writePublicKey(enc, t.Proposal) },
		func() error { return enc.WriteUint8(t.OptionIndex) },
		func() error { return enc.WriteUint16(t.TransactionIndex, bin.LE) },
		func() error { return enc.WriteUint32(t.HoldUpTime, bin.LE) },
		func() error { return writeLength(enc, len(t.Instructions)) },
	)
	if err != nil {
		return err
	}
	for _, ix := range t.Instructions {
		if err = ix.MarshalWithEncoder(enc); err != nil {
			return err
		}
	}
	if err = writeFlag(enc, t.ExecutedAt != nil); err != nil {
		return err
	}
	if t.ExecutedAt != nil {
		if err = enc.WriteInt64(*t.ExecutedAt, bin.LE); err != nil {
			return err
		}
	}

	return enc.WriteUint8(uint8(t.ExecutionStatus))
}

func firstErr(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	return nil
}
