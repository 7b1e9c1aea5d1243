package solana

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/smartcontractkit/themis/internal/utils/layout"
)

// Upgradeable loader account state tags.
const (
	LoaderStateUninitialized uint32 = 0
	LoaderStateBuffer        uint32 = 1
	LoaderStateProgram       uint32 = 2
	LoaderStateProgramData   uint32 = 3
)

// Upgradeable loader instruction tags.
const (
	loaderInstructionUpgrade uint32 = 3
	loaderInstructionClose   uint32 = 5
)

const (
	bufferFieldState            = "state"
	bufferFieldAuthorityPresent = "authority_present"
	bufferFieldAuthority        = "authority"
)

// BufferLayout is the header of an upgradeable loader Buffer account. Program bytes follow it.
var BufferLayout = layout.Layout{
	Name:    "loader-buffer",
	Version: 1,
	Fields: []layout.Field{
		{Name: bufferFieldState, Offset: 0, Width: 4, Rule: layout.RuleUint32LE},
		{Name: bufferFieldAuthorityPresent, Offset: 4, Width: 1, Rule: layout.RuleFlag},
		{Name: bufferFieldAuthority, Offset: 5, Width: solana.PublicKeyLength, Rule: layout.RulePublicKey, PresentIf: bufferFieldAuthorityPresent},
	},
}

// bufferTagLayout reads only the state tag so that other loader states are reported as such
// rather than as malformed buffers.
var bufferTagLayout = layout.Layout{Name: BufferLayout.Name, Version: BufferLayout.Version, Fields: BufferLayout.Fields[:1]}

var ErrNotABuffer = errors.New("loader account is not a buffer")

func init() {
	if err := BufferLayout.Validate(); err != nil {
		panic(err)
	}
}

// BufferState is the decoded header of a loader buffer.
type BufferState struct {
	Authority *solana.PublicKey
}

// DecodeBufferState decodes a loader account as a Buffer. Any other state tag is an error.
func DecodeBufferState(data []byte) (BufferState, error) {
	tag, err := bufferTagLayout.Decode(data)
	if err != nil {
		return BufferState{}, err
	}
	if state, _ := tag.Uint32(bufferFieldState); state != LoaderStateBuffer {
		return BufferState{}, fmt.Errorf("%w: state tag %d", ErrNotABuffer, state)
	}

	values, err := BufferLayout.Decode(data)
	if err != nil {
		return BufferState{}, err
	}

	var out BufferState
	if authority, ok := values.PublicKey(bufferFieldAuthority); ok {
		out.Authority = &authority
	}

	return out, nil
}

// NewUpgradeInstruction builds the loader's Upgrade instruction replacing program's code with
// the contents of buffer. Leftover buffer lamports go to spill.
func NewUpgradeInstruction(
	loaderProgram, programData, program, buffer, spill, authority solana.PublicKey,
) solana.Instruction {
	return solana.NewInstruction(loaderProgram, solana.AccountMetaSlice{
		solana.NewAccountMeta(programData, true, false),
		solana.NewAccountMeta(program, true, false),
		solana.NewAccountMeta(buffer, true, false),
		solana.NewAccountMeta(spill, true, false),
		solana.NewAccountMeta(solana.SysVarRentPubkey, false, false),
		solana.NewAccountMeta(solana.SysVarClockPubkey, false, false),
		solana.NewAccountMeta(authority, true, true),
	}, le32(loaderInstructionUpgrade))
}

// NewCloseBufferInstruction builds the loader's Close instruction for a buffer account, sending
// its lamports to recipient.
func NewCloseBufferInstruction(loaderProgram, buffer, recipient, authority solana.PublicKey) solana.Instruction {
	return solana.NewInstruction(loaderProgram, solana.AccountMetaSlice{
		solana.NewAccountMeta(buffer, true, false),
		solana.NewAccountMeta(recipient, true, false),
		solana.NewAccountMeta(authority, false, true),
	}, le32(loaderInstructionClose))
}

func le32(tag uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, tag)
}
