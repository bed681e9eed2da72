package token

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
)

// ProgramKey is the address of the token program, which owns MintMeta
// accounts.
//
// Current key: PutToken11111111111111111111111111111111111
var ProgramKey = mustBase58Decode("PutToken11111111111111111111111111111111111")

var (
	// NativeMint is the mint of wrapped PUT.
	NativeMint = mustBase58Decode("Put1111111111111111111111111111111111111111")

	// NativeMintMeta is the fixed MintMeta address of NativeMint. It is not
	// derived.
	NativeMintMeta = mustBase58Decode("PutMeta111111111111111111111111111111111111")
)

// Metadata of NativeMint.
const (
	NativeMintSymbol = "WPUT"
	NativeMintName   = "Wrap PUT"
	NativeMintIcon   = "https://static.put.com/icon/put.svg"
)

// Command is the opcode of a token program instruction. Only the MintMeta
// instructions are supported.
type Command byte

const (
	CommandUpdateSymbol Command = iota + 18
	CommandUpdateName
	CommandUpdateIcon
	CommandCreateMintMetaAccount
	CommandInitializeMintMetaAccount

	CommandUnknown = Command(math.MaxUint8)
)

func (c Command) String() string {
	switch c {
	case CommandUpdateSymbol:
		return "UpdateSymbol"
	case CommandUpdateName:
		return "UpdateName"
	case CommandUpdateIcon:
		return "UpdateIcon"
	case CommandCreateMintMetaAccount:
		return "CreateMintMetaAccount"
	case CommandInitializeMintMetaAccount:
		return "InitializeMintMetaAccount"
	}
	return fmt.Sprintf("Unknown(%d)", byte(c))
}

// NativeMintMetaDefaults returns the metadata of NativeMint.
func NativeMintMetaDefaults() *MintMeta {
	return &MintMeta{
		IsInitialized: true,
		Symbol:        NativeMintSymbol,
		Name:          NativeMintName,
		Icon:          NativeMintIcon,
	}
}

// GetCommand returns the command of the instruction at index, which must be
// addressed to ProgramKey.
func GetCommand(m solana.Message, index int) (Command, error) {
	if index >= len(m.Instructions) {
		return CommandUnknown, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]

	if int(i.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[i.ProgramIndex], ProgramKey) {
		return CommandUnknown, solana.ErrIncorrectProgram
	}
	if len(i.Data) == 0 {
		return CommandUnknown, errors.New("token instruction missing data")
	}

	return Command(i.Data[0]), nil
}

func decompile(m solana.Message, index int, command Command, span, minAccounts int) (*solana.Instruction, error) {
	i, err := solana.DecompileInstruction(m, index, ProgramKey, minAccounts)
	if err != nil {
		return nil, err
	}
	if err := solana.CheckInstructionData(i.Data, byte(command), span); err != nil {
		return nil, err
	}
	return i, nil
}

func programOrDefault(program ed25519.PublicKey) ed25519.PublicKey {
	if len(program) > 0 {
		return program
	}
	return ProgramKey
}

func mustBase58Decode(value string) ed25519.PublicKey {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
