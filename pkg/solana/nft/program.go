package nft

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"math"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
)

// ProgramKey is the address of the NFT program.
//
// Current key: An2DRyUtGBKYioLhHJEQ3nPcGgzzRJQ8vgdhyjdtC14H
var ProgramKey = mustBase58Decode("An2DRyUtGBKYioLhHJEQ3nPcGgzzRJQ8vgdhyjdtC14H")

// Fixed text slot widths shared by account records and instructions.
const (
	MaxNameLength   = 32
	MaxSymbolLength = 8
	MaxURILength    = 200
)

var (
	// ErrSupplyExhausted indicates a mint has already issued its total supply.
	ErrSupplyExhausted = errors.New("mint supply exhausted")

	// ErrAccountFrozen indicates the NFT account is frozen.
	ErrAccountFrozen = errors.New("nft account is frozen")

	// ErrUninitializedAccount indicates the NFT account was never initialized.
	ErrUninitializedAccount = errors.New("nft account is uninitialized")
)

type Command byte

const (
	CommandInitializeMint Command = iota
	CommandMintTo
	CommandTransfer
	CommandUpdate
	CommandFreeze
	CommandThaw
	CommandSetAuthority
	CommandBurn

	CommandUnknown = Command(math.MaxUint8)
)

func (c Command) String() string {
	switch c {
	case CommandInitializeMint:
		return "InitializeMint"
	case CommandMintTo:
		return "MintTo"
	case CommandTransfer:
		return "Transfer"
	case CommandUpdate:
		return "Update"
	case CommandFreeze:
		return "Freeze"
	case CommandThaw:
		return "Thaw"
	case CommandSetAuthority:
		return "SetAuthority"
	case CommandBurn:
		return "Burn"
	}
	return fmt.Sprintf("Unknown(%d)", byte(c))
}

// AuthorityType selects the authority rewritten by SetAuthority.
type AuthorityType uint8

const (
	AuthorityTypeMint AuthorityType = iota
	AuthorityTypeFreeze
	AuthorityTypeClose
	AuthorityTypeAccountOwner
)

func (t AuthorityType) Valid() bool {
	return t <= AuthorityTypeAccountOwner
}

func (t AuthorityType) String() string {
	switch t {
	case AuthorityTypeMint:
		return "mint"
	case AuthorityTypeFreeze:
		return "freeze"
	case AuthorityTypeClose:
		return "close"
	case AuthorityTypeAccountOwner:
		return "account_owner"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
}

// UpdateType selects the URI rewritten by Update. Icon targets a mint, Asset
// targets an NFT account.
type UpdateType uint8

const (
	UpdateTypeIcon UpdateType = iota
	UpdateTypeAsset
)

func (t UpdateType) Valid() bool {
	return t <= UpdateTypeAsset
}

func (t UpdateType) String() string {
	switch t {
	case UpdateTypeIcon:
		return "icon"
	case UpdateTypeAsset:
		return "asset"
	}
	return fmt.Sprintf("unknown(%d)", uint8(t))
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
		return CommandUnknown, errors.New("nft instruction missing data")
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
