package nft

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const SetAuthorityInstructionDataSize = (1 + // command
	binary.Uint8Size + // authority_type
	binary.OptionalKeySize) // new_authority

var setAuthorityLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "authorityType", Width: binary.Uint8Size},
	binary.Field{Name: "newAuthority", Width: binary.OptionalKeySize},
)

type SetAuthorityInstructionArgs struct {
	AuthorityType AuthorityType
	// Optional. Nil removes the authority.
	NewAuthority ed25519.PublicKey
}

type SetAuthorityInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	// The mint or NFT account whose authority changes.
	Target           ed25519.PublicKey
	CurrentAuthority ed25519.PublicKey
}

// NewSetAuthorityInstruction replaces one authority of a mint or NFT account.
//
// Account references:
//  0. [WRITE] Mint or NFT account
//  1. [WRITE, SIGNER] Current authority
func NewSetAuthorityInstruction(
	accounts *SetAuthorityInstructionAccounts,
	args *SetAuthorityInstructionArgs,
) (solana.Instruction, error) {
	if !args.AuthorityType.Valid() {
		return solana.Instruction{}, errors.Wrapf(solana.ErrUnknownVariant, "authority type %d", uint8(args.AuthorityType))
	}

	data := make([]byte, SetAuthorityInstructionDataSize)

	_ = binary.PutUint8(data, setAuthorityLayout.Offset("command"), uint8(CommandSetAuthority))
	_ = binary.PutUint8(data, setAuthorityLayout.Offset("authorityType"), uint8(args.AuthorityType))
	if err := binary.PutOptionalKey(data, setAuthorityLayout.Offset("newAuthority"), args.NewAuthority); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("new_authority", err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.Target, false),
		solana.NewAccountMeta(accounts.CurrentAuthority, true),
	), nil
}

func DecodeSetAuthorityInstructionData(data []byte) (*SetAuthorityInstructionArgs, error) {
	if err := solana.CheckInstructionData(data, byte(CommandSetAuthority), SetAuthorityInstructionDataSize); err != nil {
		return nil, err
	}

	var args SetAuthorityInstructionArgs
	authorityType, _ := binary.GetUint8(data, setAuthorityLayout.Offset("authorityType"))
	args.AuthorityType = AuthorityType(authorityType)
	if !args.AuthorityType.Valid() {
		return nil, errors.Wrapf(solana.ErrUnknownVariant, "authority type %d", authorityType)
	}
	args.NewAuthority, _ = binary.GetOptionalKey(data, setAuthorityLayout.Offset("newAuthority"))

	return &args, nil
}

func DecompileSetAuthority(m solana.Message, index int) (*SetAuthorityInstructionAccounts, *SetAuthorityInstructionArgs, error) {
	i, err := decompile(m, index, CommandSetAuthority, SetAuthorityInstructionDataSize, 2)
	if err != nil {
		return nil, nil, err
	}

	args, err := DecodeSetAuthorityInstructionData(i.Data)
	if err != nil {
		return nil, nil, err
	}

	return &SetAuthorityInstructionAccounts{
		Program:          i.Program,
		Target:           i.Accounts[0].PublicKey,
		CurrentAuthority: i.Accounts[1].PublicKey,
	}, args, nil
}
