package nft

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const UpdateInstructionDataSize = (1 + // command
	binary.Uint8Size + // update_type
	MaxURILength) // uri

var updateLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "updateType", Width: binary.Uint8Size},
	binary.Field{Name: "uri", Width: MaxURILength},
)

type UpdateInstructionArgs struct {
	UpdateType UpdateType
	// The new icon URI of a mint, or the new token URI of an NFT.
	URI string
}

type UpdateInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	// The mint for UpdateTypeIcon, the NFT account for UpdateTypeAsset.
	Target ed25519.PublicKey
	Owner  ed25519.PublicKey
}

// NewUpdateInstruction rewrites the icon URI of a mint or the token URI of an
// NFT.
//
// Account references:
//  0. [WRITE] Mint or NFT account
//  1. [WRITE, SIGNER] Owner
func NewUpdateInstruction(
	accounts *UpdateInstructionAccounts,
	args *UpdateInstructionArgs,
) (solana.Instruction, error) {
	if !args.UpdateType.Valid() {
		return solana.Instruction{}, errors.Wrapf(solana.ErrUnknownVariant, "update type %d", uint8(args.UpdateType))
	}

	data := make([]byte, UpdateInstructionDataSize)

	_ = binary.PutUint8(data, updateLayout.Offset("command"), uint8(CommandUpdate))
	_ = binary.PutUint8(data, updateLayout.Offset("updateType"), uint8(args.UpdateType))
	if err := binary.PutFixedString(data, updateLayout.Offset("uri"), MaxURILength, args.URI); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("uri", err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.Target, false),
		solana.NewAccountMeta(accounts.Owner, true),
	), nil
}

func DecodeUpdateInstructionData(data []byte) (*UpdateInstructionArgs, error) {
	if err := solana.CheckInstructionData(data, byte(CommandUpdate), UpdateInstructionDataSize); err != nil {
		return nil, err
	}

	var args UpdateInstructionArgs
	updateType, _ := binary.GetUint8(data, updateLayout.Offset("updateType"))
	args.UpdateType = UpdateType(updateType)
	if !args.UpdateType.Valid() {
		return nil, errors.Wrapf(solana.ErrUnknownVariant, "update type %d", updateType)
	}
	args.URI, _ = binary.GetFixedString(data, updateLayout.Offset("uri"), MaxURILength)

	return &args, nil
}

func DecompileUpdate(m solana.Message, index int) (*UpdateInstructionAccounts, *UpdateInstructionArgs, error) {
	i, err := decompile(m, index, CommandUpdate, UpdateInstructionDataSize, 2)
	if err != nil {
		return nil, nil, err
	}

	args, err := DecodeUpdateInstructionData(i.Data)
	if err != nil {
		return nil, nil, err
	}

	return &UpdateInstructionAccounts{
		Program: i.Program,
		Target:  i.Accounts[0].PublicKey,
		Owner:   i.Accounts[1].PublicKey,
	}, args, nil
}
