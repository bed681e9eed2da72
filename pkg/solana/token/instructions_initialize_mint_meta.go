package token

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const InitializeMintMetaAccountInstructionDataSize = (1 + // command
	MaxMetaLength) // meta

var initializeMintMetaLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "meta", Width: MaxMetaLength},
)

type InitializeMintMetaAccountInstructionArgs struct {
	Symbol string
	Name   string
	Icon   string
}

type InitializeMintMetaAccountInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Mint     ed25519.PublicKey
	MintMeta ed25519.PublicKey
}

// NewInitializeMintMetaAccountInstruction writes the initial symbol, name and
// icon into a MintMeta account created by NewCreateMintMetaAccountInstruction.
// The three values share a single 168 byte slot.
//
// Account references:
//  0. [] Mint
//  1. [WRITE] MintMeta
func NewInitializeMintMetaAccountInstruction(
	accounts *InitializeMintMetaAccountInstructionAccounts,
	args *InitializeMintMetaAccountInstructionArgs,
) (solana.Instruction, error) {
	data := make([]byte, InitializeMintMetaAccountInstructionDataSize)

	_ = binary.PutUint8(data, initializeMintMetaLayout.Offset("command"), uint8(CommandInitializeMintMetaAccount))
	if err := binary.PutPackedStrings(data, initializeMintMetaLayout.Offset("meta"), MaxMetaLength, args.Symbol, args.Name, args.Icon); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("meta", err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewReadonlyAccountMeta(accounts.Mint, false),
		solana.NewAccountMeta(accounts.MintMeta, false),
	), nil
}

func DecodeInitializeMintMetaAccountInstructionData(data []byte) (*InitializeMintMetaAccountInstructionArgs, error) {
	if err := solana.CheckInstructionData(data, byte(CommandInitializeMintMetaAccount), InitializeMintMetaAccountInstructionDataSize); err != nil {
		return nil, err
	}

	values, err := binary.GetPackedStrings(data, initializeMintMetaLayout.Offset("meta"), MaxMetaLength, 3)
	if err != nil {
		return nil, err
	}

	return &InitializeMintMetaAccountInstructionArgs{
		Symbol: values[0],
		Name:   values[1],
		Icon:   values[2],
	}, nil
}

func DecompileInitializeMintMetaAccount(m solana.Message, index int) (*InitializeMintMetaAccountInstructionAccounts, *InitializeMintMetaAccountInstructionArgs, error) {
	i, err := decompile(m, index, CommandInitializeMintMetaAccount, InitializeMintMetaAccountInstructionDataSize, 2)
	if err != nil {
		return nil, nil, err
	}

	args, err := DecodeInitializeMintMetaAccountInstructionData(i.Data)
	if err != nil {
		return nil, nil, err
	}

	return &InitializeMintMetaAccountInstructionAccounts{
		Program:  i.Program,
		Mint:     i.Accounts[0].PublicKey,
		MintMeta: i.Accounts[1].PublicKey,
	}, args, nil
}
