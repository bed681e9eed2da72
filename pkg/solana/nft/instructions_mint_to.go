package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
	"github.com/put-labs/nft-client/pkg/solana/system"
)

const MintToInstructionDataSize = (1 + // command
	MaxURILength) // token_uri

var mintToLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "tokenUri", Width: MaxURILength},
)

type MintToInstructionArgs struct {
	TokenURI string
}

type MintToInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	// The NFT account, derived with GetNftAddress for the mint's next token id.
	Nft   ed25519.PublicKey
	Mint  ed25519.PublicKey
	Owner ed25519.PublicKey
}

// NewMintToInstruction issues the next NFT of a mint to the owner.
//
// Account references:
//  0. [WRITE] NFT account
//  1. [WRITE] Mint
//  2. [WRITE, SIGNER] Owner
//  3. [] System program
//  4. [] Rent sysvar
func NewMintToInstruction(
	accounts *MintToInstructionAccounts,
	args *MintToInstructionArgs,
) (solana.Instruction, error) {
	data := make([]byte, MintToInstructionDataSize)

	_ = binary.PutUint8(data, mintToLayout.Offset("command"), uint8(CommandMintTo))
	if err := binary.PutFixedString(data, mintToLayout.Offset("tokenUri"), MaxURILength, args.TokenURI); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("token_uri", err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.Nft, false),
		solana.NewAccountMeta(accounts.Mint, false),
		solana.NewAccountMeta(accounts.Owner, true),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	), nil
}

func DecodeMintToInstructionData(data []byte) (*MintToInstructionArgs, error) {
	if err := solana.CheckInstructionData(data, byte(CommandMintTo), MintToInstructionDataSize); err != nil {
		return nil, err
	}

	var args MintToInstructionArgs
	args.TokenURI, _ = binary.GetFixedString(data, mintToLayout.Offset("tokenUri"), MaxURILength)
	return &args, nil
}

func DecompileMintTo(m solana.Message, index int) (*MintToInstructionAccounts, *MintToInstructionArgs, error) {
	i, err := decompile(m, index, CommandMintTo, MintToInstructionDataSize, 3)
	if err != nil {
		return nil, nil, err
	}

	args, err := DecodeMintToInstructionData(i.Data)
	if err != nil {
		return nil, nil, err
	}

	return &MintToInstructionAccounts{
		Program: i.Program,
		Nft:     i.Accounts[0].PublicKey,
		Mint:    i.Accounts[1].PublicKey,
		Owner:   i.Accounts[2].PublicKey,
	}, args, nil
}
