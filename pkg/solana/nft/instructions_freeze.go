package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
)

const FreezeInstructionDataSize = 1 // command

type FreezeInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Nft             ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey
	Mint            ed25519.PublicKey
}

// NewFreezeInstruction freezes an NFT so it can be neither transferred nor
// burned until thawed. The signer must be the mint's freeze authority.
//
// Account references:
//  0. [WRITE] NFT account
//  1. [WRITE, SIGNER] Freeze authority
//  2. [WRITE] Mint
func NewFreezeInstruction(accounts *FreezeInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		[]byte{byte(CommandFreeze)},
		solana.NewAccountMeta(accounts.Nft, false),
		solana.NewAccountMeta(accounts.FreezeAuthority, true),
		solana.NewAccountMeta(accounts.Mint, false),
	)
}

func DecodeFreezeInstructionData(data []byte) error {
	return solana.CheckInstructionData(data, byte(CommandFreeze), FreezeInstructionDataSize)
}

func DecompileFreeze(m solana.Message, index int) (*FreezeInstructionAccounts, error) {
	i, err := decompile(m, index, CommandFreeze, FreezeInstructionDataSize, 3)
	if err != nil {
		return nil, err
	}

	return &FreezeInstructionAccounts{
		Program:         i.Program,
		Nft:             i.Accounts[0].PublicKey,
		FreezeAuthority: i.Accounts[1].PublicKey,
		Mint:            i.Accounts[2].PublicKey,
	}, nil
}
