package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
)

const ThawInstructionDataSize = 1 // command

type ThawInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Nft             ed25519.PublicKey
	FreezeAuthority ed25519.PublicKey
	Mint            ed25519.PublicKey
}

// NewThawInstruction thaws a frozen NFT. The signer must be the mint's freeze
// authority.
//
// Account references:
//  0. [WRITE] NFT account
//  1. [WRITE, SIGNER] Freeze authority
//  2. [WRITE] Mint
func NewThawInstruction(accounts *ThawInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		[]byte{byte(CommandThaw)},
		solana.NewAccountMeta(accounts.Nft, false),
		solana.NewAccountMeta(accounts.FreezeAuthority, true),
		solana.NewAccountMeta(accounts.Mint, false),
	)
}

func DecodeThawInstructionData(data []byte) error {
	return solana.CheckInstructionData(data, byte(CommandThaw), ThawInstructionDataSize)
}

func DecompileThaw(m solana.Message, index int) (*ThawInstructionAccounts, error) {
	i, err := decompile(m, index, CommandThaw, ThawInstructionDataSize, 3)
	if err != nil {
		return nil, err
	}

	return &ThawInstructionAccounts{
		Program:         i.Program,
		Nft:             i.Accounts[0].PublicKey,
		FreezeAuthority: i.Accounts[1].PublicKey,
		Mint:            i.Accounts[2].PublicKey,
	}, nil
}
