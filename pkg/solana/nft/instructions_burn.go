package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
)

const BurnInstructionDataSize = 1 // command

type BurnInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Nft   ed25519.PublicKey
	Owner ed25519.PublicKey
}

// NewBurnInstruction destroys an NFT. Frozen NFTs cannot be burned.
//
// Account references:
//  0. [WRITE] NFT account
//  1. [WRITE, SIGNER] Owner
func NewBurnInstruction(accounts *BurnInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		[]byte{byte(CommandBurn)},
		solana.NewAccountMeta(accounts.Nft, false),
		solana.NewAccountMeta(accounts.Owner, true),
	)
}

func DecodeBurnInstructionData(data []byte) error {
	return solana.CheckInstructionData(data, byte(CommandBurn), BurnInstructionDataSize)
}

func DecompileBurn(m solana.Message, index int) (*BurnInstructionAccounts, error) {
	i, err := decompile(m, index, CommandBurn, BurnInstructionDataSize, 2)
	if err != nil {
		return nil, err
	}

	return &BurnInstructionAccounts{
		Program: i.Program,
		Nft:     i.Accounts[0].PublicKey,
		Owner:   i.Accounts[1].PublicKey,
	}, nil
}
