package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
)

const TransferInstructionDataSize = 1 // command

type TransferInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	From ed25519.PublicKey
	To   ed25519.PublicKey
	Nft  ed25519.PublicKey
}

// NewTransferInstruction moves an NFT from its current owner to a new owner.
//
// Account references:
//  0. [WRITE, SIGNER] Current owner
//  1. [WRITE] New owner
//  2. [WRITE] NFT account
func NewTransferInstruction(accounts *TransferInstructionAccounts) solana.Instruction {
	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		[]byte{byte(CommandTransfer)},
		solana.NewAccountMeta(accounts.From, true),
		solana.NewAccountMeta(accounts.To, false),
		solana.NewAccountMeta(accounts.Nft, false),
	)
}

func DecodeTransferInstructionData(data []byte) error {
	return solana.CheckInstructionData(data, byte(CommandTransfer), TransferInstructionDataSize)
}

func DecompileTransfer(m solana.Message, index int) (*TransferInstructionAccounts, error) {
	i, err := decompile(m, index, CommandTransfer, TransferInstructionDataSize, 3)
	if err != nil {
		return nil, err
	}

	return &TransferInstructionAccounts{
		Program: i.Program,
		From:    i.Accounts[0].PublicKey,
		To:      i.Accounts[1].PublicKey,
		Nft:     i.Accounts[2].PublicKey,
	}, nil
}
