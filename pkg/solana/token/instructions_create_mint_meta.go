package token

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/system"
)

const CreateMintMetaAccountInstructionDataSize = 1 // command

type CreateMintMetaAccountInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Payer ed25519.PublicKey
	Mint  ed25519.PublicKey
	// Derived with GetMintMetaAddress.
	MintMeta ed25519.PublicKey
}

// NewCreateMintMetaAccountInstruction allocates the MintMeta account of a
// mint, funded by the payer.
//
// Account references:
//  0. [WRITE, SIGNER] Payer
//  1. [WRITE] Mint
//  2. [WRITE] MintMeta
//  3. [] Token program
//  4. [] System program
//  5. [] Rent sysvar
func NewCreateMintMetaAccountInstruction(accounts *CreateMintMetaAccountInstructionAccounts) solana.Instruction {
	program := programOrDefault(accounts.Program)

	return solana.NewInstruction(
		program,
		[]byte{byte(CommandCreateMintMetaAccount)},
		solana.NewAccountMeta(accounts.Payer, true),
		solana.NewAccountMeta(accounts.Mint, false),
		solana.NewAccountMeta(accounts.MintMeta, false),
		solana.NewReadonlyAccountMeta(program, false),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	)
}

func DecodeCreateMintMetaAccountInstructionData(data []byte) error {
	return solana.CheckInstructionData(data, byte(CommandCreateMintMetaAccount), CreateMintMetaAccountInstructionDataSize)
}

func DecompileCreateMintMetaAccount(m solana.Message, index int) (*CreateMintMetaAccountInstructionAccounts, error) {
	i, err := decompile(m, index, CommandCreateMintMetaAccount, CreateMintMetaAccountInstructionDataSize, 3)
	if err != nil {
		return nil, err
	}

	return &CreateMintMetaAccountInstructionAccounts{
		Program:  i.Program,
		Payer:    i.Accounts[0].PublicKey,
		Mint:     i.Accounts[1].PublicKey,
		MintMeta: i.Accounts[2].PublicKey,
	}, nil
}
