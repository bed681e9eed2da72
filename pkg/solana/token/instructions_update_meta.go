package token

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const UpdateMetaInstructionDataSize = (1 + // command
	MaxMetaValueLength) // value

var updateMetaLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "value", Width: MaxMetaValueLength},
)

type UpdateMetaInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	MintMeta  ed25519.PublicKey
	Authority ed25519.PublicKey
}

// NewUpdateSymbolInstruction replaces the symbol of a MintMeta account.
//
// Account references:
//  0. [WRITE] MintMeta
//  1. [SIGNER] MintMeta authority
func NewUpdateSymbolInstruction(accounts *UpdateMetaInstructionAccounts, symbol string) (solana.Instruction, error) {
	return newUpdateMetaInstruction(accounts, CommandUpdateSymbol, "symbol", symbol)
}

// NewUpdateNameInstruction replaces the name of a MintMeta account.
//
// Account references:
//  0. [WRITE] MintMeta
//  1. [SIGNER] MintMeta authority
func NewUpdateNameInstruction(accounts *UpdateMetaInstructionAccounts, name string) (solana.Instruction, error) {
	return newUpdateMetaInstruction(accounts, CommandUpdateName, "name", name)
}

// NewUpdateIconInstruction replaces the icon of a MintMeta account.
//
// Account references:
//  0. [WRITE] MintMeta
//  1. [SIGNER] MintMeta authority
func NewUpdateIconInstruction(accounts *UpdateMetaInstructionAccounts, icon string) (solana.Instruction, error) {
	return newUpdateMetaInstruction(accounts, CommandUpdateIcon, "icon", icon)
}

func newUpdateMetaInstruction(accounts *UpdateMetaInstructionAccounts, command Command, arg, value string) (solana.Instruction, error) {
	data := make([]byte, UpdateMetaInstructionDataSize)

	_ = binary.PutUint8(data, updateMetaLayout.Offset("command"), uint8(command))
	if err := binary.PutTerminatedString(data, updateMetaLayout.Offset("value"), MaxMetaValueLength, value); err != nil {
		return solana.Instruction{}, solana.NewArgumentError(arg, err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.MintMeta, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, true),
	), nil
}

func DecodeUpdateSymbolInstructionData(data []byte) (string, error) {
	return decodeUpdateMetaInstructionData(data, CommandUpdateSymbol)
}

func DecodeUpdateNameInstructionData(data []byte) (string, error) {
	return decodeUpdateMetaInstructionData(data, CommandUpdateName)
}

func DecodeUpdateIconInstructionData(data []byte) (string, error) {
	return decodeUpdateMetaInstructionData(data, CommandUpdateIcon)
}

func decodeUpdateMetaInstructionData(data []byte, command Command) (string, error) {
	if err := solana.CheckInstructionData(data, byte(command), UpdateMetaInstructionDataSize); err != nil {
		return "", err
	}
	return binary.GetTerminatedString(data, updateMetaLayout.Offset("value"), MaxMetaValueLength)
}

// DecompileUpdateMeta returns the command, accounts and new value of an
// UpdateSymbol, UpdateName or UpdateIcon instruction.
func DecompileUpdateMeta(m solana.Message, index int) (Command, *UpdateMetaInstructionAccounts, string, error) {
	command, err := GetCommand(m, index)
	if err != nil {
		return CommandUnknown, nil, "", err
	}
	switch command {
	case CommandUpdateSymbol, CommandUpdateName, CommandUpdateIcon:
	default:
		return CommandUnknown, nil, "", solana.ErrIncorrectInstruction
	}

	i, err := decompile(m, index, command, UpdateMetaInstructionDataSize, 2)
	if err != nil {
		return CommandUnknown, nil, "", err
	}

	value, err := decodeUpdateMetaInstructionData(i.Data, command)
	if err != nil {
		return CommandUnknown, nil, "", err
	}

	return command, &UpdateMetaInstructionAccounts{
		Program:   i.Program,
		MintMeta:  i.Accounts[0].PublicKey,
		Authority: i.Accounts[1].PublicKey,
	}, value, nil
}
