package nft

import (
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
	"github.com/put-labs/nft-client/pkg/solana/system"
)

const InitializeMintInstructionDataSize = (1 + // command
	binary.Uint64Size + // total_supply
	binary.KeySize + // mint_authority
	binary.OptionalKeySize + // freeze_authority
	MaxNameLength + // name
	MaxSymbolLength + // symbol
	MaxURILength) // icon_uri

var initializeMintLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: 1},
	binary.Field{Name: "totalSupply", Width: binary.Uint64Size},
	binary.Field{Name: "mintAuthority", Width: binary.KeySize},
	binary.Field{Name: "freezeAuthority", Width: binary.OptionalKeySize},
	binary.Field{Name: "name", Width: MaxNameLength},
	binary.Field{Name: "symbol", Width: MaxSymbolLength},
	binary.Field{Name: "iconUri", Width: MaxURILength},
)

type InitializeMintInstructionArgs struct {
	TotalSupply uint64
	// Optional. Defaults to the MintAuthority account.
	MintAuthority ed25519.PublicKey
	// Optional. Nil creates a mint that cannot freeze its NFTs.
	FreezeAuthority ed25519.PublicKey
	Name            string
	Symbol          string
	IconURI         string
}

type InitializeMintInstructionAccounts struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey

	Mint          ed25519.PublicKey
	MintAuthority ed25519.PublicKey
}

// NewInitializeMintInstruction initializes a new NFT mint. The mint must sign
// and is usually created by a preceding system.CreateAccount in the same
// transaction.
//
// Account references:
//  0. [WRITE, SIGNER] Mint
//  1. [SIGNER] Mint authority
//  2. [] System program
//  3. [] Rent sysvar
func NewInitializeMintInstruction(
	accounts *InitializeMintInstructionAccounts,
	args *InitializeMintInstructionArgs,
) (solana.Instruction, error) {
	mintAuthority := args.MintAuthority
	if len(mintAuthority) == 0 {
		mintAuthority = accounts.MintAuthority
	}

	data := make([]byte, InitializeMintInstructionDataSize)

	_ = binary.PutUint8(data, initializeMintLayout.Offset("command"), uint8(CommandInitializeMint))
	_ = binary.PutUint64(data, initializeMintLayout.Offset("totalSupply"), args.TotalSupply)
	if err := binary.PutKey(data, initializeMintLayout.Offset("mintAuthority"), mintAuthority); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("mint_authority", err)
	}
	if err := binary.PutOptionalKey(data, initializeMintLayout.Offset("freezeAuthority"), args.FreezeAuthority); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("freeze_authority", err)
	}
	if err := binary.PutFixedString(data, initializeMintLayout.Offset("name"), MaxNameLength, args.Name); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("name", err)
	}
	if err := binary.PutFixedString(data, initializeMintLayout.Offset("symbol"), MaxSymbolLength, args.Symbol); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("symbol", err)
	}
	if err := binary.PutFixedString(data, initializeMintLayout.Offset("iconUri"), MaxURILength, args.IconURI); err != nil {
		return solana.Instruction{}, solana.NewArgumentError("icon_uri", err)
	}

	return solana.NewInstruction(
		programOrDefault(accounts.Program),
		data,
		solana.NewAccountMeta(accounts.Mint, true),
		solana.NewReadonlyAccountMeta(accounts.MintAuthority, true),
		solana.NewReadonlyAccountMeta(system.SystemAccount, false),
		solana.NewReadonlyAccountMeta(system.RentSysVar, false),
	), nil
}

func DecodeInitializeMintInstructionData(data []byte) (*InitializeMintInstructionArgs, error) {
	if err := solana.CheckInstructionData(data, byte(CommandInitializeMint), InitializeMintInstructionDataSize); err != nil {
		return nil, err
	}

	var args InitializeMintInstructionArgs
	args.TotalSupply, _ = binary.GetUint64(data, initializeMintLayout.Offset("totalSupply"))
	args.MintAuthority, _ = binary.GetKey(data, initializeMintLayout.Offset("mintAuthority"))
	args.FreezeAuthority, _ = binary.GetOptionalKey(data, initializeMintLayout.Offset("freezeAuthority"))
	args.Name, _ = binary.GetFixedString(data, initializeMintLayout.Offset("name"), MaxNameLength)
	args.Symbol, _ = binary.GetFixedString(data, initializeMintLayout.Offset("symbol"), MaxSymbolLength)
	args.IconURI, _ = binary.GetFixedString(data, initializeMintLayout.Offset("iconUri"), MaxURILength)

	return &args, nil
}

func DecompileInitializeMint(m solana.Message, index int) (*InitializeMintInstructionAccounts, *InitializeMintInstructionArgs, error) {
	i, err := decompile(m, index, CommandInitializeMint, InitializeMintInstructionDataSize, 2)
	if err != nil {
		return nil, nil, err
	}

	args, err := DecodeInitializeMintInstructionData(i.Data)
	if err != nil {
		return nil, nil, err
	}

	return &InitializeMintInstructionAccounts{
		Program:       i.Program,
		Mint:          i.Accounts[0].PublicKey,
		MintAuthority: i.Accounts[1].PublicKey,
	}, args, nil
}
