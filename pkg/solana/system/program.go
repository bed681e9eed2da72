package system

import (
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const (
	commandCreateAccount uint32 = 0
)

var createAccountLayout = binary.NewLayout(
	binary.Field{Name: "command", Width: binary.Uint32Size},
	binary.Field{Name: "lamports", Width: binary.Uint64Size},
	binary.Field{Name: "space", Width: binary.Uint64Size},
	binary.Field{Name: "owner", Width: binary.KeySize},
)

// CreateAccount funds address with lamports, allocates size bytes and
// assigns it to owner. Both funder and address sign.
//
// Account references:
//  0. [WRITE, SIGNER] Funding account
//  1. [WRITE, SIGNER] New account
func CreateAccount(funder, address, owner ed25519.PublicKey, lamports, size uint64) solana.Instruction {
	data := make([]byte, createAccountLayout.Span())

	// The buffer is sized from the layout, so only a malformed owner can fail.
	_ = binary.PutUint32(data, createAccountLayout.Offset("command"), commandCreateAccount)
	_ = binary.PutUint64(data, createAccountLayout.Offset("lamports"), lamports)
	_ = binary.PutUint64(data, createAccountLayout.Offset("space"), size)
	if err := binary.PutKey(data, createAccountLayout.Offset("owner"), owner); err != nil {
		panic(errors.Wrap(err, "invalid owner"))
	}

	return solana.NewInstruction(
		SystemAccount,
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(address, true),
	)
}

type DecompiledCreateAccount struct {
	Funder  ed25519.PublicKey
	Address ed25519.PublicKey

	Lamports uint64
	Size     uint64
	Owner    ed25519.PublicKey
}

func DecompileCreateAccount(m solana.Message, index int) (*DecompiledCreateAccount, error) {
	i, err := solana.DecompileInstruction(m, index, SystemAccount, 2)
	if err != nil {
		return nil, err
	}

	if len(i.Data) != createAccountLayout.Span() {
		return nil, solana.ErrIncorrectInstruction
	}
	command, err := binary.GetUint32(i.Data, createAccountLayout.Offset("command"))
	if err != nil || command != commandCreateAccount {
		return nil, solana.ErrIncorrectInstruction
	}

	v := &DecompiledCreateAccount{
		Funder:  i.Accounts[0].PublicKey,
		Address: i.Accounts[1].PublicKey,
	}
	if v.Lamports, err = binary.GetUint64(i.Data, createAccountLayout.Offset("lamports")); err != nil {
		return nil, err
	}
	if v.Size, err = binary.GetUint64(i.Data, createAccountLayout.Offset("space")); err != nil {
		return nil, err
	}
	if v.Owner, err = binary.GetKey(i.Data, createAccountLayout.Offset("owner")); err != nil {
		return nil, err
	}
	return v, nil
}
