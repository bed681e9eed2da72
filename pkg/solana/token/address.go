package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/put-labs/nft-client/pkg/solana"
)

var MintMetaPrefix = []byte("MintMeta")

type GetMintMetaAddressArgs struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey
	Mint    ed25519.PublicKey
}

// GetMintMetaAddress derives the MintMeta account of a mint from seeds
// ["MintMeta", mint]. NativeMint resolves to NativeMintMeta with bump 0.
func GetMintMetaAddress(args *GetMintMetaAddressArgs) (ed25519.PublicKey, uint8, error) {
	if bytes.Equal(args.Mint, NativeMint) {
		return NativeMintMeta, 0, nil
	}

	return solana.FindProgramAddressAndBump(
		programOrDefault(args.Program),
		MintMetaPrefix,
		args.Mint,
	)
}
