package nft

import (
	"crypto/ed25519"
	"encoding/binary"

	"github.com/put-labs/nft-client/pkg/solana"
)

type GetNftAddressArgs struct {
	// Optional. Defaults to ProgramKey.
	Program ed25519.PublicKey
	Mint    ed25519.PublicKey
	TokenID uint64
}

// GetNftAddress derives the NFT account for a token id of a mint from seeds
// [token_id (u64 LE), program, mint].
func GetNftAddress(args *GetNftAddressArgs) (ed25519.PublicKey, uint8, error) {
	program := programOrDefault(args.Program)

	tokenID := make([]byte, 8)
	binary.LittleEndian.PutUint64(tokenID, args.TokenID)

	return solana.FindProgramAddressAndBump(
		program,
		tokenID,
		program,
		args.Mint,
	)
}
