package token

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/testutil"
)

func TestWellKnownAddresses(t *testing.T) {
	assert.Len(t, ProgramKey, ed25519.PublicKeySize)
	assert.Equal(t, "PutToken11111111111111111111111111111111111", base58.Encode(ProgramKey))
	assert.Equal(t, "Put1111111111111111111111111111111111111111", base58.Encode(NativeMint))
	assert.Equal(t, "PutMeta111111111111111111111111111111111111", base58.Encode(NativeMintMeta))
}

func TestGetMintMetaAddress(t *testing.T) {
	mint := testutil.GenerateKeys(t, 1)[0]

	address, bump, err := GetMintMetaAddress(&GetMintMetaAddressArgs{Mint: mint})
	require.NoError(t, err)
	assert.False(t, solana.IsOnCurve(address))

	expected, err := solana.CreateProgramAddress(ProgramKey, []byte("MintMeta"), mint, []byte{bump})
	require.NoError(t, err)
	assert.Equal(t, expected, address)

	again, _, err := GetMintMetaAddress(&GetMintMetaAddressArgs{Mint: mint})
	require.NoError(t, err)
	assert.Equal(t, address, again)

	other, _, err := GetMintMetaAddress(&GetMintMetaAddressArgs{Program: testutil.GenerateKeys(t, 1)[0], Mint: mint})
	require.NoError(t, err)
	assert.NotEqual(t, address, other)
}

func TestGetMintMetaAddress_NativeMint(t *testing.T) {
	address, bump, err := GetMintMetaAddress(&GetMintMetaAddressArgs{Mint: NativeMint})
	require.NoError(t, err)
	assert.Equal(t, NativeMintMeta, address)
	assert.EqualValues(t, 0, bump)

	// The native mint bypasses derivation regardless of the program.
	address, _, err = GetMintMetaAddress(&GetMintMetaAddressArgs{Program: testutil.GenerateKeys(t, 1)[0], Mint: NativeMint})
	require.NoError(t, err)
	assert.Equal(t, NativeMintMeta, address)

	derived, _, err := solana.FindProgramAddressAndBump(ProgramKey, []byte("MintMeta"), NativeMint)
	require.NoError(t, err)
	assert.NotEqual(t, NativeMintMeta, derived)
}
