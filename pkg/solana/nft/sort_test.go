package nft

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/testutil"
)

func TestSortAccounts(t *testing.T) {
	keys := testutil.GenerateKeys(t, 8)
	mintA, mintB, owner, stranger := keys[0], keys[1], keys[2], keys[3]
	if base58.Encode(mintA) > base58.Encode(mintB) {
		mintA, mintB = mintB, mintA
	}

	keyed := func(address []byte, account Account) solana.KeyedAccount {
		data, err := account.Marshal()
		require.NoError(t, err)
		return solana.KeyedAccount{
			PublicKey: address,
			Account:   solana.AccountInfo{Owner: ProgramKey, Data: data},
		}
	}

	accounts := []solana.KeyedAccount{
		keyed(keys[4], Account{Mint: mintB, Owner: owner, State: AccountStateInitialized, TokenID: 7}),
		keyed(keys[5], Account{Mint: mintA, Owner: owner, State: AccountStateFrozen, TokenID: 12345}),
		{PublicKey: keys[6], Account: solana.AccountInfo{Owner: ProgramKey, Data: []byte{1, 2, 3}}},
		keyed(keys[7], Account{Mint: mintA, Owner: owner, State: AccountStateInitialized, TokenID: 3}),
		{PublicKey: stranger, Account: solana.AccountInfo{Owner: stranger, Data: make([]byte, AccountSize)}},
	}

	sorted := SortAccounts(nil, accounts)

	require.Len(t, sorted.Mints, 2)
	assert.Equal(t, mintA, sorted.Mints[0].Mint)
	require.Len(t, sorted.Mints[0].Accounts, 2)
	assert.EqualValues(t, 3, sorted.Mints[0].Accounts[0].Account.TokenID)
	assert.Equal(t, keys[7], sorted.Mints[0].Accounts[0].Address)
	assert.EqualValues(t, 12345, sorted.Mints[0].Accounts[1].Account.TokenID)
	assert.Equal(t, AccountStateFrozen, sorted.Mints[0].Accounts[1].Account.State)

	assert.Equal(t, mintB, sorted.Mints[1].Mint)
	require.Len(t, sorted.Mints[1].Accounts, 1)
	assert.Equal(t, keys[4], sorted.Mints[1].Accounts[0].Address)

	assert.Equal(t, 5, sorted.MaxTokenIDWidth)

	require.Len(t, sorted.Unsupported, 2)
	assert.Equal(t, keys[6], sorted.Unsupported[0].Address)
	assert.Contains(t, sorted.Unsupported[0].Reason, "account parse failure")
	assert.Equal(t, stranger, sorted.Unsupported[1].Address)
	assert.Contains(t, sorted.Unsupported[1].Reason, "unsupported account program")
}

func TestSortAccounts_Empty(t *testing.T) {
	sorted := SortAccounts(nil, nil)
	assert.Empty(t, sorted.Mints)
	assert.Empty(t, sorted.Unsupported)
	assert.Zero(t, sorted.MaxTokenIDWidth)
}
