package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ybbus/jsonrpc"

	"github.com/put-labs/nft-client/pkg/rate"
	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
	"github.com/put-labs/nft-client/pkg/testutil"
)

type fakeSolanaClient struct {
	solana.Client

	accounts map[string]solana.AccountInfo
	owned    []solana.KeyedAccount
}

func (c *fakeSolanaClient) GetAccountInfo(account ed25519.PublicKey, _ solana.Commitment) (solana.AccountInfo, error) {
	info, ok := c.accounts[string(account)]
	if !ok {
		return solana.AccountInfo{}, solana.ErrNoAccountInfo
	}
	return info, nil
}

func (c *fakeSolanaClient) GetProgramAccountsByOwner(_, _ ed25519.PublicKey, _ uint, _ uint64) ([]solana.KeyedAccount, error) {
	return c.owned, nil
}

type testEnv struct {
	sc        *fakeSolanaClient
	overrides testOverrides
	endpoint  string
	timeout   string
	limiter   rate.Limiter
}

func setup(t *testing.T) *testEnv {
	return &testEnv{
		sc:        &fakeSolanaClient{accounts: make(map[string]solana.AccountInfo)},
		overrides: testOverrides{rpcEndpoint: "http://localhost:1234"},
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(
		args,
		&out,
		&errOut,
		withManualTestOverrides(&e.overrides),
		func(endpoint string, opts *jsonrpc.RPCClientOpts, limiter rate.Limiter) solana.Client {
			e.endpoint = endpoint
			e.timeout = opts.HTTPClient.Timeout.String()
			e.limiter = limiter
			return e.sc
		},
	)
	return code, out.String(), errOut.String()
}

func (e *testEnv) addAccount(t *testing.T, address, owner ed25519.PublicKey, data []byte) {
	e.sc.accounts[string(address)] = solana.AccountInfo{Owner: owner, Data: data}
}

func TestRun_Usage(t *testing.T) {
	env := setup(t)

	code, stdout, stderr := env.run(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stdout, "USAGE:")
	assert.Contains(t, stdout, "mint-info")
	assert.Contains(t, stderr, "missing command")

	code, stdout, _ = env.run(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "COMMANDS:")
	assert.Contains(t, stdout, "--commitment")

	for _, tc := range []struct {
		args     []string
		expected string
	}{
		{[]string{"bogus"}, `unknown command "bogus"`},
		{[]string{"--bogus", "mint-info"}, "flag provided but not defined"},
		{[]string{"mint-info"}, "mint-info takes <mint>"},
		{[]string{"mint-info", "a", "b"}, "mint-info takes <mint>"},
		{[]string{"nft-info", "a", "b", "c"}, "nft-info takes"},
		{[]string{"mint-info", "not-an-address"}, "invalid mint address"},
		{[]string{"--commitment", "eventually", "mint-info", base58.Encode(nft.ProgramKey)}, `unknown commitment "eventually"`},
		{[]string{"--output", "yaml", "mint-info", base58.Encode(nft.ProgramKey)}, `unknown output format "yaml"`},
	} {
		code, _, stderr := env.run(t, tc.args...)
		assert.Equal(t, 2, code, tc.args)
		assert.Contains(t, stderr, tc.expected, tc.args)
		assert.Contains(t, stderr, "run 'nft-inspect help' for usage", tc.args)
	}
}

func TestRun_DecodeIsOffline(t *testing.T) {
	env := setup(t)

	code, stdout, _ := env.run(t, "decode", "nft-instruction", "02")
	require.Equal(t, 0, code)
	assert.Equal(t, "Transfer\n", stdout)
	assert.Empty(t, env.endpoint)

	// Global flags are only checked by commands that connect.
	code, _, _ = env.run(t, "--commitment", "eventually", "decode", "nft-instruction", "02")
	assert.Equal(t, 0, code)
	assert.Empty(t, env.endpoint)

	code, _, stderr := env.run(t, "decode", "nft-instruction")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "decode takes <kind> <base64|hex>")
}

func TestRun_MintInfo(t *testing.T) {
	env := setup(t)
	keys := testutil.GenerateKeys(t, 2)

	mint := nft.MintAccount{
		MintAuthority: keys[1],
		Supply:        2,
		TotalSupply:   10,
		IsInitialized: true,
		Name:          "Collection",
		Symbol:        "COL",
		IconURI:       "https://example.com/icon.png",
	}
	data, err := mint.Marshal()
	require.NoError(t, err)
	env.addAccount(t, keys[0], nft.ProgramKey, data)

	code, stdout, _ := env.run(t, "mint-info", base58.Encode(keys[0]))
	require.Equal(t, 0, code)
	assert.Equal(t, "http://localhost:1234", env.endpoint)
	assert.Equal(t, "1s", env.timeout)
	assert.IsType(t, &rate.NoLimiter{}, env.limiter)

	assert.Contains(t, stdout, "Already Supply:    2\n")
	assert.Contains(t, stdout, "Total Supply:      10\n")
	assert.Contains(t, stdout, "Mint:              "+base58.Encode(keys[0])+"\n")
	assert.Contains(t, stdout, "Name:              Collection\n")
	assert.Contains(t, stdout, "Mint authority:    "+base58.Encode(keys[1])+"\n")
	assert.Contains(t, stdout, "Freeze authority:  None\n")

	code, _, stderr := env.run(t, "mint-info", base58.Encode(keys[1]))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, nft.ErrAccountNotFound.Error())

	code, stdout, _ = env.run(t, "--output", "json", "--commitment", "finalized", "mint-info", base58.Encode(keys[0]))
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "\n  \"address\": ")

	var record struct {
		Address string                 `json:"address"`
		Account map[string]interface{} `json:"account"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, base58.Encode(keys[0]), record.Address)
	assert.Equal(t, base58.Encode(keys[1]), record.Account["mint_authority"])
	assert.EqualValues(t, 2, record.Account["supply"])
	assert.EqualValues(t, 10, record.Account["total_supply"])
	assert.Equal(t, "https://example.com/icon.png", record.Account["icon_uri"])
	assert.Contains(t, record.Account, "freeze_authority")
	assert.Nil(t, record.Account["freeze_authority"])
}

func TestRun_RateLimit(t *testing.T) {
	env := setup(t)
	env.overrides.rpcRateLimit = 1

	code, _, _ := env.run(t, "mint-info", base58.Encode(nft.ProgramKey))
	assert.Equal(t, 1, code)
	require.NotNil(t, env.limiter)

	allowed, err := env.limiter.Allow("getAccountInfo")
	require.NoError(t, err)
	assert.True(t, allowed)
	allowed, err = env.limiter.Allow("getAccountInfo")
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestRun_NftInfo(t *testing.T) {
	env := setup(t)
	keys := testutil.GenerateKeys(t, 2)
	mintAddress, owner := keys[0], keys[1]

	mint := nft.MintAccount{MintAuthority: owner, Supply: 7, TotalSupply: 10, IsInitialized: true, Name: "Collection", Symbol: "COL"}
	mintData, err := mint.Marshal()
	require.NoError(t, err)
	env.addAccount(t, mintAddress, nft.ProgramKey, mintData)

	nftAddress, _, err := nft.GetNftAddress(&nft.GetNftAddressArgs{Mint: mintAddress, TokenID: 7})
	require.NoError(t, err)
	account := nft.Account{Mint: mintAddress, Owner: owner, State: nft.AccountStateInitialized, TokenID: 7, TokenURI: "ipfs://7"}
	accountData, err := account.Marshal()
	require.NoError(t, err)
	env.addAccount(t, nftAddress, nft.ProgramKey, accountData)

	for _, args := range [][]string{
		{"nft-info", base58.Encode(nftAddress)},
		{"nft-info", base58.Encode(mintAddress), "7"},
	} {
		code, stdout, _ := env.run(t, args...)
		require.Equal(t, 0, code, args)
		assert.Contains(t, stdout, "Address:           "+base58.Encode(nftAddress)+"\n")
		assert.Contains(t, stdout, "Mint name:         Collection\n")
		assert.Contains(t, stdout, "Mint symbol:       COL\n")
		assert.Contains(t, stdout, "State:             initialized\n")
		assert.Contains(t, stdout, "Token id:          7\n")
		assert.Contains(t, stdout, "Token uri:         ipfs://7\n")
	}

	code, _, _ := env.run(t, "nft-info", base58.Encode(mintAddress), "seven")
	assert.Equal(t, 2, code)

	code, _, _ = env.run(t, "nft-info", base58.Encode(mintAddress), "8")
	assert.Equal(t, 1, code)

	code, stdout, _ := env.run(t, "--output", "json-compact", "nft-info", base58.Encode(mintAddress), "7")
	require.Equal(t, 0, code)
	assert.Equal(t, 1, strings.Count(stdout, "\n"))

	var record struct {
		Address string                 `json:"address"`
		Account map[string]interface{} `json:"account"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Equal(t, base58.Encode(nftAddress), record.Address)
	assert.Equal(t, base58.Encode(owner), record.Account["owner"])
	assert.Equal(t, "initialized", record.Account["state"])
	assert.EqualValues(t, 7, record.Account["token_id"])
	assert.Equal(t, "Collection", record.Account["name"])
	assert.Nil(t, record.Account["close_authority"])
}

func TestRun_MintMeta(t *testing.T) {
	env := setup(t)
	keys := testutil.GenerateKeys(t, 2)

	address, _, err := token.GetMintMetaAddress(&token.GetMintMetaAddressArgs{Mint: keys[0]})
	require.NoError(t, err)
	meta := token.MintMeta{IsInitialized: true, Authority: keys[1], Symbol: "BTC", Name: "BTCoin", Icon: "https://example.com/btc.svg"}
	data, err := meta.Marshal()
	require.NoError(t, err)
	env.addAccount(t, address, token.ProgramKey, data)

	code, stdout, _ := env.run(t, "mint-meta", base58.Encode(keys[0]))
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Address:           "+base58.Encode(address)+"\n")
	assert.Contains(t, stdout, "Symbol:            BTC\n")
	assert.Contains(t, stdout, "Name:              BTCoin\n")
	assert.Contains(t, stdout, "Authority:         "+base58.Encode(keys[1])+"\n")

	// The native mint has defaults even without an account.
	code, stdout, _ = env.run(t, "mint-meta", base58.Encode(token.NativeMint))
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Address:           "+base58.Encode(token.NativeMintMeta)+"\n")
	assert.Contains(t, stdout, "Symbol:            "+token.NativeMintSymbol+"\n")
}

func TestRun_Accounts(t *testing.T) {
	env := setup(t)
	keys := testutil.GenerateKeys(t, 4)
	mintAddress, owner, stranger := keys[0], keys[1], keys[2]

	var expected []string
	for _, tc := range []struct {
		tokenID uint64
		state   nft.AccountState
	}{
		{12, nft.AccountStateInitialized},
		{3, nft.AccountStateFrozen},
	} {
		address, _, err := nft.GetNftAddress(&nft.GetNftAddressArgs{Mint: mintAddress, TokenID: tc.tokenID})
		require.NoError(t, err)

		account := nft.Account{Mint: mintAddress, Owner: owner, State: tc.state, TokenID: tc.tokenID}
		data, err := account.Marshal()
		require.NoError(t, err)

		env.sc.owned = append(env.sc.owned, solana.KeyedAccount{
			PublicKey: address,
			Account:   solana.AccountInfo{Owner: nft.ProgramKey, Data: data},
		})
		expected = append(expected, base58.Encode(address))
	}
	env.sc.owned = append(env.sc.owned, solana.KeyedAccount{
		PublicKey: keys[3],
		Account:   solana.AccountInfo{Owner: stranger, Data: make([]byte, nft.AccountSize)},
	})

	code, stdout, _ := env.run(t, "accounts", base58.Encode(owner))
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Mint"))

	// Token 3 sorts first and carries the frozen marker.
	assert.Contains(t, lines[2], expected[1])
	assert.True(t, strings.HasSuffix(lines[2], frozenMarker))
	assert.Contains(t, lines[3], expected[0])
	assert.False(t, strings.HasSuffix(lines[3], frozenMarker))

	assert.True(t, strings.HasPrefix(lines[4], base58.Encode(keys[3])))
	assert.Contains(t, lines[4], "unsupported account program")

	code, stdout, _ = env.run(t, "--output", "json", "accounts", base58.Encode(owner))
	require.Equal(t, 0, code)

	var record struct {
		Accounts []struct {
			Address string `json:"address"`
			State   string `json:"state"`
			TokenID uint64 `json:"tokenId"`
		} `json:"accounts"`
		UnsupportedAccounts []struct {
			Address string `json:"address"`
			Err     string `json:"err"`
		} `json:"unsupportedAccounts"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	require.Len(t, record.Accounts, 2)
	assert.Equal(t, expected[1], record.Accounts[0].Address)
	assert.Equal(t, "frozen", record.Accounts[0].State)
	assert.EqualValues(t, 3, record.Accounts[0].TokenID)
	assert.Equal(t, expected[0], record.Accounts[1].Address)
	require.Len(t, record.UnsupportedAccounts, 1)
	assert.Equal(t, base58.Encode(keys[3]), record.UnsupportedAccounts[0].Address)
	assert.Contains(t, record.UnsupportedAccounts[0].Err, "unsupported account program")
}
