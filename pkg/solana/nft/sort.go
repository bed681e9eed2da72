package nft

import (
	"bytes"
	"crypto/ed25519"
	"sort"
	"strconv"

	"github.com/mr-tron/base58"

	"github.com/put-labs/nft-client/pkg/solana"
)

// KeyedAccount is a decoded NFT account and its address.
type KeyedAccount struct {
	Address ed25519.PublicKey
	Account Account
}

// MintAccounts are the NFTs of a single mint, ordered by token id.
type MintAccounts struct {
	Mint     ed25519.PublicKey
	Accounts []KeyedAccount
}

// UnsupportedAccount is an account that could not be listed as an NFT.
type UnsupportedAccount struct {
	Address ed25519.PublicKey
	Reason  string
}

type SortedAccounts struct {
	// Ordered by the base58 mint address.
	Mints       []MintAccounts
	Unsupported []UnsupportedAccount

	// Number of decimal digits in the largest token id, for column alignment.
	MaxTokenIDWidth int
}

// SortAccounts decodes program accounts owned by program (ProgramKey if nil)
// and groups the NFTs by mint. Accounts owned by another program or failing
// to decode are reported as unsupported in input order.
func SortAccounts(program ed25519.PublicKey, accounts []solana.KeyedAccount) *SortedAccounts {
	program = programOrDefault(program)

	sorted := &SortedAccounts{}
	byMint := make(map[string]*MintAccounts)

	for _, keyed := range accounts {
		if len(keyed.Account.Owner) > 0 && !bytes.Equal(keyed.Account.Owner, program) {
			sorted.Unsupported = append(sorted.Unsupported, UnsupportedAccount{
				Address: keyed.PublicKey,
				Reason:  "unsupported account program: " + base58.Encode(keyed.Account.Owner),
			})
			continue
		}

		var account Account
		if err := account.Unmarshal(keyed.Account.Data); err != nil {
			sorted.Unsupported = append(sorted.Unsupported, UnsupportedAccount{
				Address: keyed.PublicKey,
				Reason:  "account parse failure: " + err.Error(),
			})
			continue
		}

		if width := len(strconv.FormatUint(account.TokenID, 10)); width > sorted.MaxTokenIDWidth {
			sorted.MaxTokenIDWidth = width
		}

		mint := base58.Encode(account.Mint)
		group, ok := byMint[mint]
		if !ok {
			group = &MintAccounts{Mint: account.Mint}
			byMint[mint] = group
		}
		group.Accounts = append(group.Accounts, KeyedAccount{
			Address: keyed.PublicKey,
			Account: account,
		})
	}

	mints := make([]string, 0, len(byMint))
	for mint := range byMint {
		mints = append(mints, mint)
	}
	sort.Strings(mints)

	for _, mint := range mints {
		group := byMint[mint]
		sort.SliceStable(group.Accounts, func(i, j int) bool {
			return group.Accounts[i].Account.TokenID < group.Accounts[j].Account.TokenID
		})
		sorted.Mints = append(sorted.Mints, *group)
	}

	return sorted
}
