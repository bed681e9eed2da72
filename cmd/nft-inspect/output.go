package main

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
)

type outputFormat int

const (
	outputDisplay outputFormat = iota
	outputJSON
	outputJSONCompact
)

func parseOutputFormat(name string) (outputFormat, error) {
	switch name {
	case "", "display":
		return outputDisplay, nil
	case "json":
		return outputJSON, nil
	case "json-compact":
		return outputJSONCompact, nil
	default:
		return outputDisplay, errors.Errorf("unknown output format %q", name)
	}
}

// write prints value as JSON in the JSON formats, and calls display otherwise.
func (f outputFormat) write(w io.Writer, value interface{}, display func(io.Writer)) error {
	var (
		encoded []byte
		err     error
	)
	switch f {
	case outputJSON:
		encoded, err = json.MarshalIndent(value, "", "  ")
	case outputJSONCompact:
		encoded, err = json.Marshal(value)
	default:
		display(w)
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to encode output")
	}

	_, err = fmt.Fprintln(w, string(encoded))
	return err
}

type jsonRecord struct {
	Address string      `json:"address"`
	Account interface{} `json:"account"`
}

type jsonMint struct {
	MintAuthority   string  `json:"mint_authority"`
	Supply          uint64  `json:"supply"`
	TotalSupply     uint64  `json:"total_supply"`
	IsInitialized   bool    `json:"is_initialized"`
	Name            string  `json:"name"`
	Symbol          string  `json:"symbol"`
	FreezeAuthority *string `json:"freeze_authority"`
	IconURI         string  `json:"icon_uri"`
}

type jsonNft struct {
	Mint           string  `json:"mint"`
	Owner          string  `json:"owner"`
	State          string  `json:"state"`
	CloseAuthority *string `json:"close_authority"`
	TokenID        uint64  `json:"token_id"`
	TokenURI       string  `json:"token_uri"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
}

type jsonMintMeta struct {
	IsInitialized bool    `json:"is_initialized"`
	Authority     *string `json:"authority"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Icon          string  `json:"icon"`
}

type jsonOwnedNft struct {
	Address string `json:"address"`
	Mint    string `json:"mint"`
	Owner   string `json:"owner"`
	State   string `json:"state"`
	TokenID uint64 `json:"tokenId"`
}

type jsonUnsupportedAccount struct {
	Address string `json:"address"`
	Err     string `json:"err"`
}

type jsonAccounts struct {
	Accounts            []jsonOwnedNft           `json:"accounts"`
	UnsupportedAccounts []jsonUnsupportedAccount `json:"unsupportedAccounts,omitempty"`
}

func optionalKey(key ed25519.PublicKey) *string {
	if len(key) == 0 {
		return nil
	}
	encoded := base58.Encode(key)
	return &encoded
}

func mintRecord(address ed25519.PublicKey, mint *nft.MintAccount) jsonRecord {
	return jsonRecord{
		Address: base58.Encode(address),
		Account: jsonMint{
			MintAuthority:   base58.Encode(mint.MintAuthority),
			Supply:          mint.Supply,
			TotalSupply:     mint.TotalSupply,
			IsInitialized:   mint.IsInitialized,
			Name:            mint.Name,
			Symbol:          mint.Symbol,
			FreezeAuthority: optionalKey(mint.FreezeAuthority),
			IconURI:         mint.IconURI,
		},
	}
}

func nftRecord(address ed25519.PublicKey, account *nft.Account, mintName, mintSymbol string) jsonRecord {
	return jsonRecord{
		Address: base58.Encode(address),
		Account: jsonNft{
			Mint:           base58.Encode(account.Mint),
			Owner:          base58.Encode(account.Owner),
			State:          account.State.String(),
			CloseAuthority: optionalKey(account.CloseAuthority),
			TokenID:        account.TokenID,
			TokenURI:       account.TokenURI,
			Name:           mintName,
			Symbol:         mintSymbol,
		},
	}
}

func mintMetaRecord(address ed25519.PublicKey, meta *token.MintMeta) jsonRecord {
	return jsonRecord{
		Address: base58.Encode(address),
		Account: jsonMintMeta{
			IsInitialized: meta.IsInitialized,
			Authority:     optionalKey(meta.Authority),
			Symbol:        meta.Symbol,
			Name:          meta.Name,
			Icon:          meta.Icon,
		},
	}
}

// accountsRecord flattens the mint groups, keeping their order.
func accountsRecord(sorted *nft.SortedAccounts) jsonAccounts {
	record := jsonAccounts{Accounts: []jsonOwnedNft{}}
	for _, group := range sorted.Mints {
		for _, keyed := range group.Accounts {
			record.Accounts = append(record.Accounts, jsonOwnedNft{
				Address: base58.Encode(keyed.Address),
				Mint:    base58.Encode(group.Mint),
				Owner:   base58.Encode(keyed.Account.Owner),
				State:   keyed.Account.State.String(),
				TokenID: keyed.Account.TokenID,
			})
		}
	}
	for _, unsupported := range sorted.Unsupported {
		record.UnsupportedAccounts = append(record.UnsupportedAccounts, jsonUnsupportedAccount{
			Address: base58.Encode(unsupported.Address),
			Err:     unsupported.Reason,
		})
	}
	return record
}
