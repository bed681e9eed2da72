package main

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
)

const frozenMarker = " ⚠  Frozen"

type inspector struct {
	nft        *nft.Client
	token      *token.Client
	commitment solana.Commitment
	output     outputFormat
}

func newInspector(nftClient *nft.Client, tokenClient *token.Client, commitment solana.Commitment, output outputFormat) *inspector {
	return &inspector{
		nft:        nftClient,
		token:      tokenClient,
		commitment: commitment,
		output:     output,
	}
}

func (i *inspector) mintInfo(w io.Writer, address string) error {
	key, err := parseAddress("mint", address)
	if err != nil {
		return err
	}

	mint, err := i.nft.GetMint(key, i.commitment)
	if err != nil {
		return errors.Wrapf(err, "failed to get mint %s", address)
	}

	return i.output.write(w, mintRecord(key, mint), func(w io.Writer) {
		printMint(w, key, mint)
	})
}

func (i *inspector) nftInfo(w io.Writer, address string) error {
	key, err := parseAddress("nft", address)
	if err != nil {
		return err
	}

	account, err := i.nft.GetAccount(key, i.commitment)
	if err != nil {
		return errors.Wrapf(err, "failed to get nft %s", address)
	}

	return i.writeNftWithMint(w, key, account)
}

func (i *inspector) nftInfoByTokenID(w io.Writer, mintAddress, tokenID string) error {
	mint, err := parseAddress("mint", mintAddress)
	if err != nil {
		return err
	}

	id, err := strconv.ParseUint(tokenID, 10, 64)
	if err != nil {
		return errors.Wrapf(errUsage, "invalid token id %q", tokenID)
	}

	key, account, err := i.nft.GetAccountByTokenID(mint, id, i.commitment)
	if err != nil {
		return errors.Wrapf(err, "failed to get token %d of mint %s", id, mintAddress)
	}

	return i.writeNftWithMint(w, key, account)
}

// writeNftWithMint adds the mint name and symbol when the mint can be read.
func (i *inspector) writeNftWithMint(w io.Writer, address ed25519.PublicKey, account *nft.Account) error {
	var name, symbol string
	if mint, err := i.nft.GetMint(account.Mint, i.commitment); err == nil {
		name, symbol = mint.Name, mint.Symbol
	}
	return i.output.write(w, nftRecord(address, account, name, symbol), func(w io.Writer) {
		printNft(w, address, account, name, symbol)
	})
}

func (i *inspector) mintMeta(w io.Writer, address string) error {
	key, err := parseAddress("mint", address)
	if err != nil {
		return err
	}

	meta, err := i.token.GetMintMeta(key, i.commitment)
	if err != nil {
		return errors.Wrapf(err, "failed to get mint meta of %s", address)
	}

	metaAddress, _, err := token.GetMintMetaAddress(&token.GetMintMetaAddressArgs{
		Program: i.token.Program(),
		Mint:    key,
	})
	if err != nil {
		return err
	}

	return i.output.write(w, mintMetaRecord(metaAddress, meta), func(w io.Writer) {
		printMintMeta(w, metaAddress, meta)
	})
}

func (i *inspector) accounts(w io.Writer, address string) error {
	owner, err := parseAddress("owner", address)
	if err != nil {
		return err
	}

	sorted, err := i.nft.GetAccountsByOwner(owner)
	if err != nil {
		return errors.Wrapf(err, "failed to list nfts of %s", address)
	}

	return i.output.write(w, accountsRecord(sorted), func(w io.Writer) {
		printAccounts(w, sorted)
	})
}

func parseAddress(name, value string) (ed25519.PublicKey, error) {
	decoded, err := base58.Decode(value)
	if err != nil || len(decoded) != ed25519.PublicKeySize {
		return nil, errors.Wrapf(errUsage, "invalid %s address %q", name, value)
	}
	return decoded, nil
}

func printNameValue(w io.Writer, name, value string) {
	fmt.Fprintf(w, "%-18s %s\n", name, value)
}

func keyOrNone(key ed25519.PublicKey) string {
	if len(key) == 0 {
		return "None"
	}
	return base58.Encode(key)
}

func printMint(w io.Writer, address ed25519.PublicKey, mint *nft.MintAccount) {
	fmt.Fprintln(w)
	printNameValue(w, "Already Supply:", strconv.FormatUint(mint.Supply, 10))
	printNameValue(w, "Total Supply:", strconv.FormatUint(mint.TotalSupply, 10))
	printNameValue(w, "Mint:", base58.Encode(address))
	printNameValue(w, "Name:", mint.Name)
	printNameValue(w, "Symbol:", mint.Symbol)
	printNameValue(w, "Icon uri:", mint.IconURI)
	printNameValue(w, "Mint authority:", base58.Encode(mint.MintAuthority))
	printNameValue(w, "Freeze authority:", keyOrNone(mint.FreezeAuthority))
	printNameValue(w, "Initialized:", strconv.FormatBool(mint.IsInitialized))
}

func printNft(w io.Writer, address ed25519.PublicKey, account *nft.Account, mintName, mintSymbol string) {
	fmt.Fprintln(w)
	printNameValue(w, "Address:", base58.Encode(address))
	printNameValue(w, "Mint:", base58.Encode(account.Mint))
	if mintName != "" || mintSymbol != "" {
		printNameValue(w, "Mint name:", mintName)
		printNameValue(w, "Mint symbol:", mintSymbol)
	}
	printNameValue(w, "Owner:", base58.Encode(account.Owner))
	printNameValue(w, "State:", account.State.String())
	printNameValue(w, "Token id:", strconv.FormatUint(account.TokenID, 10))
	printNameValue(w, "Token uri:", account.TokenURI)
	printNameValue(w, "Close authority:", keyOrNone(account.CloseAuthority))
}

func printMintMeta(w io.Writer, address ed25519.PublicKey, meta *token.MintMeta) {
	fmt.Fprintln(w)
	if len(address) > 0 {
		printNameValue(w, "Address:", base58.Encode(address))
	}
	printNameValue(w, "Symbol:", meta.Symbol)
	printNameValue(w, "Name:", meta.Name)
	printNameValue(w, "Icon:", meta.Icon)
	printNameValue(w, "Authority:", keyOrNone(meta.Authority))
	printNameValue(w, "Initialized:", strconv.FormatBool(meta.IsInitialized))
}

func printAccounts(w io.Writer, sorted *nft.SortedAccounts) {
	width := sorted.MaxTokenIDWidth
	if width < len("TokenId") {
		width = len("TokenId")
	}

	fmt.Fprintf(w, "%-44s  %-44s  %-*s\n", "Mint", "Account", width, "TokenId")
	fmt.Fprintln(w, "----------------------------------------------------------------------------------------------------------")
	for _, group := range sorted.Mints {
		for _, keyed := range group.Accounts {
			var frozen string
			if keyed.Account.State == nft.AccountStateFrozen {
				frozen = frozenMarker
			}
			fmt.Fprintf(
				w,
				"%-44s  %-44s  %-*d%s\n",
				base58.Encode(group.Mint),
				base58.Encode(keyed.Address),
				width,
				keyed.Account.TokenID,
				frozen,
			)
		}
	}
	for _, unsupported := range sorted.Unsupported {
		fmt.Fprintf(w, "%-44s  %s\n", base58.Encode(unsupported.Address), unsupported.Reason)
	}
}
