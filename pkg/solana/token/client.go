package token

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidMintMetaAccount indicates that an account exists at the
	// MintMeta address, but it is not owned by the token program or cannot
	// be decoded.
	ErrInvalidMintMetaAccount = errors.New("invalid mint meta account")
)

// Client reads MintMeta accounts through a solana.Client.
type Client struct {
	sc      solana.Client
	program ed25519.PublicKey
}

// NewClient creates a new Client. A nil program uses ProgramKey.
func NewClient(sc solana.Client, program ed25519.PublicKey) *Client {
	return &Client{
		sc:      sc,
		program: programOrDefault(program),
	}
}

func (c *Client) Program() ed25519.PublicKey {
	return c.program
}

// GetMintMeta returns the metadata of mint. The native mint falls back to
// NativeMintMetaDefaults when its MintMeta account does not exist.
func (c *Client) GetMintMeta(mint ed25519.PublicKey, commitment solana.Commitment) (*MintMeta, error) {
	address, _, err := GetMintMetaAddress(&GetMintMetaAddressArgs{
		Program: c.program,
		Mint:    mint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to derive mint meta address")
	}

	accountInfo, err := c.sc.GetAccountInfo(address, commitment)
	if err == solana.ErrNoAccountInfo {
		if bytes.Equal(mint, NativeMint) {
			return NativeMintMetaDefaults(), nil
		}
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, c.program) {
		return nil, ErrInvalidMintMetaAccount
	}

	var meta MintMeta
	if err := meta.Unmarshal(accountInfo.Data); err != nil {
		return nil, errors.Wrap(ErrInvalidMintMetaAccount, err.Error())
	}

	return &meta, nil
}
