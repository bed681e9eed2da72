package nft

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
)

var (
	// ErrAccountNotFound indicates there is no account for the given address.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccount indicates that an account exists at the given
	// address, but it is not owned by the NFT program or cannot be decoded.
	ErrInvalidAccount = errors.New("invalid nft program account")
)

// Client reads NFT program accounts through a solana.Client.
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

// GetMint returns the mint at address.
func (c *Client) GetMint(address ed25519.PublicKey, commitment solana.Commitment) (*MintAccount, error) {
	data, err := c.getAccountData(address, commitment)
	if err != nil {
		return nil, err
	}

	var mint MintAccount
	if err := mint.Unmarshal(data); err != nil {
		return nil, errors.Wrap(ErrInvalidAccount, err.Error())
	}
	return &mint, nil
}

// GetAccount returns the NFT account at address.
func (c *Client) GetAccount(address ed25519.PublicKey, commitment solana.Commitment) (*Account, error) {
	data, err := c.getAccountData(address, commitment)
	if err != nil {
		return nil, err
	}

	var account Account
	if err := account.Unmarshal(data); err != nil {
		return nil, errors.Wrap(ErrInvalidAccount, err.Error())
	}
	return &account, nil
}

// GetAccountByTokenID returns the address and state of the NFT with tokenID
// in mint.
func (c *Client) GetAccountByTokenID(mint ed25519.PublicKey, tokenID uint64, commitment solana.Commitment) (ed25519.PublicKey, *Account, error) {
	address, _, err := GetNftAddress(&GetNftAddressArgs{
		Program: c.program,
		Mint:    mint,
		TokenID: tokenID,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to derive nft address")
	}

	account, err := c.GetAccount(address, commitment)
	if err != nil {
		return nil, nil, err
	}
	return address, account, nil
}

// GetAccountsByOwner lists the NFTs held by owner, grouped by mint.
func (c *Client) GetAccountsByOwner(owner ed25519.PublicKey) (*SortedAccounts, error) {
	accounts, err := c.sc.GetProgramAccountsByOwner(c.program, owner, OwnerOffset, AccountSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get program accounts")
	}
	return SortAccounts(c.program, accounts), nil
}

func (c *Client) getAccountData(address ed25519.PublicKey, commitment solana.Commitment) ([]byte, error) {
	accountInfo, err := c.sc.GetAccountInfo(address, commitment)
	if err == solana.ErrNoAccountInfo {
		return nil, ErrAccountNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "failed to get account info")
	}

	if !bytes.Equal(accountInfo.Owner, c.program) {
		return nil, ErrInvalidAccount
	}
	return accountInfo.Data, nil
}
