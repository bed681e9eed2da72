package nft

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/binary"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = iota
	AccountStateInitialized
	AccountStateFrozen
)

func (s AccountState) String() string {
	switch s {
	case AccountStateUninitialized:
		return "uninitialized"
	case AccountStateInitialized:
		return "initialized"
	case AccountStateFrozen:
		return "frozen"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

const AccountSize = (binary.KeySize + // mint
	binary.KeySize + // owner
	binary.Uint8Size + // state
	binary.OptionalKeySize + // close_authority
	binary.Uint64Size + // token_id
	MaxURILength) // token_uri

// OwnerOffset is the offset of the owner within an NFT account, used to
// filter program accounts by owner.
const OwnerOffset = binary.KeySize

var accountLayout = binary.NewLayout(
	binary.Field{Name: "mint", Width: binary.KeySize},
	binary.Field{Name: "owner", Width: binary.KeySize},
	binary.Field{Name: "state", Width: binary.Uint8Size},
	binary.Field{Name: "closeAuthority", Width: binary.OptionalKeySize},
	binary.Field{Name: "tokenId", Width: binary.Uint64Size},
	binary.Field{Name: "tokenUri", Width: MaxURILength},
)

// Account is a single NFT issued by a mint.
type Account struct {
	Mint  ed25519.PublicKey
	Owner ed25519.PublicKey
	// State bytes outside the known states are kept as-is.
	State AccountState
	// Optional authority to close the account.
	CloseAuthority ed25519.PublicKey
	TokenID        uint64
	TokenURI       string
}

func (obj *Account) Marshal() ([]byte, error) {
	data := make([]byte, AccountSize)

	if err := binary.PutKey(data, accountLayout.Offset("mint"), obj.Mint); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	if err := binary.PutKey(data, accountLayout.Offset("owner"), obj.Owner); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	_ = binary.PutUint8(data, accountLayout.Offset("state"), uint8(obj.State))
	if err := binary.PutOptionalKey(data, accountLayout.Offset("closeAuthority"), obj.CloseAuthority); err != nil {
		return nil, errors.Wrap(err, "close_authority")
	}
	_ = binary.PutUint64(data, accountLayout.Offset("tokenId"), obj.TokenID)
	if err := binary.PutFixedString(data, accountLayout.Offset("tokenUri"), MaxURILength, obj.TokenURI); err != nil {
		return nil, errors.Wrap(err, "token_uri")
	}

	return data, nil
}

// Unmarshal decodes the first AccountSize bytes of data. Trailing bytes are
// ignored.
func (obj *Account) Unmarshal(data []byte) error {
	if err := binary.CheckAccountSize(data, AccountSize); err != nil {
		return err
	}

	obj.Mint, _ = binary.GetKey(data, accountLayout.Offset("mint"))
	obj.Owner, _ = binary.GetKey(data, accountLayout.Offset("owner"))
	state, _ := binary.GetUint8(data, accountLayout.Offset("state"))
	obj.State = AccountState(state)
	obj.CloseAuthority, _ = binary.GetOptionalKey(data, accountLayout.Offset("closeAuthority"))
	obj.TokenID, _ = binary.GetUint64(data, accountLayout.Offset("tokenId"))
	obj.TokenURI, _ = binary.GetFixedString(data, accountLayout.Offset("tokenUri"), MaxURILength)

	return nil
}

func (obj *Account) String() string {
	return fmt.Sprintf(
		"Account{mint=%s,owner=%s,state=%s,close_authority=%s,token_id=%d,token_uri=%s}",
		base58.Encode(obj.Mint),
		base58.Encode(obj.Owner),
		obj.State,
		optionalKeyString(obj.CloseAuthority),
		obj.TokenID,
		obj.TokenURI,
	)
}

// CheckTransferable reports whether the program would accept a Transfer of
// this NFT given its state.
func (obj *Account) CheckTransferable() error {
	return obj.checkActive()
}

// CheckBurnable reports whether the program would accept a Burn of this NFT
// given its state.
func (obj *Account) CheckBurnable() error {
	return obj.checkActive()
}

func (obj *Account) checkActive() error {
	switch obj.State {
	case AccountStateUninitialized:
		return ErrUninitializedAccount
	case AccountStateFrozen:
		return ErrAccountFrozen
	}
	return nil
}
