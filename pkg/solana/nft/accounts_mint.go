package nft

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const MintAccountSize = (binary.KeySize + // mint_authority
	binary.Uint64Size + // supply
	binary.Uint64Size + // total_supply
	binary.BoolSize + // is_initialized
	MaxNameLength + // name
	MaxSymbolLength + // symbol
	binary.OptionalKeySize + // freeze_authority
	MaxURILength) // icon_uri

var mintAccountLayout = binary.NewLayout(
	binary.Field{Name: "mintAuthority", Width: binary.KeySize},
	binary.Field{Name: "supply", Width: binary.Uint64Size},
	binary.Field{Name: "totalSupply", Width: binary.Uint64Size},
	binary.Field{Name: "isInitialized", Width: binary.BoolSize},
	binary.Field{Name: "name", Width: MaxNameLength},
	binary.Field{Name: "symbol", Width: MaxSymbolLength},
	binary.Field{Name: "freezeAuthority", Width: binary.OptionalKeySize},
	binary.Field{Name: "iconUri", Width: MaxURILength},
)

// MintAccount is an NFT collection. Each MintTo issues the next token id.
type MintAccount struct {
	MintAuthority ed25519.PublicKey
	// Number of NFTs issued so far.
	Supply uint64
	// Maximum number of NFTs the mint may issue.
	TotalSupply   uint64
	IsInitialized bool
	Name          string
	Symbol        string
	// Optional. Nil when the mint cannot freeze its NFTs.
	FreezeAuthority ed25519.PublicKey
	IconURI         string
}

func (obj *MintAccount) Marshal() ([]byte, error) {
	data := make([]byte, MintAccountSize)

	if err := binary.PutKey(data, mintAccountLayout.Offset("mintAuthority"), obj.MintAuthority); err != nil {
		return nil, errors.Wrap(err, "mint_authority")
	}
	_ = binary.PutUint64(data, mintAccountLayout.Offset("supply"), obj.Supply)
	_ = binary.PutUint64(data, mintAccountLayout.Offset("totalSupply"), obj.TotalSupply)
	_ = binary.PutBool(data, mintAccountLayout.Offset("isInitialized"), obj.IsInitialized)
	if err := binary.PutFixedString(data, mintAccountLayout.Offset("name"), MaxNameLength, obj.Name); err != nil {
		return nil, errors.Wrap(err, "name")
	}
	if err := binary.PutFixedString(data, mintAccountLayout.Offset("symbol"), MaxSymbolLength, obj.Symbol); err != nil {
		return nil, errors.Wrap(err, "symbol")
	}
	if err := binary.PutOptionalKey(data, mintAccountLayout.Offset("freezeAuthority"), obj.FreezeAuthority); err != nil {
		return nil, errors.Wrap(err, "freeze_authority")
	}
	if err := binary.PutFixedString(data, mintAccountLayout.Offset("iconUri"), MaxURILength, obj.IconURI); err != nil {
		return nil, errors.Wrap(err, "icon_uri")
	}

	return data, nil
}

// Unmarshal decodes the first MintAccountSize bytes of data. Trailing bytes
// are ignored.
func (obj *MintAccount) Unmarshal(data []byte) error {
	if err := binary.CheckAccountSize(data, MintAccountSize); err != nil {
		return err
	}

	// Every field lies within MintAccountSize, so reads cannot fail.
	obj.MintAuthority, _ = binary.GetKey(data, mintAccountLayout.Offset("mintAuthority"))
	obj.Supply, _ = binary.GetUint64(data, mintAccountLayout.Offset("supply"))
	obj.TotalSupply, _ = binary.GetUint64(data, mintAccountLayout.Offset("totalSupply"))
	obj.IsInitialized, _ = binary.GetBool(data, mintAccountLayout.Offset("isInitialized"))
	obj.Name, _ = binary.GetFixedString(data, mintAccountLayout.Offset("name"), MaxNameLength)
	obj.Symbol, _ = binary.GetFixedString(data, mintAccountLayout.Offset("symbol"), MaxSymbolLength)
	obj.FreezeAuthority, _ = binary.GetOptionalKey(data, mintAccountLayout.Offset("freezeAuthority"))
	obj.IconURI, _ = binary.GetFixedString(data, mintAccountLayout.Offset("iconUri"), MaxURILength)

	return nil
}

func (obj *MintAccount) String() string {
	return fmt.Sprintf(
		"MintAccount{mint_authority=%s,supply=%d,total_supply=%d,is_initialized=%t,name=%s,symbol=%s,freeze_authority=%s,icon_uri=%s}",
		base58.Encode(obj.MintAuthority),
		obj.Supply,
		obj.TotalSupply,
		obj.IsInitialized,
		obj.Name,
		obj.Symbol,
		optionalKeyString(obj.FreezeAuthority),
		obj.IconURI,
	)
}

// NextTokenID returns the token id the next MintTo against mint will assign.
func NextTokenID(mint *MintAccount) (uint64, error) {
	if mint.Supply >= mint.TotalSupply {
		return 0, errors.Wrapf(ErrSupplyExhausted, "supply %d of %d", mint.Supply, mint.TotalSupply)
	}
	return mint.Supply + 1, nil
}

func optionalKeyString(key ed25519.PublicKey) string {
	if len(key) == 0 {
		return "<nil>"
	}
	return base58.Encode(key)
}
