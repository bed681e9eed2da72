package token

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/binary"
)

const (
	// MaxMetaLength is the width of the packed symbol, name and icon.
	MaxMetaLength = 168

	// MaxMetaValueLength is the width of a single value in an update
	// instruction.
	MaxMetaValueLength = 128
)

const MintMetaSize = (binary.BoolSize + // status
	binary.COptionKeySize + // authority
	MaxMetaLength) // meta

var mintMetaLayout = binary.NewLayout(
	binary.Field{Name: "status", Width: binary.BoolSize},
	binary.Field{Name: "authority", Width: binary.COptionKeySize},
	binary.Field{Name: "meta", Width: MaxMetaLength},
)

// MintMeta holds the symbol, name and icon of a token mint.
type MintMeta struct {
	IsInitialized bool
	// Optional. Nil when the metadata can no longer be updated.
	Authority ed25519.PublicKey
	Symbol    string
	Name      string
	Icon      string
}

func (obj *MintMeta) Marshal() ([]byte, error) {
	data := make([]byte, MintMetaSize)

	_ = binary.PutBool(data, mintMetaLayout.Offset("status"), obj.IsInitialized)
	if err := binary.PutCOptionKey(data, mintMetaLayout.Offset("authority"), obj.Authority); err != nil {
		return nil, errors.Wrap(err, "authority")
	}
	if err := binary.PutPackedStrings(data, mintMetaLayout.Offset("meta"), MaxMetaLength, obj.Symbol, obj.Name, obj.Icon); err != nil {
		return nil, errors.Wrap(err, "meta")
	}

	return data, nil
}

// Unmarshal decodes the first MintMetaSize bytes of data. Trailing bytes are
// ignored. The packed metadata must hold at least three values.
func (obj *MintMeta) Unmarshal(data []byte) error {
	if err := binary.CheckAccountSize(data, MintMetaSize); err != nil {
		return err
	}

	values, err := binary.GetPackedStrings(data, mintMetaLayout.Offset("meta"), MaxMetaLength, 3)
	if err != nil {
		return err
	}

	obj.IsInitialized, _ = binary.GetBool(data, mintMetaLayout.Offset("status"))
	obj.Authority, _ = binary.GetCOptionKey(data, mintMetaLayout.Offset("authority"))
	obj.Symbol = values[0]
	obj.Name = values[1]
	obj.Icon = values[2]

	return nil
}

func (obj *MintMeta) String() string {
	authority := "<nil>"
	if len(obj.Authority) > 0 {
		authority = base58.Encode(obj.Authority)
	}

	return fmt.Sprintf(
		"MintMeta{is_initialized=%t,authority=%s,symbol=%s,name=%s,icon=%s}",
		obj.IsInitialized,
		authority,
		obj.Symbol,
		obj.Name,
		obj.Icon,
	)
}
