package nft

import (
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana"
)

// Program error codes returned as custom instruction errors.
const (
	ErrorMintMismatch solana.CustomError = iota
	ErrorOwnerMismatch
	ErrorAlreadyInUse
	ErrorUninitializedState
	ErrorOverflow
	ErrorAccountFrozen
	ErrorAlreadyReachMaxMintNum
	ErrorNameTooLong
	ErrorSymbolTooLong
	ErrorURITooLong
	ErrorAuthorityMismatch
	ErrorAlreadyFrozen
	ErrorSameAuthority
	ErrorThawUnfrozen
)

var programErrorDescriptions = map[solana.CustomError]string{
	ErrorMintMismatch:           "account not associated with this mint",
	ErrorOwnerMismatch:          "owner does not match",
	ErrorAlreadyInUse:           "account already in use",
	ErrorUninitializedState:     "state is uninitialized",
	ErrorOverflow:               "operation overflowed",
	ErrorAccountFrozen:          "account is frozen",
	ErrorAlreadyReachMaxMintNum: "mint has reached its total supply",
	ErrorNameTooLong:            "name is too long",
	ErrorSymbolTooLong:          "symbol is too long",
	ErrorURITooLong:             "uri is too long",
	ErrorAuthorityMismatch:      "authority mismatched",
	ErrorAlreadyFrozen:          "account is already frozen",
	ErrorSameAuthority:          "new authority is the current authority",
	ErrorThawUnfrozen:           "account is not frozen",
}

// DescribeProgramError returns a readable description of an NFT program
// error found anywhere in err's chain. ok is false if err does not carry a
// known program error code.
func DescribeProgramError(err error) (description string, ok bool) {
	var code solana.CustomError
	if !errors.As(err, &code) {
		var ixnErr solana.InstructionError
		if !errors.As(err, &ixnErr) || ixnErr.CustomError() == nil {
			return "", false
		}
		code = *ixnErr.CustomError()
	}

	description, ok = programErrorDescriptions[code]
	return description, ok
}
