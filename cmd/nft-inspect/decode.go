package main

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/put-labs/nft-client/pkg/solana/nft"
	"github.com/put-labs/nft-client/pkg/solana/token"
)

// parseData accepts "hex:" and "base64:" prefixed input. Unprefixed input is
// read as hex when it has a "0x" prefix or consists only of an even number of
// hex digits, and as base64 otherwise.
func parseData(value string) ([]byte, error) {
	switch {
	case strings.HasPrefix(value, "hex:"):
		return hex.DecodeString(strings.TrimPrefix(value, "hex:"))
	case strings.HasPrefix(value, "base64:"):
		return base64.StdEncoding.DecodeString(strings.TrimPrefix(value, "base64:"))
	case strings.HasPrefix(value, "0x"):
		return hex.DecodeString(strings.TrimPrefix(value, "0x"))
	}

	if decoded, err := hex.DecodeString(value); err == nil {
		return decoded, nil
	}
	return base64.StdEncoding.DecodeString(value)
}

func decode(w io.Writer, kind, value string) error {
	data, err := parseData(value)
	if err != nil {
		return errors.Wrapf(errUsage, "data is neither hex nor base64: %v", err)
	}

	switch kind {
	case "mint":
		var mint nft.MintAccount
		if err := mint.Unmarshal(data); err != nil {
			return errors.Wrap(err, "failed to decode mint")
		}
		fmt.Fprintln(w, mint.String())
	case "nft":
		var account nft.Account
		if err := account.Unmarshal(data); err != nil {
			return errors.Wrap(err, "failed to decode nft")
		}
		fmt.Fprintln(w, account.String())
	case "mint-meta":
		var meta token.MintMeta
		if err := meta.Unmarshal(data); err != nil {
			return errors.Wrap(err, "failed to decode mint meta")
		}
		fmt.Fprintln(w, meta.String())
	case "nft-instruction":
		return decodeNftInstruction(w, data)
	case "token-instruction":
		return decodeTokenInstruction(w, data)
	default:
		return errors.Wrapf(errUsage, "unknown decode kind %q", kind)
	}
	return nil
}

func decodeNftInstruction(w io.Writer, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty instruction data")
	}

	command := nft.Command(data[0])
	var err error
	var details string
	switch command {
	case nft.CommandInitializeMint:
		var args *nft.InitializeMintInstructionArgs
		if args, err = nft.DecodeInitializeMintInstructionData(data); err == nil {
			details = fmt.Sprintf(
				"total_supply=%d mint_authority=%s freeze_authority=%s name=%q symbol=%q icon_uri=%q",
				args.TotalSupply,
				base58.Encode(args.MintAuthority),
				keyOrNone(args.FreezeAuthority),
				args.Name,
				args.Symbol,
				args.IconURI,
			)
		}
	case nft.CommandMintTo:
		var args *nft.MintToInstructionArgs
		if args, err = nft.DecodeMintToInstructionData(data); err == nil {
			details = fmt.Sprintf("token_uri=%q", args.TokenURI)
		}
	case nft.CommandUpdate:
		var args *nft.UpdateInstructionArgs
		if args, err = nft.DecodeUpdateInstructionData(data); err == nil {
			details = fmt.Sprintf("update_type=%s uri=%q", args.UpdateType, args.URI)
		}
	case nft.CommandSetAuthority:
		var args *nft.SetAuthorityInstructionArgs
		if args, err = nft.DecodeSetAuthorityInstructionData(data); err == nil {
			details = fmt.Sprintf("authority_type=%s new_authority=%s", args.AuthorityType, keyOrNone(args.NewAuthority))
		}
	case nft.CommandTransfer:
		err = nft.DecodeTransferInstructionData(data)
	case nft.CommandFreeze:
		err = nft.DecodeFreezeInstructionData(data)
	case nft.CommandThaw:
		err = nft.DecodeThawInstructionData(data)
	case nft.CommandBurn:
		err = nft.DecodeBurnInstructionData(data)
	default:
		return errors.Errorf("unknown nft instruction %d", data[0])
	}
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", command)
	}

	printInstruction(w, command.String(), details)
	return nil
}

func decodeTokenInstruction(w io.Writer, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty instruction data")
	}

	command := token.Command(data[0])
	var err error
	var details string
	switch command {
	case token.CommandUpdateSymbol, token.CommandUpdateName, token.CommandUpdateIcon:
		var value string
		switch command {
		case token.CommandUpdateSymbol:
			value, err = token.DecodeUpdateSymbolInstructionData(data)
		case token.CommandUpdateName:
			value, err = token.DecodeUpdateNameInstructionData(data)
		default:
			value, err = token.DecodeUpdateIconInstructionData(data)
		}
		details = fmt.Sprintf("value=%q", value)
	case token.CommandCreateMintMetaAccount:
		err = token.DecodeCreateMintMetaAccountInstructionData(data)
	case token.CommandInitializeMintMetaAccount:
		var args *token.InitializeMintMetaAccountInstructionArgs
		if args, err = token.DecodeInitializeMintMetaAccountInstructionData(data); err == nil {
			details = fmt.Sprintf("symbol=%q name=%q icon=%q", args.Symbol, args.Name, args.Icon)
		}
	default:
		return errors.Errorf("unsupported token instruction %d", data[0])
	}
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", command)
	}

	printInstruction(w, command.String(), details)
	return nil
}

func printInstruction(w io.Writer, name, details string) {
	if details == "" {
		fmt.Fprintln(w, name)
		return
	}
	fmt.Fprintf(w, "%s %s\n", name, details)
}
