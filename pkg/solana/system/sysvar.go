package system

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
)

// SystemAccount is the system program, which owns every wallet and creates
// program accounts.
var SystemAccount ed25519.PublicKey

// RentSysVar points to the system variable "Rent"
var RentSysVar ed25519.PublicKey

func init() {
	SystemAccount = mustDecode("11111111111111111111111111111111")
	RentSysVar = mustDecode("SysvarRent111111111111111111111111111111111")
}

func mustDecode(s string) ed25519.PublicKey {
	b, err := base58.Decode(s)
	if err != nil {
		panic(err)
	}
	return b
}
