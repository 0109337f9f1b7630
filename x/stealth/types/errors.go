package types

import (
	errorsmod "cosmossdk.io/errors"
)

// x/stealth module sentinel errors
var (
	ErrKeyGeneration         = errorsmod.Register(ModuleName, 2, "key generation failed")
	ErrSecretAgreementFailed = errorsmod.Register(ModuleName, 3, "shared secret agreement failed")
	ErrAddressDerivation     = errorsmod.Register(ModuleName, 4, "stealth address derivation failed")
	ErrInvalidStealthData    = errorsmod.Register(ModuleName, 5, "invalid stealth data")
	ErrInvalidStealthKeys    = errorsmod.Register(ModuleName, 6, "invalid keys")
	ErrStealthOpenFailed     = errorsmod.Register(ModuleName, 7, "failed to open stealth address")
	ErrInvalidAddress        = errorsmod.Register(ModuleName, 8, "invalid stealth address")
	ErrStorage               = errorsmod.Register(ModuleName, 9, "stealth history storage failure")
	ErrInvalidParams         = errorsmod.Register(ModuleName, 10, "invalid stealth params")
)
