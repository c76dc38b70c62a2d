package domain

import (
	interfaces "bakkey/internal/domain/interfaces"
	types "bakkey/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Entropy       = types.Entropy
	Mnemonic      = types.Mnemonic
	AgeIdentity   = types.AgeIdentity
	AgeRecipient  = types.AgeRecipient
	BackupKey     = types.BackupKey
	Bak           = types.Bak
	BakArray      = types.BakArray
	BackupConfig  = types.BackupConfig
	KeyID         = types.KeyID
	KeyState      = types.KeyState
	KeyRecord     = types.KeyRecord
	Fingerprint   = types.Fingerprint
	Registration  = types.Registration
	RestoreResult = types.RestoreResult

	HealthResponse    = types.HealthResponse
	GenerateResponse  = types.GenerateResponse
	MnemonicRequest   = types.MnemonicRequest
	RecipientResponse = types.RecipientResponse
	ValidateRequest   = types.ValidateRequest
	ValidateResponse  = types.ValidateResponse
	RegisterRequest   = types.RegisterRequest
	RestoreRequest    = types.RestoreRequest
	KeyListResponse   = types.KeyListResponse
)

// Lifecycle states re-exported for callers that only import domain.
const (
	KeyStateUnsaved  = types.KeyStateUnsaved
	KeyStateSaved    = types.KeyStateSaved
	KeyStateImported = types.KeyStateImported
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RecipientDeriver     = interfaces.RecipientDeriver
	BackupKeyService     = interfaces.BackupKeyService
	PanelIdentityService = interfaces.PanelIdentityService
	KeyringService       = interfaces.KeyringService
	IdentityStore        = interfaces.IdentityStore
	KeyringStore         = interfaces.KeyringStore
	DaemonClient         = interfaces.DaemonClient
)
