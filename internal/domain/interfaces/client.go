package interfaces

import (
	"context"

	domaintypes "bakkey/internal/domain/types"
)

// DaemonClient talks to a running bakkeyd.
type DaemonClient interface {
	Health(ctx context.Context) error
	PanelRecipient(ctx context.Context) (domaintypes.AgeRecipient, error)
	Generate(ctx context.Context, track bool) (domaintypes.GenerateResponse, error)
	Recover(ctx context.Context, phrase string) (domaintypes.AgeRecipient, error)
	Validate(ctx context.Context, recipient string) (bool, error)
	Restore(ctx context.Context, encrypted string) (domaintypes.RestoreResult, error)
	ListKeys(ctx context.Context) ([]domaintypes.KeyRecord, error)
	RegisterKey(ctx context.Context, req domaintypes.RegisterRequest) (domaintypes.KeyRecord, error)
	ConfirmKey(ctx context.Context, id domaintypes.KeyID, phrase string) (domaintypes.KeyRecord, error)
	RemoveKey(ctx context.Context, id domaintypes.KeyID) error
	ExportKeys(ctx context.Context, format string) ([]byte, error)
}
