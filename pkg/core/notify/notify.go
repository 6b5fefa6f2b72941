package notify

import (
	"context"

	"github.com/gofrs/uuid/v5"
)

type Action string

const (
	// CatalogModify is sent after a reagent was registered.
	CatalogModify Action = "catalog-modify"
)

type SendMsg struct {
	Channel   Action    `json:"action"`
	Origin    uuid.UUID `json:"origin"`
	Reagent   string    `json:"reagent"`
	UUID      uuid.UUID `json:"uuid"`
	Timestamp int64     `json:"timestamp"`
}

type HandleFunc func(ctx context.Context, msg *SendMsg) error

// MsgCenter broadcasts messages between processes serving one catalog.
type MsgCenter interface {
	Registry(ctx context.Context, msgName Action, handleFunc HandleFunc) error
	Broadcast(ctx context.Context, msg *SendMsg) error
	Close(ctx context.Context) error
}
