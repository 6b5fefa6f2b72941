package events

import (
	"context"
	"errors"
	"testing"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/notify"
)

func TestLocalBroadcast(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()
	var got []string
	for _, name := range []string{"a", "b"} {
		name := name
		if err := l.Registry(ctx, notify.CatalogModify, func(_ context.Context, msg *notify.SendMsg) error {
			got = append(got, name+":"+msg.Reagent)
			return nil
		}); err != nil {
			t.Fatal(err)
		}
	}

	msg := &notify.SendMsg{Channel: notify.CatalogModify, Reagent: "urea"}
	if err := l.Broadcast(ctx, msg); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "a:urea" || got[1] != "b:urea" {
		t.Fatalf("delivered %v", got)
	}
	if msg.UUID.IsNil() || msg.Timestamp == 0 {
		t.Fatalf("message not stamped: %+v", msg)
	}
}

func TestLocalHandlerError(t *testing.T) {
	ctx := context.Background()
	l := NewLocal()
	_ = l.Registry(ctx, notify.CatalogModify, func(context.Context, *notify.SendMsg) error {
		return errors.New("boom")
	})
	err := l.Broadcast(ctx, &notify.SendMsg{Channel: notify.CatalogModify})
	if !errors.Is(err, code.NotifySendMsgErr) {
		t.Fatalf("err = %v", err)
	}
	if err := l.Registry(ctx, notify.CatalogModify, nil); !errors.Is(err, code.ParamErr) {
		t.Fatalf("nil handler err = %v", err)
	}
}
