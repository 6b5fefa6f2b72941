package events

import (
	"context"
	"sync"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/notify"
)

// Local delivers messages to handlers registered in the same process,
// synchronously and in registration order. Several handlers may share an
// action, so one Local can stand in for a bus between processes.
type Local struct {
	mu       sync.RWMutex
	handlers map[notify.Action][]notify.HandleFunc
}

func NewLocal() *Local {
	return &Local{handlers: make(map[notify.Action][]notify.HandleFunc)}
}

func (l *Local) Registry(_ context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if handleFunc == nil {
		return code.ParamErr.WithMsg("nil handler")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[msgName] = append(l.handlers[msgName], handleFunc)
	return nil
}

func (l *Local) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	stamp(msg)
	l.mu.RLock()
	hs := append([]notify.HandleFunc(nil), l.handlers[msg.Channel]...)
	l.mu.RUnlock()
	for _, h := range hs {
		if err := h(ctx, msg); err != nil {
			return code.NotifySendMsgErr.WithErr(err)
		}
	}
	return nil
}

func (l *Local) Close(context.Context) error { return nil }
