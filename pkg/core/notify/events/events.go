package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/notify"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/utils"
)

// Events broadcasts over redis publish/subscribe.
type Events struct {
	actions sync.Map
	client  *r.Client
	wait    sync.WaitGroup

	mu      sync.Mutex
	cancels []context.CancelFunc
}

func NewEvents(client *r.Client) notify.MsgCenter {
	return &Events{client: client}
}

func stamp(msg *notify.SendMsg) {
	msg.Timestamp = time.Now().Unix()
	if msg.UUID.IsNil() {
		msg.UUID = uuid.Must(uuid.NewV4())
	}
}

func (e *Events) Registry(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if _, ok := e.actions.LoadOrStore(msgName, handleFunc); ok {
		return code.NotifyActionAlreadyRegistryErr.WithMsg(string(msgName))
	}

	ctx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancels = append(e.cancels, cancel)
	e.mu.Unlock()

	sub := e.client.Subscribe(ctx, string(msgName))

	e.wait.Add(1)
	utils.SafelyGo(func() {
		defer e.wait.Done()
		defer e.actions.Delete(msgName)
		defer func() {
			if err := sub.Close(); err != nil {
				logger.Errorf(ctx, "close subscription %s err: %+v", msgName, err)
			}
		}()

		ch := sub.Channel()
		for {
			select {
			case m, ok := <-ch:
				if !ok {
					logger.Infof(ctx, "exit redis channel name: %s", msgName)
					return
				}
				if m == nil {
					continue
				}
				msg := &notify.SendMsg{}
				if err := json.Unmarshal([]byte(m.Payload), msg); err != nil {
					logger.Errorf(ctx, "decode redis msg %s err: %+v", msgName, err)
					continue
				}
				if err := handleFunc(ctx, msg); err != nil {
					logger.Errorf(ctx, "handle redis msg fail name: %s, err: %+v", msgName, err)
				}
			case <-ctx.Done():
				logger.Infof(ctx, "exit redis channel name: %s", msgName)
				return
			}
		}
	}, func(err error) {
		logger.Errorf(ctx, "Registry handle msg err: %+v", err)
	})
	return nil
}

func (e *Events) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	stamp(msg)
	data, err := json.Marshal(msg)
	if err != nil {
		return code.MarshalErr.WithErr(err)
	}
	if err := e.client.Publish(ctx, string(msg.Channel), data).Err(); err != nil {
		logger.Errorf(ctx, "send msg fail action: %s, err: %+v", msg.Channel, err)
		return code.NotifySendMsgErr.WithErr(err)
	}
	return nil
}

// Close stops every subscriber and waits for them to exit.
func (e *Events) Close(context.Context) error {
	e.mu.Lock()
	for _, cancel := range e.cancels {
		cancel()
	}
	e.cancels = nil
	e.mu.Unlock()
	e.wait.Wait()
	return nil
}
