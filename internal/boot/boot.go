package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/notify"
	"github.com/scienceol/equivalents/pkg/core/notify/events"
	"github.com/scienceol/equivalents/pkg/core/reagent/catalog"
	"github.com/scienceol/equivalents/pkg/middleware/db"
	"github.com/scienceol/equivalents/pkg/middleware/logger"
	"github.com/scienceol/equivalents/pkg/middleware/redis"
	"github.com/scienceol/equivalents/pkg/repo"
	"github.com/scienceol/equivalents/pkg/repo/library"
	"github.com/scienceol/equivalents/pkg/repo/lock"
	"github.com/scienceol/equivalents/pkg/repo/pubchem"
	reagentRepo "github.com/scienceol/equivalents/pkg/repo/reagent"
)

func InitPostgres(ctx context.Context, conf *config.GlobalConfig) {
	db.InitPostgres(ctx, &db.Config{
		Host: conf.Database.Host, Port: conf.Database.Port,
		User: conf.Database.User, PW: conf.Database.Password,
		DBName: conf.Database.Name, LogConf: db.LogConf{Level: conf.Log.LogLevel},
	})
}

func InitRedis(ctx context.Context, conf *config.GlobalConfig) {
	redis.InitRedis(ctx, &redis.Redis{
		Host: conf.Redis.Host, Port: conf.Redis.Port,
		Password: conf.Redis.Password, DB: conf.Redis.DB,
	})
}

// Store opens the configured catalog backend.
func Store(ctx context.Context, conf *config.GlobalConfig) (repo.CatalogRepo, error) {
	switch conf.Catalog.Backend {
	case config.CatalogJSON:
		return library.New(conf.Catalog.Path), nil
	case config.CatalogPostgres:
		if db.DB() == nil {
			InitPostgres(ctx, conf)
		}
		return reagentRepo.NewReagentRepo(db.DB().DBIns()), nil
	default:
		return nil, fmt.Errorf("unknown CATALOG_BACKEND %q", conf.Catalog.Backend)
	}
}

func Locker(ctx context.Context, conf *config.GlobalConfig) (repo.Locker, error) {
	switch conf.Lock.Backend {
	case config.LockLocal:
		return lock.NewLocal(), nil
	case config.LockRedis:
		if redis.GetClient() == nil {
			InitRedis(ctx, conf)
		}
		return lock.NewRedis(redis.GetClient(), time.Duration(conf.Lock.TTLSeconds)*time.Second), nil
	default:
		return nil, fmt.Errorf("unknown LOCK_BACKEND %q", conf.Lock.Backend)
	}
}

func PubChem(conf *config.GlobalConfig) repo.PubChemRepo {
	return pubchem.NewPubChemRepo(conf.RPC.PubChem.Addr,
		time.Duration(conf.RPC.PubChem.Timeout)*time.Second)
}

var center notify.MsgCenter

// Notifier matches the lock scope: in process with the local lock, redis
// pub/sub with the redis lock so other replicas reload.
func Notifier(conf *config.GlobalConfig) notify.MsgCenter {
	if conf.Lock.Backend == config.LockRedis {
		return events.NewEvents(redis.GetClient())
	}
	return events.NewLocal()
}

// Catalog wires the configured store, lock, notifier and PubChem client
// into a loaded catalog.
func Catalog(ctx context.Context, conf *config.GlobalConfig) (*catalog.Catalog, error) {
	store, err := Store(ctx, conf)
	if err != nil {
		return nil, err
	}
	locker, err := Locker(ctx, conf)
	if err != nil {
		return nil, err
	}
	center = Notifier(conf)
	return catalog.New(ctx, store, locker,
		catalog.WithLockKey(conf.Lock.Key),
		catalog.WithPubChem(PubChem(conf)),
		catalog.WithNotify(center))
}

// Close releases whatever Catalog opened.
func Close(ctx context.Context) {
	if center != nil {
		if err := center.Close(ctx); err != nil {
			logger.Errorf(ctx, "close notifier err: %+v", err)
		}
		center = nil
	}
	redis.CloseRedis(ctx)
	db.ClosePostgres(ctx)
}
