package boot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/notify/events"
	"github.com/scienceol/equivalents/pkg/core/reagent"
)

func TestCatalogJSONBackend(t *testing.T) {
	conf, err := config.New()
	if err != nil {
		t.Fatal(err)
	}
	conf.Catalog.Path = filepath.Join(t.TempDir(), "library.json")

	c, err := Catalog(context.Background(), conf)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(c.List(context.Background())); n != 0 {
		t.Fatalf("fresh catalog holds %d reagents", n)
	}
	if _, ok := center.(*events.Local); !ok {
		t.Fatalf("notifier with the local lock = %T", center)
	}

	mm := 60.06
	if _, err := c.Register(context.Background(), &reagent.RegisterReq{Name: "urea", Category: "solid", MolarMass: &mm}); err != nil {
		t.Fatalf("Register through the local notifier: %v", err)
	}

	Close(context.Background())
	if center != nil {
		t.Fatal("Close kept the notifier")
	}
}

func TestUnknownBackends(t *testing.T) {
	conf, err := config.New()
	if err != nil {
		t.Fatal(err)
	}
	conf.Catalog.Backend = "mongo"
	if _, err := Store(context.Background(), conf); err == nil {
		t.Fatal("unknown catalog backend accepted")
	}
	conf.Lock.Backend = "zookeeper"
	if _, err := Locker(context.Background(), conf); err == nil {
		t.Fatal("unknown lock backend accepted")
	}
}
