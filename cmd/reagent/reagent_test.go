package reagent

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/scienceol/equivalents/pkg/core/reagent/catalog"
	"github.com/scienceol/equivalents/pkg/repo"
	"github.com/scienceol/equivalents/pkg/repo/library"
	"github.com/scienceol/equivalents/pkg/repo/lock"
)

type fakePubChem struct{}

func (fakePubChem) GetCompound(_ context.Context, name string) (*repo.CompoundInfo, error) {
	if name != "urea" {
		return nil, code.CompoundNotFound
	}
	return &repo.CompoundInfo{Name: "Urea", MolecularFormula: "CH4N2O", MolecularWeight: 60.06}, nil
}

func newService(t *testing.T) *catalog.Catalog {
	t.Helper()
	path := filepath.Join(t.TempDir(), "library.json")
	c, err := catalog.New(context.Background(), library.New(path), lock.NewLocal(), catalog.WithPubChem(fakePubChem{}))
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func f(v float64) *float64 { return &v }

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	out := &bytes.Buffer{}

	err := add(ctx, out, svc, &reagent.RegisterReq{Name: "pyridine", Category: "liquid", MolarMass: f(79.10), Density: f(0.98)}, false)
	if err != nil {
		t.Fatal(err)
	}
	err = add(ctx, out, svc, &reagent.RegisterReq{Name: "urea", Category: "solid"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "CH4N2O, 60.06 g/mol") {
		t.Fatalf("output = %q", out.String())
	}
	r, err := svc.Find(ctx, "urea")
	if err != nil || r.Substance != (reagent.Solid{MolarMass: 60.06}) {
		t.Fatalf("urea = %+v, %v", r, err)
	}

	out.Reset()
	if err := list(ctx, out, svc); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "pyridine") || !strings.Contains(lines[1], "0.98") {
		t.Fatalf("list = %q", out.String())
	}
}

func TestAddValidation(t *testing.T) {
	err := add(context.Background(), &bytes.Buffer{}, newService(t),
		&reagent.RegisterReq{Name: "triethylamine", Category: "liquid", MolarMass: f(101.19)}, false)
	if !errors.Is(err, code.ValidationErr) || code.FieldOf(err) != "density" {
		t.Fatalf("err = %v", err)
	}
}

func TestLookup(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	out := &bytes.Buffer{}
	if err := lookup(ctx, out, svc, "urea"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Urea\n") {
		t.Fatalf("output = %q", out.String())
	}
	if err := lookup(ctx, out, svc, "unobtainium"); !errors.Is(err, code.CompoundNotFound) {
		t.Fatalf("err = %v", err)
	}
}
