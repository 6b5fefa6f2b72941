package calc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/scienceol/equivalents/pkg/common/code"
	"github.com/scienceol/equivalents/pkg/core/equivalent/equivalent"
	"github.com/scienceol/equivalents/pkg/core/reagent/catalog"
	"github.com/scienceol/equivalents/pkg/repo/library"
	"github.com/scienceol/equivalents/pkg/repo/lock"
)

func TestParsePair(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		value   float64
		wantErr bool
	}{
		{in: "tetracycline=1.75", name: "tetracycline", value: 1.75},
		{in: " 2M HCl = 1.5 ", name: "2M HCl", value: 1.5},
		{in: "a=b=2", name: "a=b", value: 2},
		{in: "pyridine", wantErr: true},
		{in: "=2", wantErr: true},
		{in: "pyridine=two", wantErr: true},
		{in: "pyridine=", wantErr: true},
		{in: "pyridine=NaN", wantErr: true},
		{in: "pyridine=inf", wantErr: true},
	}
	for _, tt := range tests {
		name, v, err := parsePair("reagent", tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parsePair(%q) accepted", tt.in)
			}
			continue
		}
		if err != nil || name != tt.name || v != tt.value {
			t.Errorf("parsePair(%q) = %q, %v, %v", tt.in, name, v, err)
		}
	}
}

func TestParseRequest(t *testing.T) {
	req, err := parseRequest("A=1", []string{"B=2", "C=0.5"})
	if err != nil {
		t.Fatal(err)
	}
	if req.Limiting.Name != "A" || len(req.Reagents) != 2 || req.Reagents[1].Eq != 0.5 {
		t.Fatalf("req = %+v", req)
	}
	if _, err := parseRequest("A=1", []string{"B=x"}); err == nil {
		t.Fatal("malformed eq accepted")
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "library.json")
	content := `[{"name": "A", "category": "solid", "molar mass": 100}, {"name": "B", "category": "solid", "molar mass": 50}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.New(ctx, library.New(path), lock.NewLocal())
	if err != nil {
		t.Fatal(err)
	}

	req, _ := parseRequest("A=1", []string{"B=2"})
	out := &bytes.Buffer{}
	if err := run(ctx, out, equivalent.New(c), req); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "For 1.0 g of A, measure:\n\n1.0 g of B (2.0 eq)\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}

	req, _ = parseRequest("A=1", []string{"Z=2"})
	if err := run(ctx, out, equivalent.New(c), req); !errors.Is(err, code.ReagentNotFound) {
		t.Fatalf("err = %v, want ReagentNotFound", err)
	}
}
