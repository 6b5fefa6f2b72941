package calc

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/scienceol/equivalents/internal/boot"
	"github.com/scienceol/equivalents/internal/config"
	core "github.com/scienceol/equivalents/pkg/core/equivalent"
	"github.com/scienceol/equivalents/pkg/core/equivalent/equivalent"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	var (
		limiting string
		reagents []string
	)
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute how much of each reagent to measure",
		Example: `  equivalents calc --limiting "tetracycline=1.75" --reagent "pyridine=2" --reagent "2M HCl=1.5"`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := parseRequest(limiting, reagents)
			if err != nil {
				return err
			}
			c, err := boot.Catalog(cmd.Context(), config.Global())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), equivalent.New(c), req)
		},
		PostRunE: func(cmd *cobra.Command, _ []string) error {
			boot.Close(cmd.Context())
			return nil
		},
	}
	cmd.Flags().StringVarP(&limiting, "limiting", "l", "", "limiting reagent as NAME=AMOUNT, amount in g or mL")
	cmd.Flags().StringArrayVarP(&reagents, "reagent", "r", nil, "reagent to measure as NAME=EQ, repeatable")
	_ = cmd.MarkFlagRequired("limiting")
	_ = cmd.MarkFlagRequired("reagent")
	return cmd
}

func run(ctx context.Context, out io.Writer, svc core.Service, req *core.CalculateReq) error {
	resp, err := svc.Calculate(ctx, req)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, resp.Report)
	return err
}

// parsePair splits NAME=VALUE at the last '='.
func parsePair(flag, s string) (string, float64, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return "", 0, fmt.Errorf("--%s %q: expected NAME=NUMBER", flag, s)
	}
	name := strings.TrimSpace(s[:i])
	if name == "" {
		return "", 0, fmt.Errorf("--%s %q: reagent name is empty", flag, s)
	}
	raw := strings.TrimSpace(s[i+1:])
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", 0, fmt.Errorf("--%s %q: %q is not a number", flag, s, raw)
	}
	return name, v, nil
}

func parseRequest(limiting string, reagents []string) (*core.CalculateReq, error) {
	name, amount, err := parsePair("limiting", limiting)
	if err != nil {
		return nil, err
	}
	req := &core.CalculateReq{
		Limiting: core.LimitingReq{Name: name, Amount: amount},
		Reagents: make([]core.ReagentReq, 0, len(reagents)),
	}
	for _, s := range reagents {
		n, eq, err := parsePair("reagent", s)
		if err != nil {
			return nil, err
		}
		req.Reagents = append(req.Reagents, core.ReagentReq{Name: n, Eq: eq})
	}
	return req, nil
}
