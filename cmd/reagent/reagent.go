package reagent

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/scienceol/equivalents/internal/boot"
	"github.com/scienceol/equivalents/internal/config"
	"github.com/scienceol/equivalents/pkg/core/reagent"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reagent",
		Short: "Inspect and extend the reagent catalog",
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			boot.Close(cmd.Context())
			return nil
		},
	}
	cmd.AddCommand(newList(), newAdd(), newLookup())
	return cmd
}

func open(cmd *cobra.Command) (reagent.Service, error) {
	return boot.Catalog(cmd.Context(), config.Global())
}

func newList() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "List every reagent in stored order",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := open(cmd)
			if err != nil {
				return err
			}
			return list(cmd.Context(), cmd.OutOrStdout(), svc)
		},
	}
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func list(ctx context.Context, out io.Writer, svc reagent.Service) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY\tUNIT\tMOLAR MASS\tDENSITY\tCONCENTRATION\tSOLUTION DENSITY")
	for _, r := range svc.List(ctx) {
		resp := reagent.NewReagentResp(r)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			resp.Name, resp.Category, resp.Unit, num(&resp.MolarMass),
			num(resp.Density), num(resp.SolutionConcentration), num(resp.SolutionDensity))
	}
	return w.Flush()
}

type addFlags struct {
	req                   reagent.RegisterReq
	molarMass             float64
	density               float64
	solutionConcentration float64
	solutionDensity       float64
	pubchem               bool
}

func optional(flags *pflag.FlagSet, name string, v float64) *float64 {
	if !flags.Changed(name) {
		return nil
	}
	return &v
}

func newAdd() *cobra.Command {
	f := &addFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a reagent",
		Example: `  equivalents reagent add --name pyridine --category liquid --molar-mass 79.10 --density 0.98
  equivalents reagent add --name urea --category solid --pubchem`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			f.req.MolarMass = optional(flags, "molar-mass", f.molarMass)
			f.req.Density = optional(flags, "density", f.density)
			f.req.SolutionConcentration = optional(flags, "concentration", f.solutionConcentration)
			f.req.SolutionDensity = optional(flags, "solution-density", f.solutionDensity)

			svc, err := open(cmd)
			if err != nil {
				return err
			}
			return add(cmd.Context(), cmd.OutOrStdout(), svc, &f.req, f.pubchem)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.req.Name, "name", "", "reagent name")
	flags.StringVar(&f.req.Category, "category", "", "solid, liquid, percent solution or molar solution")
	flags.Float64Var(&f.molarMass, "molar-mass", 0, "molar mass in g/mol")
	flags.Float64Var(&f.density, "density", 0, "density of a liquid in g/mL")
	flags.Float64Var(&f.solutionConcentration, "concentration", 0, "solution concentration, % or mol/L")
	flags.Float64Var(&f.solutionDensity, "solution-density", 0, "density of a percent solution in g/mL")
	flags.StringVar(&f.req.Image, "image", "", "structure image reference")
	flags.BoolVar(&f.pubchem, "pubchem", false, "take the molar mass from PubChem when --molar-mass is not set")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func add(ctx context.Context, out io.Writer, svc reagent.Service, req *reagent.RegisterReq, pubchem bool) error {
	if pubchem && req.MolarMass == nil {
		c, err := svc.QueryCompound(ctx, &reagent.CompoundReq{Name: req.Name})
		if err != nil {
			return fmt.Errorf("pubchem lookup of %q: %w", req.Name, err)
		}
		req.MolarMass = &c.MolarMass
		fmt.Fprintf(out, "PubChem: %s %s, %s g/mol\n", c.Name, c.MolecularFormula, num(&c.MolarMass))
	}
	r, err := svc.Register(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "registered %s (%s, measured in %s)\n", r.Name, r.Category(), r.Unit())
	return nil
}

func newLookup() *cobra.Command {
	return &cobra.Command{
		Use:          "lookup NAME",
		Short:        "Look a compound up on PubChem",
		SilenceUsage: true,
		Args:         cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := open(cmd)
			if err != nil {
				return err
			}
			return lookup(cmd.Context(), cmd.OutOrStdout(), svc, args[0])
		},
	}
}

func lookup(ctx context.Context, out io.Writer, svc reagent.Service, name string) error {
	c, err := svc.QueryCompound(ctx, &reagent.CompoundReq{Name: name})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s\n  formula:    %s\n  molar mass: %s g/mol\n", c.Name, c.MolecularFormula, num(&c.MolarMass))
	return nil
}
