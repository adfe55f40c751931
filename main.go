package main

import (
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jmbriody/bookofnumbers/cdnf"
	"github.com/jmbriody/bookofnumbers/qm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "bookofnumbers",
		Short: "boolean canonical forms and Quine-McCluskey minimization",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "trace the reduction rounds")
	cmd.AddCommand(canonicalCmd(), minimizeCmd(), expandCmd())
	return cmd
}

func canonicalCmd() *cobra.Command {
	var lowOrder, includeF bool
	cmd := &cobra.Command{
		Use:   "canonical <number>",
		Short: "expand a number to its canonical disjunctive normal form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, ok := new(big.Int).SetString(args[0], 10)
			if !ok {
				return fmt.Errorf("%q is not an integer", args[0])
			}
			res, err := cdnf.CanonicalOpts(n, !lowOrder, includeF)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&lowOrder, "low-order", false, "make A the low order bit")
	cmd.Flags().BoolVar(&includeF, "includef", false, "prefix the result with f(n) =")
	return cmd
}

func minimizeCmd() *cobra.Command {
	var lowOrder, full bool
	var dontCares string
	cmd := &cobra.Command{
		Use:   "minimize <number|expression|minterm indexes>",
		Short: "reduce a canonical expression to a minimal equivalent form",
		Long: `Reduce a canonical expression to a minimal equivalent form.

The argument is either an integer ("248"), a canonical expression
("ABC' + ABC + AB'C' + AB'C + A'BC") or a comma separated list of minterm
indexes ("3,4,5,6,7"). Don't care minterms can be listed with --dontcare
when indexes are used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			minterms, err := argMinterms(args[0], dontCares, !lowOrder)
			if err != nil {
				return err
			}
			pb := qm.New(minterms)
			if logrus.IsLevelEnabled(logrus.DebugLevel) {
				pb.Log = logrus.StandardLogger()
			}
			res, err := pb.MinimizeFull()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Cover)
			if full {
				printFull(out, res)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&lowOrder, "low-order", false, "make A the low order bit")
	cmd.Flags().BoolVar(&full, "full", false, "also print the term table and tied alternatives")
	cmd.Flags().StringVar(&dontCares, "dontcare", "", "comma separated don't care minterm indexes")
	return cmd
}

func expandCmd() *cobra.Command {
	var ranged bool
	cmd := &cobra.Command{
		Use:   "expand <expression>",
		Short: "expand a minimized expression back to a canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cdnf.ToCDNF(args[0], ranged)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ranged, "ranged", false, "fill in letters missing from the whole expression")
	return cmd
}

// argMinterms interprets the minimize argument: an integer, a comma
// separated index list, or a canonical expression.
func argMinterms(arg, dontCares string, highOrderA bool) ([]qm.Minterm, error) {
	if n, ok := new(big.Int).SetString(arg, 10); ok && dontCares == "" {
		// A single number is a truth table, not an index list.
		expr, err := cdnf.CanonicalOpts(n, highOrderA, false)
		if err != nil {
			return nil, err
		}
		if expr == "0" {
			return nil, nil
		}
		return cdnf.Parse(expr)
	}
	if indexes, ok := parseIndexes(arg); ok {
		dc, ok := parseIndexes(dontCares)
		if !ok {
			return nil, fmt.Errorf("invalid don't care list %q", dontCares)
		}
		return cdnf.FromIndexes(indexes, dc, highOrderA)
	}
	if dontCares != "" {
		return nil, fmt.Errorf("--dontcare requires minterm indexes, not an expression")
	}
	return cdnf.Parse(arg)
}

func parseIndexes(s string) ([]int, bool) {
	if s == "" {
		return nil, true
	}
	var res []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, false
		}
		res = append(res, n)
	}
	return res, true
}

func printFull(out io.Writer, res *qm.Results) {
	fmt.Fprintln(out, "row\tgen\tones\tused\tfinal\tterm\tsource")
	for _, t := range res.Terms {
		used := " "
		if t.Used {
			used = "*"
		}
		fmt.Fprintf(out, "%d\t%d\t%d\t%s\t%s\t%s\t%v\n",
			t.Row, t.Generation, t.Ones, used, t.Final, t, t.Source)
	}
	if alts := cdnf.Alternatives(res); len(alts) > 0 {
		fmt.Fprintln(out, "alternatives:")
		for _, alt := range alts {
			fmt.Fprintf(out, "  %s\n", alt)
		}
	}
}
