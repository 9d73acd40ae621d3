// Command lamtype infers principal types for untyped lambda terms by
// reducing them through an interaction net, or enumerates and classifies
// every closed term up to a given structural depth.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vic/lamtype/internal/xlog"
	"github.com/vic/lamtype/pkg/lambda"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	showTrace bool
	maxSteps  int
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lamtype",
		Short: "Infer types for untyped lambda terms via interaction nets",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			xlog.Configure(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().BoolVar(&showTrace, "trace", false, "print the reduction rule trace")
	root.PersistentFlags().IntVar(&maxSteps, "steps", 0, "bound the number of reduction steps (0 = unbounded)")

	root.AddCommand(inferCmd(), enumerateCmd())
	return root
}

func inferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "infer [term|-]",
		Short: "Infer the principal type of a single lambda term",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := inferSource(args)
			if err != nil {
				return err
			}
			return runInfer(src)
		},
	}
}

// inferSource resolves infer's positional argument per `lamtype infer
// [term|-]`: a literal term string, or `-`/no argument at all to read the
// term from stdin.
func inferSource(args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	b, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading term from stdin")
	}
	return strings.TrimSpace(string(b)), nil
}

func enumerateCmd() *cobra.Command {
	var start, end int
	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "Infer every closed term with structural depth in [start, end)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnumerate(start, end)
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first depth to enumerate (inclusive)")
	cmd.Flags().IntVar(&end, "end", 5, "last depth to enumerate (exclusive)")
	return cmd
}

func runInfer(src string) error {
	term, err := parseToDeBruijn(src)
	if err != nil {
		return err
	}
	opts := lambda.Options{Trace: showTrace, MaxSteps: maxSteps}
	printResult(src, lambda.InferWithOptions(term, opts))
	return nil
}

func runEnumerate(start, end int) error {
	opts := lambda.Options{Trace: showTrace, MaxSteps: maxSteps}
	for _, term := range lambda.Enumerate(start, end) {
		printResult(lambda.PrintDB(term), lambda.InferWithOptions(term, opts))
	}
	return nil
}

func parseToDeBruijn(src string) (lambda.DBTerm, error) {
	parsed, err := lambda.NewParser(src).Parse()
	if err != nil {
		return nil, errors.Wrap(err, "parse error")
	}
	term, err := lambda.ToDeBruijn(parsed)
	if err != nil {
		return nil, errors.Wrap(err, "binding error")
	}
	return term, nil
}

func printResult(src string, res lambda.Result) {
	switch {
	case res.Bounded:
		fmt.Printf("%s : step limit reached after %d steps\n", src, res.Steps)
	case !res.Typable:
		fmt.Printf("%s : not STLC-typable\n", src)
	default:
		fmt.Printf("%s : %s\n", src, res.Type)
	}
	if showTrace {
		for _, ev := range res.Trace {
			fmt.Printf("  step %d: %s %v\n", ev.Step, ev.Rule, ev.Nodes)
		}
		if res.Typable {
			fmt.Println("  " + lambda.Annotate(res.Types, res.Term, res.Diagnosed))
		}
	}
}
