package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pythia-lang/pythia/internal/ast"
	"github.com/pythia-lang/pythia/internal/frontend"
)

func newParseCmd(flags *rootFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "parse <file>...",
		Short: "Parse files and dump their syntax trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			broken := 0
			for _, path := range args {
				res, err := frontend.LoadFile(path, flags.options())
				if err != nil {
					return err
				}
				printDiags(cmd.ErrOrStderr(), res)
				if res.Program == nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: no statements\n", path)
					broken++
					continue
				}
				if !res.Diags.Empty() {
					broken++
				}
				if err := dumpProgram(cmd.OutOrStdout(), res.Program, format); err != nil {
					return err
				}
			}
			if broken > 0 {
				return fmt.Errorf("%d of %d files had problems", broken, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "yaml", "output format: yaml or text")
	return cmd
}

func dumpProgram(w io.Writer, prog *ast.Program, format string) error {
	switch format {
	case "yaml":
		out, err := yaml.Marshal(ast.Dump(prog))
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	case "text":
		_, err := fmt.Fprintln(w, prog.String())
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printDiags(w io.Writer, res *frontend.Result) {
	for _, d := range res.Diags.All() {
		fmt.Fprintln(w, d.String())
	}
}
