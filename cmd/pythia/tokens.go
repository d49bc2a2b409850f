package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pythia-lang/pythia/internal/frontend"
)

// tokenDump is the serialized form of one token.
type tokenDump struct {
	Type    string `yaml:"type"`
	Literal string `yaml:"literal,omitempty"`
	Span    string `yaml:"span"`
}

func newTokensCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options()
			fs := opts.FS
			if fs == nil {
				fs = afero.NewOsFs()
			}
			source, err := afero.ReadFile(fs, args[0])
			if err != nil {
				return err
			}

			tokens, bag, err := frontend.Tokenize(args[0], string(source), opts)
			if err != nil {
				return err
			}

			dump := make([]tokenDump, len(tokens))
			for i, tok := range tokens {
				dump[i] = tokenDump{
					Type:    tok.Type.String(),
					Literal: tok.Literal,
					Span:    tok.Span.String(),
				}
			}
			out, err := yaml.Marshal(dump)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(out); err != nil {
				return err
			}

			for _, d := range bag.All() {
				cmd.PrintErrln(d.String())
			}
			return nil
		},
	}
	return cmd
}
