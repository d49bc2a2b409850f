package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/frontend"
)

const version = "0.1.0"

// rootFlags carries the options shared by every subcommand.
type rootFlags struct {
	langVersion string
	fsRoot      string
}

func (f *rootFlags) options() frontend.Options {
	opts := frontend.Options{LangVersion: f.langVersion}
	if f.fsRoot != "" {
		opts.FS = afero.NewBasePathFs(afero.NewOsFs(), f.fsRoot)
	}
	return opts
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "pythia",
		Short:         "Python source inspection tools",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.langVersion, "lang-version", "",
		"target language level, e.g. 2.7 or 3.4 (default 2.7)")
	cmd.PersistentFlags().StringVar(&flags.fsRoot, "fs-root", "",
		"resolve file arguments relative to this directory")

	cmd.AddCommand(newParseCmd(flags))
	cmd.AddCommand(newTokensCmd(flags))
	cmd.AddCommand(newWatchCmd(flags))
	return cmd
}
