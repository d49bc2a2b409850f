package main

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/pythia-lang/pythia/internal/frontend"
)

func newWatchCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>...",
		Short: "Reparse files whenever they change and report diagnostics",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()

			// Watch the containing directories: editors replace files
			// on save, which drops a watch set on the file itself.
			watched := make(map[string]string) // real path -> argument path
			for _, arg := range args {
				real := filepath.Join(flags.fsRoot, arg)
				watched[filepath.Clean(real)] = arg
				if err := watcher.Add(filepath.Dir(real)); err != nil {
					return fmt.Errorf("watch %s: %w", arg, err)
				}
				reparse(cmd, flags, arg)
			}

			for {
				select {
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}
					arg, ok := watched[filepath.Clean(ev.Name)]
					if !ok {
						continue
					}
					reparse(cmd, flags, arg)

				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					cmd.PrintErrln("watch:", err)
				}
			}
		},
	}
	return cmd
}

// reparse runs one full parse of the file and prints a one-line
// verdict plus any diagnostics.
func reparse(cmd *cobra.Command, flags *rootFlags, path string) {
	res, err := frontend.LoadFile(path, flags.options())
	if err != nil {
		cmd.PrintErrln(err)
		return
	}
	printDiags(cmd.ErrOrStderr(), res)
	switch {
	case res.Ok():
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d statements)\n", path, len(res.Program.Stmts))
	case res.Program == nil:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: no statements\n", path)
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d problems\n", path, res.Diags.Count())
	}
}
