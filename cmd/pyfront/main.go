// Command pyfront is a demonstration driver over the lexer/parser
// pipeline, grounded in the teacher's cmd/devcmd (flag-driven) and
// cli/main.go (cobra-driven) binaries. It is not part of the front end's
// contract: any other program may drive lexer.New / parser.Parse however
// it likes.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/opal-lang/pyfront/ast"
	"github.com/opal-lang/pyfront/lexer"
	"github.com/opal-lang/pyfront/parser"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	root := &cobra.Command{
		Use:           "pyfront",
		Short:         "Lex and parse pyfront source files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newTokensCmd(), newASTCmd(), newCheckCmd(), newWatchCmd())
	return root
}

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "dump the lexed token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			for _, it := range lexer.Tokenize(src) {
				if it.Err != nil {
					it.Err.Filename = args[0]
					fmt.Fprintln(cmd.OutOrStdout(), it.Err.Error())
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", it.Line, it.Tok)
			}
			return nil
		},
	}
}

func newASTCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "parse a file and print its AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			mod, err := parser.Parse(src, parser.WithFilename(args[0]))
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				return fmt.Errorf("parse failed")
			}
			switch format {
			case "text":
				return ast.Dump(cmd.OutOrStdout(), mod)
			case "cbor":
				data, err := ast.MarshalCanonicalCBOR(mod)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return fmt.Errorf("unknown --format %q (want text or cbor)", format)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or cbor")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "report every lexer error, or else the first parser error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := runCheck(cmd, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s has errors", args[0])
			}
			return nil
		},
	}
}

// runCheck prints every lexer error (the lexer never stops at the
// first one); only when there are none does it parse and print the first
// parser error, if any. It reports whether the file is clean.
func runCheck(cmd *cobra.Command, path string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	clean := true
	for _, it := range lexer.Tokenize(src) {
		if it.Err != nil {
			it.Err.Filename = path
			fmt.Fprintln(cmd.OutOrStdout(), it.Err.Error())
			clean = false
		}
	}
	if !clean {
		return false, nil
	}

	if _, err := parser.Parse(src, parser.WithFilename(path)); err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), err)
		return false, nil
	}
	return true, nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "re-run check whenever the file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args[0])
		},
	}
}

func runWatch(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("pyfront: failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("pyfront: failed to watch %s: %w", path, err)
	}

	if ok, err := runCheck(cmd, path); err != nil {
		return err
	} else if ok {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			slog.Debug("watch event", "path", path, "op", event.Op.String())
			ok2, err := runCheck(cmd, path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				continue
			}
			if ok2 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "err", err)
		}
	}
}
