package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/gdsh/foundation/shell"
	"github.com/msto63/gdsh/foundation/shell/app"
)

var execCmd = &cobra.Command{
	Use:   "exec <command> [command...]",
	Short: "Runs shell commands non-interactively",
	Long: `Runs one or more shell commands against the configured store and
exits. Each argument is one command line; a failing command stops
the run.

Examples:
  gdsh exec "set name root" "ls -p"
  gdsh exec "mkrel -t KNOWS -n" ls`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			printError("loading configuration", err)
			return err
		}

		store, err := openStore(cfg)
		if err != nil {
			printError("opening store", err)
			return err
		}

		runtime, err := shell.New(store, logger, shell.Options{AliasFile: cfg.Shell.AliasFile}, nil)
		if err != nil {
			printError("starting shell", err)
			store.Close()
			return err
		}
		defer runtime.Close()

		sess := runtime.NewSession()
		out := &app.WriterOutput{W: os.Stdout}

		for _, line := range args {
			result, err := runtime.Eval(context.Background(), sess, line, out)
			if err != nil {
				printError(strings.TrimSpace(line), err)
				return err
			}
			if result != "" {
				fmt.Println(result)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
