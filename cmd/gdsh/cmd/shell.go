package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/gdsh/foundation/shell"
	"github.com/msto63/gdsh/foundation/shell/app"
	tuishell "github.com/msto63/gdsh/internal/tui/shell"
)

var shellPlain bool

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Starts the interactive shell",
	Long: `Starts the interactive shell against the configured store.

The shell runs full screen by default. With --plain it reads
commands line by line from stdin instead, which suits pipes and
scripted use.`,
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

		if shellPlain {
			return runPlain(runtime, cfg.Shell.Prompt)
		}
		return tuishell.Run(runtime, cfg.Shell.Prompt)
	},
}

// runPlain is the line-by-line fallback shell
func runPlain(runtime *shell.Runtime, prompt string) error {
	sess := runtime.NewSession()
	out := &app.WriterOutput{W: os.Stdout}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(runtime.Prompt(prompt, sess))
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		result, err := runtime.Eval(context.Background(), sess, scanner.Text(), out)
		if errors.Is(err, shell.ErrExit) {
			return nil
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			continue
		}
		if result != "" {
			fmt.Println(result)
		}
	}
}

func init() {
	shellCmd.Flags().BoolVar(&shellPlain, "plain", false, "plain line-by-line shell without the full-screen UI")
	rootCmd.AddCommand(shellCmd)
}
