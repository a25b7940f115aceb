package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	commandsvc "github.com/mamadbah2/stockbot/internal/service/commands"
)

var asJSON bool

var execCmd = &cobra.Command{
	Use:   `exec "COMMAND LINE"`,
	Short: "Run one chat command and print the reply",
	Long: `Run one command line, e.g. "sell | tshirt | 4 | 80", and print the reply the bot
would send. Arguments are joined with spaces. The command exits non-zero when the
operation is rejected.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().BoolVar(&asJSON, "json", false, "print the full outcome as JSON")
}

func runExec(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	dispatcher := commandsvc.NewService(s.engine, nil, s.logger.Named("svc.commands"))
	outcome := dispatcher.HandleCommand(cmd.Context(), strings.Join(args, " "), "stockctl")

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, outcome.Message)
	}

	if !outcome.Success {
		return fmt.Errorf("%s error", outcome.Kind)
	}
	return nil
}
