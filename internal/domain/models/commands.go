package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is the cause of parse errors whose keyword is not a command at all,
// as opposed to a known command with the wrong number of fields.
var ErrUnknownCommand = errors.New("unknown command")

// CommandType enumerates supported chat commands.
type CommandType string

const (
	CommandSell    CommandType = "sell"
	CommandBuy     CommandType = "buy"
	CommandExpense CommandType = "expense"
	CommandStock   CommandType = "stock"
	CommandProfit  CommandType = "profit"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

const commandDelimiter = "|"

// Usage lines, also used to build the help reply.
const (
	UsageSell    = "sell | item | quantity | price"
	UsageBuy     = "buy | item | quantity | price"
	UsageExpense = "expense | title | amount"
	UsageStock   = "stock | item (item optional)"
	UsageProfit  = "profit"
	UsageHelp    = "help"
)

var helpAliases = map[string]struct{}{
	"help": {},
	"aide": {},
	"?":    {},
}

// Command represents a parsed instruction extracted from chat text. Numeric fields are
// kept as text; the accounting engine validates them.
type Command struct {
	Type     CommandType
	Raw      string
	Item     string
	Quantity string
	Price    string
	Title    string
	Amount   string
}

// ParseCommand derives a Command from a pipe-delimited message such as
// "sell | tshirt | 4 | 80". It never panics: every input yields a command or a parse error.
func ParseCommand(message string) (Command, error) {
	segments := strings.Split(message, commandDelimiter)
	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])
	}

	keyword := strings.TrimPrefix(strings.ToLower(segments[0]), "/")
	cmd := Command{Raw: message}

	switch {
	case keyword == string(CommandSell), keyword == string(CommandBuy):
		if len(segments) != 4 {
			return Command{Type: CommandUnknown, Raw: message}, formatError(keyword)
		}
		cmd.Type = CommandType(keyword)
		cmd.Item = segments[1]
		cmd.Quantity = segments[2]
		cmd.Price = segments[3]
	case keyword == string(CommandExpense):
		if len(segments) != 3 {
			return Command{Type: CommandUnknown, Raw: message}, formatError(keyword)
		}
		cmd.Type = CommandExpense
		cmd.Title = segments[1]
		cmd.Amount = segments[2]
	case keyword == string(CommandStock):
		if len(segments) > 2 {
			return Command{Type: CommandUnknown, Raw: message}, formatError(keyword)
		}
		cmd.Type = CommandStock
		if len(segments) == 2 {
			cmd.Item = segments[1]
		}
	case keyword == string(CommandProfit):
		cmd.Type = CommandProfit
	case isHelp(keyword):
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
		return cmd, WrapError(KindParse, unknownCommandMessage(segments[0]), ErrUnknownCommand)
	}

	return cmd, nil
}

// HelpText lists the syntax of every supported command.
func HelpText() string {
	lines := []string{
		"Available commands:",
		"- " + UsageSell,
		"- " + UsageBuy,
		"- " + UsageExpense,
		"- " + UsageStock,
		"- " + UsageProfit,
		"- " + UsageHelp,
	}
	return strings.Join(lines, "\n")
}

func isHelp(keyword string) bool {
	_, ok := helpAliases[keyword]
	return ok
}

func formatError(keyword string) *Error {
	usage := map[string]string{
		string(CommandSell):    UsageSell,
		string(CommandBuy):     UsageBuy,
		string(CommandExpense): UsageExpense,
		string(CommandStock):   UsageStock,
	}[keyword]
	return NewError(KindParse, fmt.Sprintf("Invalid format. Use: %s", usage))
}

func unknownCommandMessage(keyword string) string {
	if keyword == "" {
		return "Empty command. Send help to see available commands."
	}
	return fmt.Sprintf("Unknown command %q. Send help to see available commands.", keyword)
}
