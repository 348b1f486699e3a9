package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/marcwinter/stocklog"
	"github.com/marcwinter/stocklog/render"
)

type txCmd struct {
	symbol string
	side   string
	start  string
	end    string
	head   int
	tail   int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions in the ledger" }
func (*txCmd) Usage() string {
	return `tx [-sym <symbol>] [-side buy|sell] [-s <start_date>] [-d <end_date>] [-head <n>] [-tail <n>]

  Lists transactions from the ledger, with options for filtering and limiting
  the output.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.symbol, "sym", "", "Show only transactions of this symbol.")
	f.StringVar(&p.side, "side", "", "Show only buys or sells.")
	f.StringVar(&p.start, "s", "", "The start date for a custom range.")
	f.StringVar(&p.end, "d", "", "The end date for the range.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	filters := []func(stocklog.Transaction) bool{stocklog.AcceptAll}
	if p.symbol != "" {
		filters = append(filters, stocklog.BySymbol(strings.ToUpper(strings.TrimSpace(p.symbol))))
	}
	if p.side != "" {
		side, err := stocklog.ParseSide(p.side)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, stocklog.BySide(side))
	}
	if p.start != "" || p.end != "" {
		var from, to stocklog.Date
		if p.start != "" {
			if from, err = stocklog.ParseDate(p.start); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if p.end != "" {
			if to, err = stocklog.ParseDate(p.end); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		filters = append(filters, stocklog.ByRange(from, to))
	}

	var transactions []stocklog.Transaction
	for tx := range book.Ledger().Transactions(filters...) {
		transactions = append(transactions, tx)
	}

	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(render.Transactions(transactions))
	return subcommands.ExitSuccess
}
