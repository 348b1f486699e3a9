package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marcwinter/stocklog"
	"github.com/marcwinter/stocklog/render"
)

// --- Holding Command ---

type holdingCmd struct {
	method string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the current holdings" }
func (*holdingCmd) Usage() string {
	return `holding [-method <method>]

  Displays the open positions with quantity, average cost, total cost, and
  realized profit per symbol.
`
}

func (p *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.method, "method", "", "The cost basis method (average, fifo). Defaults to the configured one.")
}

func (p *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	method := book.Settings().Method
	if p.method != "" {
		if method, err = stocklog.ParseCostBasisMethod(p.method); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
	}

	holdings, oversold := book.HoldingsBy(method)
	printMarkdown(render.Holdings(holdings, oversold, method))
	return subcommands.ExitSuccess
}

// --- Report Command ---

type reportCmd struct{}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "display the profit report of the current holdings" }
func (*reportCmd) Usage() string {
	return `report

  Values every open position at its stored price, or at its average cost when
  no price is stored, and displays per-symbol and total profit.
`
}

func (p *reportCmd) SetFlags(f *flag.FlagSet) {}

func (p *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	report, oversold := book.ProfitReport()
	printMarkdown(render.Profit(report, oversold))
	return subcommands.ExitSuccess
}

// --- Balance Command ---

type balanceCmd struct{}

func (*balanceCmd) Name() string     { return "balance" }
func (*balanceCmd) Synopsis() string { return "display the account cash balance" }
func (*balanceCmd) Usage() string {
	return `balance

  Replays the history against the initial funds: buys debit amount plus fee,
  sells credit amount minus fee.
`
}

func (p *balanceCmd) SetFlags(f *flag.FlagSet) {}

func (p *balanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	settings := book.Settings()
	printMarkdown(render.Balance(book.Balance(), settings.InitialFunds, settings.Currency))
	return subcommands.ExitSuccess
}

// --- Trades Command ---

type tradesCmd struct{}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "display closed trades and the win rate" }
func (*tradesCmd) Usage() string {
	return `trades

  Matches every sell against its buy lots in FIFO order and displays the
  realized profit per round trip, plus the win rate summary.
`
}

func (p *tradesCmd) SetFlags(f *flag.FlagSet) {}

func (p *tradesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	trades := book.ClosedTrades()
	printMarkdown(render.Trades(trades, stocklog.ComputeWinRate(trades)))
	return subcommands.ExitSuccess
}

// --- Monthly Command ---

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display per-month trading activity" }
func (*monthlyCmd) Usage() string {
	return `monthly

  Groups the history by calendar month and displays bought, sold, fees, and
  net cash flow per month.
`
}

func (p *monthlyCmd) SetFlags(f *flag.FlagSet) {}

func (p *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(render.Monthly(book.MonthlyActivity()))
	return subcommands.ExitSuccess
}
