package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/marcwinter/stocklog"
	"github.com/shopspring/decimal"
)

// --- Funds Command ---

type fundsCmd struct {
	amount  string
	rate    string
	method  string
	minFee  string
	perUnit string
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "show or change the account settings" }
func (*fundsCmd) Usage() string {
	return `funds [-amount <initial_funds>] [-rate <exchange_rate>] [-method <method>] [-min-fee <fee>] [-per-unit <rate>]

  Without flags, shows the current settings. Each flag changes one setting:
  the initial funds, the display exchange rate, the default cost basis method
  (average, fifo), or the commission schedule.
`
}

func (p *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.amount, "amount", "", "Set the initial funds of the account.")
	f.StringVar(&p.rate, "rate", "", "Set the display exchange rate.")
	f.StringVar(&p.method, "method", "", "Set the default cost basis method (average, fifo).")
	f.StringVar(&p.minFee, "min-fee", "", "Set the minimum commission per trade.")
	f.StringVar(&p.perUnit, "per-unit", "", "Set the commission rate per share.")
}

func (p *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	changed := false

	if p.amount != "" {
		funds, err := stocklog.ParseMoney(p.amount)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := book.SetInitialFunds(funds); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		changed = true
	}

	if p.rate != "" {
		rate, err := decimal.NewFromString(p.rate)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing rate: %v\n", err)
			return subcommands.ExitUsageError
		}
		if err := book.SetExchangeRate(rate); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		changed = true
	}

	if p.method != "" {
		method, err := stocklog.ParseCostBasisMethod(p.method)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		if err := book.SetMethod(method); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		changed = true
	}

	if p.minFee != "" || p.perUnit != "" {
		schedule := book.Settings().Commission
		if p.minFee != "" {
			if schedule.MinimumFee, err = stocklog.ParseMoney(p.minFee); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing min-fee: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if p.perUnit != "" {
			if schedule.PerUnitRate, err = stocklog.ParseMoney(p.perUnit); err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing per-unit: %v\n", err)
				return subcommands.ExitUsageError
			}
		}
		if err := book.SetCommission(schedule); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		changed = true
	}

	settings := book.Settings()
	if changed {
		fmt.Println("Settings updated.")
	}
	fmt.Printf("Initial funds:   %s\n", settings.InitialFunds.Display(settings.Currency))
	fmt.Printf("Exchange rate:   %s\n", settings.ExchangeRate)
	fmt.Printf("Cost basis:      %s\n", settings.Method)
	fmt.Printf("Commission:      min %s, %s per share\n", settings.Commission.MinimumFee, settings.Commission.PerUnitRate)
	return subcommands.ExitSuccess
}

// --- Price Command ---

type priceCmd struct {
	clear bool
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "store the current price of a symbol" }
func (*priceCmd) Usage() string {
	return `price <symbol> <price>
price -clear <symbol>

  Stores a price used by "report" to value the position. Without a stored
  price a position is valued at its average cost.
`
}

func (p *priceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&p.clear, "clear", false, "Remove the stored price for the symbol.")
}

func (p *priceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if p.clear {
		if f.NArg() != 1 {
			f.Usage()
			return subcommands.ExitUsageError
		}
		if err := book.SetPriceOverride(f.Arg(0), stocklog.Money{}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Cleared price for %s\n", f.Arg(0))
		return subcommands.ExitSuccess
	}

	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	price, err := stocklog.ParseMoney(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := book.SetPriceOverride(f.Arg(0), price); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Stored price %s for %s\n", price, f.Arg(0))
	return subcommands.ExitSuccess
}
