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

// entryFlags are the flags shared by buy and sell.
type entryFlags struct {
	date     string
	symbol   string
	name     string
	quantity int64
	price    string
	fee      string
	note     string
}

func (c *entryFlags) set(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", stocklog.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.symbol, "s", "", "Stock symbol")
	f.StringVar(&c.name, "n", "", "Stock name (optional)")
	f.Int64Var(&c.quantity, "q", 0, "Number of shares")
	f.StringVar(&c.price, "p", "", "Price per share")
	f.StringVar(&c.fee, "fee", "", "Broker fee for this trade; the commission schedule applies when omitted")
	f.StringVar(&c.note, "m", "", "An optional rationale or note for the transaction")
}

// build assembles a transaction from the flags; validation happens in the
// ledger.
func (c *entryFlags) build(side stocklog.Side) (stocklog.Transaction, error) {
	day, err := stocklog.ParseDate(c.date)
	if err != nil {
		return stocklog.Transaction{}, fmt.Errorf("parsing date: %w", err)
	}
	price, err := stocklog.ParseMoney(c.price)
	if err != nil {
		return stocklog.Transaction{}, fmt.Errorf("parsing price: %w", err)
	}
	tx := stocklog.NewTransaction(side, c.symbol, c.name, price, c.quantity, day)
	tx.Note = c.note
	if c.fee != "" {
		fee, err := stocklog.ParseMoney(c.fee)
		if err != nil {
			return stocklog.Transaction{}, fmt.Errorf("parsing fee: %w", err)
		}
		tx.Fee = fee
	}
	return tx, nil
}

// addTransaction records a transaction in the app store.
func addTransaction(tx stocklog.Transaction) subcommands.ExitStatus {
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := book.Add(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(render.Transaction(tx))
	return subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct{ entryFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "purchase shares to open or add to a position" }
func (*buyCmd) Usage() string {
	return `buy -s <symbol> -q <quantity> -p <price> [-d <date>] [-n <name>] [-fee <fee>] [-m <note>]

  Purchases shares of a stock. The total cost plus fee is debited from the
  cash balance.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx, err := c.build(stocklog.Buy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return addTransaction(tx)
}

// --- Sell Command ---

type sellCmd struct{ entryFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares to trim or close a position" }
func (*sellCmd) Usage() string {
	return `sell -s <symbol> -q <quantity> -p <price> [-d <date>] [-fee <fee>] [-m <note>]

  Sells shares of a stock. Selling more shares than held on the given date is
  rejected.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.set(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.quantity <= 0 || c.price == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	tx, err := c.build(stocklog.Sell)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	return addTransaction(tx)
}

// --- Remove Command ---

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a transaction by ID" }
func (*rmCmd) Usage() string {
	return `rm <id>...

  Removes transactions from the ledger. IDs may be abbreviated to any unique
  prefix, as printed by "tx".
`
}

func (c *rmCmd) SetFlags(f *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	book, err := openBook()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	for _, arg := range f.Args() {
		id, err := resolveID(book, arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if err := book.Delete(id); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Removed transaction %s\n", id)
	}
	return subcommands.ExitSuccess
}

// resolveID expands an ID prefix to the full transaction ID, failing on
// ambiguity.
func resolveID(book *stocklog.Book, prefix string) (string, error) {
	var matches []string
	for _, tx := range book.Ledger().All() {
		if tx.ID == prefix {
			return tx.ID, nil
		}
		if len(prefix) >= 4 && len(tx.ID) > len(prefix) && tx.ID[:len(prefix)] == prefix {
			matches = append(matches, tx.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no transaction matches %q", prefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%q is ambiguous, %d transactions match", prefix, len(matches))
	}
}
