// Package cmd implements the CLI application to manage a stock ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/marcwinter/stocklog"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&balanceCmd{}, "reports")
	c.Register(&tradesCmd{}, "reports")
	c.Register(&monthlyCmd{}, "reports")

	c.Register(&fundsCmd{}, "settings")
	c.Register(&priceCmd{}, "settings")

	c.Register(&exportCmd{}, "data")
	c.Register(&importCmd{}, "data")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFile = flag.String("store-file", defaultStoreFile(), "Path to the ledger store file (JSON)")

// defaultStoreFile resolves the store path from STOCKLOG_FILE, honoring a
// .env file in the working directory.
func defaultStoreFile() string {
	godotenv.Load()
	if path := os.Getenv("STOCKLOG_FILE"); path != "" {
		return path
	}
	return "stocklog.json"
}

// openBook opens the ledger engine on the app store file.
func openBook() (*stocklog.Book, error) {
	return stocklog.Open(stocklog.NewFileStore(*storeFile))
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
