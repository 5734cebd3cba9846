package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
	"github.com/vignesh678/stock-glass-visualizer/internal/client"
)

type portfolioCmd struct{}

func (*portfolioCmd) Name() string     { return "portfolio" }
func (*portfolioCmd) Synopsis() string { return "manage purchased lots on the backend" }
func (*portfolioCmd) Usage() string {
	return `portfolio <subcommand>

Commands:
  list    - List your lots.
  buy     - Record a purchased lot.
  update  - Change quantity, purchase price or target of a lot.
  sell    - Remove a lot.
  summary - Show invested amount, value and profit/loss.
`
}
func (*portfolioCmd) SetFlags(*flag.FlagSet) {}

func (*portfolioCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	commander := subcommands.NewCommander(f, "portfolio")
	commander.Register(&lotsCmd{}, "")
	commander.Register(&buyCmd{}, "")
	commander.Register(&updateLotCmd{}, "")
	commander.Register(&sellCmd{}, "")
	commander.Register(&summaryCmd{}, "")
	return commander.Execute(ctx, args...)
}

// withAPI opens the app and checks for a saved session.
func withAPI(ctx context.Context, fn func(*app) subcommands.ExitStatus) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	if !a.signedIn() {
		fail("not signed in; run signin first")
		return subcommands.ExitFailure
	}
	return fn(a)
}

type lotsCmd struct{}

func (*lotsCmd) Name() string     { return "list" }
func (*lotsCmd) Synopsis() string { return "list your lots" }
func (*lotsCmd) Usage() string {
	return `portfolio list
`
}
func (*lotsCmd) SetFlags(*flag.FlagSet) {}

func (*lotsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withAPI(ctx, func(a *app) subcommands.ExitStatus {
		lots, err := a.api.List(ctx)
		if err != nil {
			fail("%s", describe(err))
			return subcommands.ExitFailure
		}
		if len(lots) == 0 {
			fmt.Println("Your portfolio is empty")
			return subcommands.ExitSuccess
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSYMBOL\tQTY\tBOUGHT\tCURRENT\tTARGET\tP/L\tDATE")
		for _, l := range lots {
			target := "-"
			if l.TargetPrice != nil {
				target = catalog.FormatPrice(*l.TargetPrice)
			}
			pl := l.CurrentPrice.Sub(l.PurchasePrice).Mul(l.Quantity)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				l.ID, l.Symbol, l.Quantity.String(), catalog.FormatPrice(l.PurchasePrice),
				catalog.FormatPrice(l.CurrentPrice), target, catalog.FormatPrice(pl), l.PurchaseDate.Format(time.DateOnly))
		}
		_ = w.Flush()
		return subcommands.ExitSuccess
	})
}

type buyCmd struct {
	quantity string
	price    string
	target   string
	date     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchased lot" }
func (*buyCmd) Usage() string {
	return `portfolio buy -qty <n> [-price <p>] [-target <p>] [-date YYYY-MM-DD] <id|symbol>

  The purchase price defaults to the stock's current simulated price.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "qty", "", "Number of shares.")
	f.StringVar(&c.price, "price", "", "Purchase price per share.")
	f.StringVar(&c.target, "target", "", "Optional target price.")
	f.StringVar(&c.date, "date", "", "Purchase date (defaults to today).")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.quantity == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	stock, err := resolveStock(f.Arg(0))
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	lot := client.NewLot{
		StockID:       stock.ID,
		Symbol:        stock.Symbol,
		Name:          stock.Name,
		PurchasePrice: stock.Price,
		CurrentPrice:  stock.Price,
	}
	qty, err := parsePrice(c.quantity)
	if err != nil {
		fail("invalid quantity %q", c.quantity)
		return subcommands.ExitUsageError
	}
	lot.Quantity = *qty
	if c.price != "" {
		p, err := parsePrice(c.price)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
		lot.PurchasePrice = *p
	}
	if c.target != "" {
		if lot.TargetPrice, err = parsePrice(c.target); err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
	}
	if c.date != "" {
		d, err := time.Parse(time.DateOnly, c.date)
		if err != nil {
			fail("invalid date %q", c.date)
			return subcommands.ExitUsageError
		}
		lot.PurchaseDate = &d
	}

	return withAPI(ctx, func(a *app) subcommands.ExitStatus {
		created, err := a.api.Add(ctx, lot)
		if err != nil {
			fail("%s", describe(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Added %s x %s at %s (lot %s)\n",
			created.Symbol, created.Quantity.String(), catalog.FormatPrice(created.PurchasePrice), created.ID)
		return subcommands.ExitSuccess
	})
}

type updateLotCmd struct {
	quantity    string
	price       string
	target      string
	clearTarget bool
}

func (*updateLotCmd) Name() string     { return "update" }
func (*updateLotCmd) Synopsis() string { return "change a lot" }
func (*updateLotCmd) Usage() string {
	return `portfolio update [-qty <n>] [-price <p>] [-target <p> | -clear-target] <lot-id>

  Only the given fields change.
`
}

func (c *updateLotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.quantity, "qty", "", "New quantity.")
	f.StringVar(&c.price, "price", "", "New purchase price.")
	f.StringVar(&c.target, "target", "", "New target price.")
	f.BoolVar(&c.clearTarget, "clear-target", false, "Remove the target price.")
}

func (c *updateLotCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	var patch client.LotPatch
	for _, field := range []struct {
		raw string
		dst **decimal.Decimal
	}{
		{c.quantity, &patch.Quantity},
		{c.price, &patch.PurchasePrice},
		{c.target, &patch.TargetPrice},
	} {
		if field.raw == "" {
			continue
		}
		v, err := parsePrice(field.raw)
		if err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
		*field.dst = v
	}
	patch.ClearTarget = c.clearTarget

	return withAPI(ctx, func(a *app) subcommands.ExitStatus {
		lot, err := a.api.Update(ctx, f.Arg(0), patch)
		if err != nil {
			fail("%s", describe(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Updated %s: %s shares at %s\n", lot.Symbol, lot.Quantity.String(), catalog.FormatPrice(lot.PurchasePrice))
		return subcommands.ExitSuccess
	})
}

type sellCmd struct{}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "remove a lot" }
func (*sellCmd) Usage() string {
	return `portfolio sell <lot-id>
`
}
func (*sellCmd) SetFlags(*flag.FlagSet) {}

func (*sellCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	return withAPI(ctx, func(a *app) subcommands.ExitStatus {
		if err := a.api.Remove(ctx, f.Arg(0)); err != nil {
			fail("%s", describe(err))
			return subcommands.ExitFailure
		}
		fmt.Println("Stock removed from portfolio")
		return subcommands.ExitSuccess
	})
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show portfolio totals" }
func (*summaryCmd) Usage() string {
	return `portfolio summary
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return withAPI(ctx, func(a *app) subcommands.ExitStatus {
		s, err := a.api.Summary(ctx)
		if err != nil {
			fail("%s", describe(err))
			return subcommands.ExitFailure
		}
		fmt.Printf("Lots:          %d\n", s.Lots)
		fmt.Printf("Invested:      %s\n", catalog.FormatPrice(s.Invested))
		fmt.Printf("Current value: %s\n", catalog.FormatPrice(s.CurrentValue))
		fmt.Printf("Profit/loss:   %s (%s%%)\n", catalog.FormatPrice(s.ProfitLoss), s.ProfitLossPct.StringFixed(2))
		return subcommands.ExitSuccess
	})
}
