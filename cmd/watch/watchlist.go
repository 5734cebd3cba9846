package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"

	"github.com/vignesh678/stock-glass-visualizer/internal/alert"
	"github.com/vignesh678/stock-glass-visualizer/internal/catalog"
	apperrors "github.com/vignesh678/stock-glass-visualizer/internal/errors"
	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/feed"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
	"github.com/vignesh678/stock-glass-visualizer/internal/watchlist"
)

var watchlistCommands = []subcommands.Command{
	&addCmd{},
	&removeCmd{},
	&targetCmd{},
	&listCmd{},
	&prefsCmd{},
	&runCmd{},
}

type addCmd struct {
	target string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a stock to the watchlist" }
func (*addCmd) Usage() string {
	return `add [-target <price>] <id|symbol>

  Adds a catalog stock to the watchlist at its current price.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.target, "target", "", "Alert when the price crosses this value.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	stock, err := resolveStock(f.Arg(0))
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	var target *decimal.Decimal
	if c.target != "" {
		if target, err = parsePrice(c.target); err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	_, err = a.watchlist.Add(ctx, watchlist.Entry{
		ID:          stock.ID,
		Symbol:      stock.Symbol,
		Name:        stock.Name,
		Price:       stock.Price,
		TargetPrice: target,
	})
	if errors.Is(err, apperrors.ErrAlreadyInWatchlist) {
		fmt.Printf("%s is already in your watchlist\n", stock.Symbol)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s added to watchlist\n", stock.Symbol)
	return subcommands.ExitSuccess
}

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a stock from the watchlist" }
func (*removeCmd) Usage() string {
	return `remove <id|symbol>
`
}
func (*removeCmd) SetFlags(*flag.FlagSet) {}

func (*removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	stock, err := resolveStock(f.Arg(0))
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	if err := a.watchlist.Remove(ctx, stock.ID); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s removed from watchlist\n", stock.Symbol)
	return subcommands.ExitSuccess
}

type targetCmd struct{}

func (*targetCmd) Name() string     { return "target" }
func (*targetCmd) Synopsis() string { return "set or clear the alert price of a watched stock" }
func (*targetCmd) Usage() string {
	return `target <id|symbol> <price|clear>
`
}
func (*targetCmd) SetFlags(*flag.FlagSet) {}

func (*targetCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	stock, err := resolveStock(f.Arg(0))
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	var target *decimal.Decimal
	if f.Arg(1) != "clear" {
		if target, err = parsePrice(f.Arg(1)); err != nil {
			fail("%v", err)
			return subcommands.ExitUsageError
		}
	}

	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	found, err := a.watchlist.SetTarget(ctx, stock.ID, target)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	switch {
	case !found:
		fmt.Printf("%s is not in your watchlist\n", stock.Symbol)
	case target == nil:
		fmt.Printf("Target price removed for %s\n", stock.Symbol)
	default:
		fmt.Printf("Target price set to %s for %s\n", catalog.FormatPrice(*target), stock.Symbol)
	}
	return subcommands.ExitSuccess
}

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show the watchlist" }
func (*listCmd) Usage() string {
	return `list
`
}
func (*listCmd) SetFlags(*flag.FlagSet) {}

func (*listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	entries := a.watchlist.Load(ctx)
	if len(entries) == 0 {
		fmt.Println("Your watchlist is empty")
		return subcommands.ExitSuccess
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSYMBOL\tNAME\tPRICE\tTARGET\tADDED")
	for _, e := range entries {
		target := "-"
		if e.TargetPrice != nil {
			target = catalog.FormatPrice(*e.TargetPrice)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Symbol, e.Name, catalog.FormatPrice(e.Price), target, e.AddedDate.Format(time.DateOnly))
	}
	_ = w.Flush()
	return subcommands.ExitSuccess
}

type prefsCmd struct {
	email   string
	address string
}

func (*prefsCmd) Name() string     { return "prefs" }
func (*prefsCmd) Synopsis() string { return "show or change notification preferences" }
func (*prefsCmd) Usage() string {
	return `prefs [-email on|off] [-address <email>]

  Without flags prints the current preferences.
`
}

func (c *prefsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "Enable (on) or disable (off) email alerts.")
	f.StringVar(&c.address, "address", "", "Address for email alerts.")
}

func (c *prefsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()

	p := a.watchlist.Preferences(ctx)
	changed := false
	switch strings.ToLower(c.email) {
	case "":
	case "on", "true", "yes":
		p.Email, changed = true, true
	case "off", "false", "no":
		p.Email, changed = false, true
	default:
		fail("-email must be on or off")
		return subcommands.ExitUsageError
	}
	if c.address != "" {
		p.EmailAddress, changed = c.address, true
	}
	if changed {
		if err := a.watchlist.SavePreferences(ctx, p); err != nil {
			fail("%v", err)
			return subcommands.ExitFailure
		}
	}

	state := "off"
	if p.Email {
		state = "on"
	}
	fmt.Printf("Email alerts: %s\nAddress: %s\n", state, p.EmailAddress)
	return subcommands.ExitSuccess
}

type runCmd struct {
	duration time.Duration
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "stream simulated prices and fire target alerts" }
func (*runCmd) Usage() string {
	return `run [-for <duration>]

  Subscribes to the price feed for every watched stock until interrupted.
  Alerts are logged, emailed when enabled and signed in, and published to
  Kafka when KAFKA_BROKERS is set.
`
}

func (c *runCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.duration, "for", 0, "Stop after this long (0 runs until interrupted).")
}

func (c *runCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	defer a.Close()
	log := logger.Named("watch")

	if c.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.duration)
		defer cancel()
	}

	notifiers := []alert.Notifier{alert.NewLogNotifier()}
	var email *alert.EmailNotifier
	if a.signedIn() {
		email = alert.NewEmailNotifier(a.api, a.watchlist, a.cfg.RequestTimeout)
		notifiers = append(notifiers, email)
	}
	if len(a.cfg.KafkaBrokers) > 0 {
		producer := events.NewProducer(a.cfg.KafkaBrokers, a.cfg.KafkaTopic)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warnf("failed to close kafka producer: %v", err)
			}
		}()
		notifiers = append(notifiers, alert.NewKafkaNotifier(producer, a.cfg.RequestTimeout))
	}

	f := feed.New(feed.Options{
		Interval: a.cfg.FeedInterval,
		MaxDelta: decimal.NewFromFloat(a.cfg.FeedMaxDelta),
	})
	monitor := alert.NewMonitor(a.watchlist, f, notifiers...)
	if err := monitor.Start(ctx); err != nil {
		fail("%v", err)
		return subcommands.ExitFailure
	}
	log.Infof("Streaming prices every %s, press Ctrl+C to stop", f.Interval())

	<-ctx.Done()
	monitor.Stop()
	if email != nil {
		email.Wait()
	}
	return subcommands.ExitSuccess
}

func parsePrice(s string) (*decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "₹"))
	if err != nil || !d.IsPositive() {
		return nil, fmt.Errorf("invalid price %q", s)
	}
	return &d, nil
}
