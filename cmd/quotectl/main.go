// quotectl searches, shows and edits quotations held by the quotation store.
//
//	quotectl search <term>
//	quotectl show <quotation_number>
//	quotectl edit <quotation_number> <item_code> tier.field=value...
//	quotectl watch <quotation_number>
//	quotectl pdf <quotation_number> [file]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"

	"quotation-backend/internal/client"
	"quotation-backend/internal/config"
	"quotation-backend/internal/models"
	"quotation-backend/internal/quotation"
	"quotation-backend/internal/timeutil"
)

type app struct {
	out     io.Writer
	client  *client.Client
	feedURL string
	shell   *quotation.Shell
}

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the optional YAML config file")
	baseURL := flag.String("url", "", "store URL (overrides client.base_url)")
	feedURL := flag.String("feed", "", "websocket feed URL (overrides client.feed_url)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.LoadFile(*configPath)
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if *feedURL != "" {
		cfg.Client.FeedURL = *feedURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdout, cfg)
	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("quotectl: %v", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: quotectl [flags] search|show|edit|watch|pdf args...")
	flag.PrintDefaults()
}

func newApp(out io.Writer, cfg *config.Config) *app {
	c := client.New(cfg.Client.BaseURL, &http.Client{Timeout: cfg.ClientTimeout()})
	view := quotation.NewView(c, quotation.NewCommitter(c))
	return &app{
		out:     out,
		client:  c,
		feedURL: cfg.Client.FeedURL,
		shell:   quotation.NewShell(c, view),
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "search":
		if len(args) != 1 {
			return errors.New("usage: search <term>")
		}
		return a.search(ctx, args[0])
	case "show":
		if len(args) != 1 {
			return errors.New("usage: show <quotation_number>")
		}
		return a.show(ctx, args[0])
	case "edit":
		if len(args) < 3 {
			return errors.New("usage: edit <quotation_number> <item_code> tier.field=value...")
		}
		return a.edit(ctx, args[0], args[1], args[2:])
	case "watch":
		if len(args) != 1 {
			return errors.New("usage: watch <quotation_number>")
		}
		return a.watch(ctx, args[0])
	case "pdf":
		if len(args) < 1 || len(args) > 2 {
			return errors.New("usage: pdf <quotation_number> [file]")
		}
		file := fmt.Sprintf("quotation_%s.pdf", args[0])
		if len(args) == 2 {
			file = args[1]
		}
		return a.pdf(ctx, args[0], file)
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func (a *app) search(ctx context.Context, term string) error {
	if err := a.shell.LoadSuggestions(ctx); err != nil {
		return err
	}
	matches := a.shell.Suggest(term)
	if len(matches) == 0 {
		fmt.Fprintln(a.out, "No matching quotations")
		return nil
	}
	for _, n := range matches {
		fmt.Fprintln(a.out, n)
	}
	return nil
}

func (a *app) show(ctx context.Context, number string) error {
	snap := a.shell.Open(ctx, number)
	renderSnapshot(a.out, snap)
	return unexpected(snap.Err)
}

func (a *app) edit(ctx context.Context, number, itemCode string, assignments []string) error {
	snap := a.shell.Open(ctx, number)
	if snap.State != quotation.StateLoaded {
		renderSnapshot(a.out, snap)
		return unexpected(snap.Err)
	}

	view := a.shell.View()
	ed, err := view.Open(itemCode)
	if err != nil {
		return fmt.Errorf("item %s: %w", itemCode, err)
	}

	for _, arg := range assignments {
		tier, field, value, err := parseAssignment(arg)
		if err != nil {
			return err
		}
		if err := ed.Set(tier, field, value); err != nil {
			fmt.Fprintf(a.out, "ignored %s: %v\n", arg, err)
		}
	}

	merged, err := view.CommitEditor(ctx)
	if err != nil {
		view.Close()
		return err
	}
	renderItem(a.out, merged)
	fmt.Fprintln(a.out, "\nSaved. Totals refresh on the next load.")
	return nil
}

func (a *app) watch(ctx context.Context, number string) error {
	view := a.shell.View()
	renderSnapshot(a.out, a.shell.Open(ctx, number))

	err := client.Watch(ctx, a.feedURL, number, func(e models.ItemUpdatedEvent) {
		fmt.Fprintf(a.out, "\n[%s] %s %s tier updated\n", timeutil.FormatIST(e.At, timeutil.TimeLayout), e.ItemCode, e.Tier)
		renderSnapshot(a.out, view.Refresh(ctx))
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *app) pdf(ctx context.Context, number, file string) error {
	data, err := a.client.DownloadPDF(ctx, number)
	if err != nil {
		return err
	}
	if err := os.WriteFile(file, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Wrote %s (%d bytes)\n", file, len(data))
	return nil
}

// unexpected hides not-found, which the empty state already reports
func unexpected(err error) error {
	if err == nil || errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}
