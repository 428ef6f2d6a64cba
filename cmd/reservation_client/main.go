package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"reservation_service/internal/cart"
	"reservation_service/internal/client"
	"reservation_service/internal/client/notify"
	"reservation_service/internal/config"
	"reservation_service/internal/lib/logger/sl"
	"reservation_service/internal/storage/kv"
	"reservation_service/internal/storage/kvredis"
)

// consolePresenter renders notifications on the terminal, standing in for
// the site's notification banner.
type consolePresenter struct{}

func (consolePresenter) Render(n notify.Notification) {
	fmt.Printf("[%s] %s\n", n.Kind, n.Message)
}

func (consolePresenter) Clear() {}

const usage = `usage:
  reservation_client cart add <name> <price>
  reservation_client cart increase <name>
  reservation_client cart decrease <name>
  reservation_client cart remove <name>
  reservation_client cart clear
  reservation_client cart show
  reservation_client reserve -name ... -email ... -phone ... -date ... -time ... -guests ... [-requests ...]`

func main() {
	cfg := config.MustLoad("./config/local.yaml")
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()

	var code int
	switch os.Args[1] {
	case "cart":
		code = runCart(ctx, log, cfg, os.Args[2:])
	case "reserve":
		code = runReserve(ctx, log, cfg, os.Args[2:])
	default:
		fmt.Fprintln(os.Stderr, usage)
		code = 2
	}

	os.Exit(code)
}

func runCart(ctx context.Context, log *slog.Logger, cfg *config.Config, args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	store, err := setupCartKV(ctx, cfg)
	if err != nil {
		log.Error("failed to init cart storage", sl.Err(err))
		return 1
	}

	c := cart.New(ctx, store)

	switch args[0] {
	case "add":
		if len(args) != 3 {
			fmt.Fprintln(os.Stderr, usage)
			return 2
		}
		var price float64
		if _, err := fmt.Sscanf(args[2], "%f", &price); err != nil || price < 0 {
			fmt.Fprintf(os.Stderr, "invalid price: %s\n", args[2])
			return 2
		}
		err = c.Add(ctx, args[1], price)
		if err == nil {
			fmt.Printf("%s added to cart!\n", args[1])
		}
	case "increase":
		err = c.Increase(ctx, requireName(args))
	case "decrease":
		err = c.Decrease(ctx, requireName(args))
	case "remove":
		err = c.Remove(ctx, requireName(args))
	case "clear":
		err = c.Clear(ctx)
	case "show":
		printCart(c)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return 2
	}

	if err != nil {
		log.Error("cart operation failed", sl.Err(err))
		return 1
	}

	return 0
}

func requireName(args []string) string {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	return args[1]
}

func printCart(c *cart.Store) {
	lines := c.Lines()
	if len(lines) == 0 {
		fmt.Println("Your cart is empty")
		return
	}

	for _, line := range lines {
		fmt.Printf("%s  $%.2f x%d\n", line.Name, line.Price, line.Quantity)
	}
	fmt.Printf("Total (%d items): $%.2f\n", c.TotalCount(), c.TotalPrice())
}

func runReserve(ctx context.Context, log *slog.Logger, cfg *config.Config, args []string) int {
	fs := flag.NewFlagSet("reserve", flag.ExitOnError)
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	date := fs.String("date", "", "reservation date (YYYY-MM-DD)")
	timeOfDay := fs.String("time", "", "reservation time")
	guests := fs.String("guests", "", "number of guests")
	requests := fs.String("requests", "", "special requests")
	fs.Parse(args)

	notifier := notify.New(consolePresenter{})
	c := client.New(log, cfg.Client.ServerURL, cfg.Client.Timeout, notifier)

	form := client.Form{
		"name":             *name,
		"email":            *email,
		"phone":            *phone,
		"date":             *date,
		"time":             *timeOfDay,
		"guests":           *guests,
		"special-requests": *requests,
	}

	if err := c.SubmitReservation(ctx, form); err != nil {
		return 1
	}

	return 0
}

func setupCartKV(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	if cfg.Cart.Backend == "redis" {
		return kvredis.New(ctx, cfg.Cart.Redis.Host, cfg.Cart.Redis.Password, cfg.Cart.Redis.DB)
	}

	return kv.NewFileStore(cfg.Cart.Dir)
}
