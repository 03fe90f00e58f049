package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/diyeddin/delivery-ui/internal/api"
	"github.com/diyeddin/delivery-ui/internal/auth"
	"github.com/diyeddin/delivery-ui/internal/cart"
	"github.com/diyeddin/delivery-ui/internal/config"
	"github.com/diyeddin/delivery-ui/internal/storage"
)

const usage = `Golden Rose storefront client

Usage: storefront <command> [flags]

Account:
  login -u <email> -p <password>    sign in
  signup -email -name -password     create an account
  logout                            sign out
  whoami                            show the current identity

Shopping (customer):
  explore [-q query] [-in-stock]    browse stores and search products
  store <id>                        one store's products
  cart add <product-id> [-n qty]    add to cart
  cart set <product-id> <qty>       change quantity (0 removes)
  cart rm <product-id>              remove from cart
  cart show                         cart grouped by store
  cart clear                        empty the cart
  checkout [-address <addr>]        place the order
  orders [watch]                    track orders
  profile -name <name>              update the account profile

Fulfillment (store owner):
  fulfillment [watch]               order board
  fulfillment confirm <id>          mark an order packed
  manage [show]                     store inventory
  manage add -name -price [-stock -desc]   create a product
  manage set <id> [-name -price -stock -desc]  edit a product
  manage rm <id>                    delete a product
  manage store [-name -desc]        store settings

Delivery (driver):
  jobs [watch]                      available and active jobs
  jobs accept <id>                  claim an order
  jobs advance                      move the active job forward

Administration:
  users list                        all users
  users set-role <id> <role>        change a user's role
`

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	sess   *auth.Session
	client *api.Client
	cart   *cart.Aggregator
	store  storage.Store
	out    io.Writer
}

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.LogMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "development" {
		return zap.NewDevelopment()
	}
	// The CLI's stdout is the view surface; logs go to stderr only.
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func run(cfg *config.Config, logger *zap.Logger, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		fmt.Print(usage)
		if len(args) == 0 {
			return errors.New("missing command")
		}
		return nil
	}

	store, err := storage.NewFileStore(cfg.StateDir)
	if err != nil {
		return err
	}

	sess := auth.NewSession(store, logger)
	sess.Load()

	a := &app{
		cfg:    cfg,
		logger: logger,
		sess:   sess,
		client: api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, sess.Token, logger),
		cart:   cart.New(store, logger),
		store:  store,
		out:    os.Stdout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DebugAddr != "" {
		go a.serveDebug(ctx)
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "signup":
		return a.cmdSignup(ctx, rest)
	case "logout":
		return a.cmdLogout()
	case "whoami":
		return a.cmdWhoami()
	case "explore":
		return a.cmdExplore(ctx, rest)
	case "store":
		return a.cmdStore(ctx, rest)
	case "cart":
		return a.cmdCart(ctx, rest)
	case "checkout":
		return a.cmdCheckout(ctx, rest)
	case "orders":
		return a.cmdOrders(ctx, rest)
	case "profile":
		return a.cmdProfile(ctx, rest)
	case "fulfillment":
		return a.cmdFulfillment(ctx, rest)
	case "manage":
		return a.cmdManage(ctx, rest)
	case "jobs":
		return a.cmdJobs(ctx, rest)
	case "users":
		return a.cmdUsers(ctx, rest)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// serveDebug exposes health and metrics for long-running watch sessions.
func (a *app) serveDebug(ctx context.Context) {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         a.cfg.DebugAddr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	a.logger.Info("debug listener started", zap.String("addr", a.cfg.DebugAddr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Warn("debug listener stopped", zap.Error(err))
	}
}
