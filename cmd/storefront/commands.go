package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/diyeddin/delivery-ui/internal/api"
	"github.com/diyeddin/delivery-ui/internal/domain"
	"github.com/diyeddin/delivery-ui/internal/poller"
	"github.com/diyeddin/delivery-ui/internal/storage"
	"github.com/diyeddin/delivery-ui/internal/views"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("u", "", "email")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("login needs -u <email> and -p <password>")
	}

	token, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.sess.Login(token); err != nil {
		return err
	}

	id, _ := a.sess.Identity()
	fmt.Fprintf(a.out, "Signed in as %s (%s)\n", id.Subject, id.Role)
	return nil
}

func (a *app) cmdSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *name == "" || *password == "" {
		return errors.New("signup needs -email, -name and -password")
	}

	err := a.client.Signup(ctx, api.SignupRequest{
		Email:    *email,
		Name:     *name,
		Password: *password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. Sign in with: storefront login -u", *email, "-p ...")
	return nil
}

func (a *app) cmdLogout() error {
	a.sess.Logout()
	fmt.Fprintln(a.out, "Signed out.")
	return nil
}

func (a *app) cmdWhoami() error {
	id, err := a.sess.Identity()
	if err != nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s\t%s\t%s\n", id.Subject, id.Name, id.Role)
	return nil
}

func (a *app) cmdExplore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	query := fs.String("q", "", "product search query")
	inStock := fs.Bool("in-stock", false, "only products in stock")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var (
		stores   []domain.Store
		products []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = a.client.ListStores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = a.client.SearchProducts(gctx, *query, *inStock)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	views.Stores(a.out, stores)
	fmt.Fprintln(a.out)
	views.Products(a.out, products)
	return nil
}

func (a *app) cmdStore(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("store needs an id")
	}
	storeID, err := parseID(args[0])
	if err != nil {
		return err
	}

	var (
		store    *domain.Store
		products []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		store, err = a.client.GetStore(gctx, storeID)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = a.client.StoreProducts(gctx, storeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s — %s\n\n", store.Name, store.Description)
	views.Products(a.out, products)
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("cart needs a subcommand: add, set, rm, show, clear")
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.New("cart add needs a product id")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("cart add", flag.ContinueOnError)
		qty := fs.Int("n", 1, "quantity to add")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}

		line, err := a.lookupCartLine(ctx, productID, *qty)
		if err != nil {
			return err
		}
		a.cart.AddItem(*line)
		fmt.Fprintf(a.out, "Added %s.\n\n", line.Name)
		a.showCart()
		return nil

	case "set":
		if len(args) < 3 {
			return errors.New("cart set needs a product id and a quantity")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("bad quantity %q", args[2])
		}
		a.cart.UpdateQuantity(productID, qty)
		a.showCart()
		return nil

	case "rm":
		if len(args) < 2 {
			return errors.New("cart rm needs a product id")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		a.cart.RemoveItem(productID)
		a.showCart()
		return nil

	case "show":
		a.showCart()
		return nil

	case "clear":
		a.cart.Clear()
		fmt.Fprintln(a.out, "Cart cleared.")
		return nil

	default:
		return fmt.Errorf("unknown cart subcommand %q", args[0])
	}
}

// lookupCartLine resolves a product id into a full cart line, pulling the
// product and its store name from the catalog in one go.
func (a *app) lookupCartLine(ctx context.Context, productID int64, qty int) (*domain.CartLine, error) {
	var (
		stores   []domain.Store
		products []domain.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stores, err = a.client.ListStores(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		products, err = a.client.SearchProducts(gctx, "", false)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var product *domain.Product
	for i := range products {
		if products[i].ID == productID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, fmt.Errorf("product %d not found", productID)
	}

	storeName := ""
	for _, s := range stores {
		if s.ID == product.StoreID {
			storeName = s.Name
			break
		}
	}

	return &domain.CartLine{
		ProductID: product.ID,
		StoreID:   product.StoreID,
		StoreName: storeName,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  qty,
	}, nil
}

func (a *app) showCart() {
	views.Cart(a.out, a.cart.GroupByStore(), a.cart.Total(), a.cart.ItemCount())
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleCustomer); err != nil {
		return err
	}

	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	address := fs.String("address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	lines := a.cart.Lines()
	if len(lines) == 0 {
		// Mirrors the disabled checkout button: nothing to submit.
		return errors.New("cart is empty")
	}

	addr := *address
	if addr == "" {
		if saved, err := a.store.Get(storage.KeyDeliveryAddress); err == nil {
			addr = string(saved)
		}
	}
	if addr == "" {
		return errors.New("no delivery address; pass -address once to save a default")
	}

	req := api.SubmitOrderRequest{DeliveryAddress: addr}
	for _, l := range lines {
		req.Items = append(req.Items, api.OrderItemRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	order, err := a.client.SubmitOrder(ctx, req)
	if err != nil {
		// The cart stays intact for retry.
		return err
	}

	a.cart.Clear()
	if err := a.store.Set(storage.KeyDeliveryAddress, []byte(addr)); err != nil {
		a.logger.Warn("failed to save delivery address", zap.Error(err))
	}

	fmt.Fprintf(a.out, "Order #%d placed (%s). Track it with: storefront orders watch\n",
		order.ID, order.Status)
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleCustomer); err != nil {
		return err
	}

	render := func(orders []domain.Order) {
		views.Orders(a.out, orders)
	}
	if isWatch(args) {
		return a.watch(ctx, "my-orders", a.client.MyOrders, render)
	}

	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	render(orders)
	return nil
}

func (a *app) cmdFulfillment(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleStoreOwner); err != nil {
		return err
	}

	if len(args) > 0 && args[0] == "confirm" {
		if len(args) < 2 {
			return errors.New("fulfillment confirm needs an order id")
		}
		orderID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.client.MoveOrderStatus(ctx, orderID, domain.OrderStatusConfirmed); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order #%d marked packed.\n", orderID)
		return nil
	}

	render := func(orders []domain.Order) {
		views.Fulfillment(a.out, orders)
	}
	if isWatch(args) {
		return a.watch(ctx, "fulfillment", a.client.StoreOrders, render)
	}

	orders, err := a.client.StoreOrders(ctx)
	if err != nil {
		return err
	}
	render(orders)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleCustomer); err != nil {
		return err
	}

	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	name := fs.String("name", "", "display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" {
		return errors.New("profile needs -name <name>")
	}

	user, err := a.client.UpdateProfile(ctx, api.UpdateProfileRequest{Name: *name})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdManage(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleStoreOwner); err != nil {
		return err
	}
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		store, err := a.client.MyStore(ctx)
		if err != nil {
			return err
		}
		products, err := a.client.StoreProducts(ctx, store.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s — %s\n\n", store.Name, store.Description)
		views.Inventory(a.out, products)
		return nil

	case "add":
		fs := flag.NewFlagSet("manage add", flag.ContinueOnError)
		name := fs.String("name", "", "product name")
		desc := fs.String("desc", "", "description")
		price := fs.Float64("price", 0, "unit price")
		stock := fs.Int("stock", 0, "units in stock")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *name == "" || *price <= 0 {
			return errors.New("manage add needs -name and a positive -price")
		}

		product, err := a.client.CreateProduct(ctx, api.ProductPayload{
			Name:        *name,
			Description: *desc,
			Price:       *price,
			Stock:       *stock,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Product #%d (%s) added.\n", product.ID, product.Name)
		return nil

	case "set":
		if len(args) < 2 {
			return errors.New("manage set needs a product id")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("manage set", flag.ContinueOnError)
		name := fs.String("name", "", "product name")
		desc := fs.String("desc", "", "description")
		price := fs.Float64("price", 0, "unit price")
		stock := fs.Int("stock", -1, "units in stock")
		if err := fs.Parse(args[2:]); err != nil {
			return err
		}

		// The form sends the full payload, so prefill from the current
		// product and overlay only the flags that were given.
		current, err := a.ownProduct(ctx, productID)
		if err != nil {
			return err
		}
		payload := api.ProductPayload{
			Name:        current.Name,
			Description: current.Description,
			Price:       current.Price,
			Stock:       current.Stock,
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "name":
				payload.Name = *name
			case "desc":
				payload.Description = *desc
			case "price":
				payload.Price = *price
			case "stock":
				payload.Stock = *stock
			}
		})

		product, err := a.client.UpdateProduct(ctx, productID, payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Product #%d (%s) updated.\n", product.ID, product.Name)
		return nil

	case "rm":
		if len(args) < 2 {
			return errors.New("manage rm needs a product id")
		}
		productID, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := a.client.DeleteProduct(ctx, productID); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Product #%d removed.\n", productID)
		return nil

	case "store":
		fs := flag.NewFlagSet("manage store", flag.ContinueOnError)
		name := fs.String("name", "", "store name")
		desc := fs.String("desc", "", "store description")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}

		store, err := a.client.MyStore(ctx)
		if err != nil {
			return err
		}
		// Image and banner ride along unchanged; uploads live elsewhere.
		req := api.UpdateStoreRequest{
			Name:        store.Name,
			Description: store.Description,
			ImageURL:    store.ImageURL,
			BannerURL:   store.BannerURL,
		}
		if *name != "" {
			req.Name = *name
		}
		if *desc != "" {
			req.Description = *desc
		}

		updated, err := a.client.UpdateStore(ctx, store.ID, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Store settings saved for %s.\n", updated.Name)
		return nil

	default:
		return fmt.Errorf("unknown manage subcommand %q", args[0])
	}
}

// ownProduct finds one product of the caller's store.
func (a *app) ownProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	store, err := a.client.MyStore(ctx)
	if err != nil {
		return nil, err
	}
	products, err := a.client.StoreProducts(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, fmt.Errorf("product %d is not in your store", productID)
}

// jobsSnapshot is the driver view's poll unit: both lists refresh together.
type jobsSnapshot struct {
	available []domain.Order
	assigned  []domain.Order
}

func (a *app) cmdJobs(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleDriver); err != nil {
		return err
	}

	if len(args) > 0 {
		switch args[0] {
		case "accept":
			if len(args) < 2 {
				return errors.New("jobs accept needs an order id")
			}
			orderID, err := parseID(args[1])
			if err != nil {
				return err
			}
			if err := a.client.AcceptOrder(ctx, orderID); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Order #%d is yours.\n", orderID)
			return nil

		case "advance":
			return a.advanceActiveJob(ctx)
		}
	}

	fetch := func(ctx context.Context) (jobsSnapshot, error) {
		var snap jobsSnapshot
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			snap.available, err = a.client.AvailableOrders(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			snap.assigned, err = a.client.AssignedOrders(gctx)
			return err
		})
		return snap, g.Wait()
	}
	render := func(snap jobsSnapshot) {
		views.Jobs(a.out, snap.available, snap.assigned)
	}

	if isWatch(args) {
		p := poller.New("driver-jobs", a.cfg.PollInterval, fetch, repainting(a.out, render), a.logger)
		p.Run(ctx)
		return nil
	}

	snap, err := fetch(ctx)
	if err != nil {
		return err
	}
	render(snap)
	return nil
}

// advanceActiveJob requests the next forward transition for the driver's
// current job and lets the next poll observe the outcome.
func (a *app) advanceActiveJob(ctx context.Context) error {
	assigned, err := a.client.AssignedOrders(ctx)
	if err != nil {
		return err
	}

	for _, o := range assigned {
		next := domain.NextDriverStatus(o.Status)
		if next == "" {
			continue
		}
		if err := a.client.SetOrderStatus(ctx, o.ID, next); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Order #%d: requested %s.\n", o.ID, next)
		return nil
	}
	return errors.New("no active job to advance")
}

func (a *app) cmdUsers(ctx context.Context, args []string) error {
	if err := a.requireRole(domain.RoleAdmin); err != nil {
		return err
	}
	if len(args) == 0 {
		return errors.New("users needs a subcommand: list, set-role")
	}

	switch args[0] {
	case "list":
		users, err := a.client.ListUsers(ctx)
		if err != nil {
			return err
		}
		views.Users(a.out, users)
		return nil

	case "set-role":
		if len(args) < 3 {
			return errors.New("users set-role needs a user id and a role")
		}
		userID, err := parseID(args[1])
		if err != nil {
			return err
		}
		role := domain.Role(args[2])
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", args[2])
		}
		if err := a.client.SetUserRole(ctx, userID, role); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "User %d is now a %s.\n", userID, role)
		return nil

	default:
		return fmt.Errorf("unknown users subcommand %q", args[0])
	}
}

// watch runs a poll loop for a []Order view until interrupted.
func (a *app) watch(ctx context.Context, name string, fetch poller.FetchFunc[[]domain.Order], render func([]domain.Order)) error {
	p := poller.New(name, a.cfg.PollInterval, fetch, repainting(a.out, render), a.logger)
	p.Run(ctx)
	return nil
}

// repainting prefixes each snapshot with a timestamp header so consecutive
// polls read as frames.
func repainting[T any](w io.Writer, render func(T)) func(T) {
	return func(snapshot T) {
		fmt.Fprintf(w, "\n--- %s ---\n", time.Now().Format("15:04:05"))
		render(snapshot)
	}
}

func (a *app) requireRole(roles ...domain.Role) error {
	id, err := a.sess.Identity()
	if err != nil {
		return errors.New("sign in first: storefront login -u <email> -p <password>")
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return fmt.Errorf("this command is for %s accounts, you are signed in as %s",
		strings.Join(names, "/"), id.Role)
}

func isWatch(args []string) bool {
	for _, a := range args {
		if a == "watch" {
			return true
		}
	}
	return false
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return id, nil
}
