package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"storefront/internal/api"
	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/config"
	"storefront/internal/localstore"
	"storefront/internal/model"
	"storefront/internal/order"
	"storefront/internal/permission"
	"storefront/internal/session"
)

const usage = `usage: storefront <command> [args]

  login <email> <password>       sign in
  register <name> <email> <password> <role>
  logout                         sign out
  products                       list products (suppliers see their own)
  cart                           show the cart
  cart add <product-id> [qty]    add a product to the cart
  cart update <item-id> <qty>    change an item's quantity
  cart remove <item-id>          remove an item
  cart clear                     empty the cart
  checkout                       submit the cart as an order
  orders                         list your orders
  order cancel <id>              cancel a pending order
  order status <id> <status>     move an order to a new status (suppliers)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	storage, err := localstore.Open(cfg.State.Dir, logger)
	if err != nil {
		return fmt.Errorf("failed to open state storage: %w", err)
	}

	sess := session.New(storage, logger)
	if err := sess.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	sess.OnTeardown(func() {
		fmt.Fprintln(os.Stderr, "Session expired, sign in again.")
	})

	client := api.New(cfg.API.BaseURL, time.Duration(cfg.API.TimeoutSeconds)*time.Second, sess, logger)
	perms := permission.NewChecker(sess)

	cartStore, err := cart.NewStore(storage, cart.Key(sess.User()), logger)
	if err != nil {
		return err
	}
	guard := cart.NewGuard(cartStore, logger)

	products := catalog.NewService(client, perms, logger)
	orders := order.NewService(client, sess, perms, logger)
	orchestrator := checkout.New(cartStore, client, sess, logger)

	ctx := context.Background()

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return errors.New("usage: login <email> <password>")
		}
		user, err := client.Login(ctx, api.LoginRequest{Email: args[1], Password: args[2]})
		if err != nil {
			return err
		}
		if err := cart.AdoptAnonymous(storage, user, logger); err != nil {
			logger.Warn().Err(err).Msg("failed to adopt pre-login cart")
		}
		fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Role)
		return nil

	case "register":
		if len(args) != 5 {
			return errors.New("usage: register <name> <email> <password> <role>")
		}
		req := api.RegisterRequest{
			Name:                 args[1],
			Email:                args[2],
			Password:             args[3],
			PasswordConfirmation: args[3],
			Role:                 args[4],
		}
		if err := client.Register(ctx, req); err != nil {
			return err
		}
		fmt.Println("Account created, sign in to continue")
		return nil

	case "logout":
		client.Logout(ctx)
		fmt.Println("Signed out")
		return nil

	case "products":
		list, err := products.Browse(ctx)
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Printf("%d\t%s\t%s\n", p.ID, p.Name, p.Price)
		}
		return nil

	case "cart":
		return runCart(ctx, args[1:], products, cartStore, guard)

	case "checkout":
		placed, err := orchestrator.Checkout(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Order %d placed (%s), total %s\n", placed.ID, order.Display(placed.Status).Label, placed.Price)
		return nil

	case "orders":
		return runOrders(ctx, perms, orders)

	case "order":
		return runOrder(ctx, args[1:], orders)

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCart(ctx context.Context, args []string, products *catalog.Service, store *cart.Store, guard *cart.Guard) error {
	if len(args) == 0 {
		for _, item := range store.Items() {
			fmt.Printf("%s\t%s\tx%d\t%s\n", item.ID, item.Product.Name, item.Quantity, item.Product.Price)
		}
		total, err := store.Total()
		if err != nil {
			return err
		}
		fmt.Printf("%d items, total %s\n", store.Count(), total.StringFixed(2))
		return nil
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			return errors.New("usage: cart add <product-id> [qty]")
		}
		productID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[1])
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
		}
		product, err := products.Get(ctx, productID)
		if err != nil {
			return err
		}
		item, err := store.AddToCart(*product, qty)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s x%d\n", item.Product.Name, item.Quantity)
		return nil

	case "update":
		if len(args) != 3 {
			return errors.New("usage: cart update <item-id> <qty>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		return guard.UpdateQuantity(args[1], qty)

	case "remove":
		if len(args) != 2 {
			return errors.New("usage: cart remove <item-id>")
		}
		return guard.Remove(args[1])

	case "clear":
		return store.Clear()

	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func runOrders(ctx context.Context, perms *permission.Checker, orders *order.Service) error {
	var (
		list []model.Order
		err  error
	)
	if perms.HasRole(model.RoleSupplier) {
		list, err = orders.ForSupplier(ctx)
	} else {
		list, err = orders.Mine(ctx)
	}
	if err != nil {
		return err
	}
	for _, o := range list {
		fmt.Printf("%d\t%s\t%s\t%s\n", o.ID, order.Display(o.Status).Label, o.Price, o.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func runOrder(ctx context.Context, args []string, orders *order.Service) error {
	if len(args) < 2 {
		return errors.New("usage: order cancel <id> | order status <id> <status>")
	}

	id, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid order id %q", args[1])
	}

	find := func(list []model.Order, err error) (*model.Order, error) {
		if err != nil {
			return nil, err
		}
		for i := range list {
			if list[i].ID == id {
				return &list[i], nil
			}
		}
		return nil, fmt.Errorf("order %d not found", id)
	}

	switch args[0] {
	case "cancel":
		ord, err := find(orders.Mine(ctx))
		if err != nil {
			return err
		}
		if err := orders.Cancel(ctx, *ord); err != nil {
			return err
		}
		fmt.Printf("Order %d cancelled\n", id)
		return nil

	case "status":
		if len(args) != 3 {
			return errors.New("usage: order status <id> <status>")
		}
		ord, err := find(orders.ForSupplier(ctx))
		if err != nil {
			return err
		}
		updated, err := orders.UpdateStatus(ctx, *ord, model.OrderStatus(args[2]))
		if err != nil {
			return err
		}
		fmt.Printf("Order %d is now %s\n", id, order.Display(updated.Status).Label)
		return nil

	default:
		return fmt.Errorf("unknown order command %q", args[0])
	}
}
