// Command fooddash is a terminal client for the delivery backend: the same
// session, cart and order core the mobile apps use, driven from subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"fooddash-client/internal/api"
	"fooddash-client/internal/cart"
	"fooddash-client/internal/category"
	"fooddash-client/internal/config"
	"fooddash-client/internal/food"
	"fooddash-client/internal/logger"
	"fooddash-client/internal/order"
	"fooddash-client/internal/session"
	"fooddash-client/internal/stats"
	"fooddash-client/internal/tokenstore"
)

type app struct {
	sessions   *session.Manager
	foods      food.Service
	categories category.Service
	orders     *order.Workflow
	stats      *stats.Service
}

func main() {
	admin := flag.Bool("admin", false, "act as the admin app instead of the customer app")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	role := session.RoleCustomer
	if *admin {
		role = session.RoleAdmin
	}

	a := wire(cfg, role)
	ctx := context.Background()

	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

func wire(cfg *config.Config, role session.Role) *app {
	var mgr *session.Manager

	client := api.NewClient(cfg.APIBaseURL, cfg.APIVariant, api.TokenSourceFunc(func() string {
		if mgr == nil {
			return ""
		}
		return mgr.Token()
	}))

	var auth session.Authenticator
	if cfg.MockAuth {
		auth = session.NewMockAuthenticator()
	} else {
		auth = session.NewAPIAuthenticator(client, role)
	}

	mgr = session.NewManager(auth, newStore(cfg), role)

	foods := food.NewService(client, cfg.APIVariant)
	orders := order.NewWorkflow(client, cfg.APIVariant)

	return &app{
		sessions:   mgr,
		foods:      foods,
		categories: category.NewService(client),
		orders:     orders,
		stats:      stats.NewService(orders, foods),
	}
}

func newStore(cfg *config.Config) tokenstore.Store {
	switch cfg.TokenStore {
	case config.StoreMemory:
		return tokenstore.NewMemoryStore()
	case config.StoreRedis:
		return tokenstore.NewRedisStore(cfg.RedisAddr)
	default:
		return tokenstore.NewFileStore(cfg.TokenFile)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "register":
		return a.register(ctx, args)
	case "logout":
		return a.sessions.Logout(ctx)
	case "whoami":
		return a.whoami(ctx)
	case "foods":
		return a.listFoods(ctx)
	case "categories":
		return a.listCategories(ctx)
	case "orders":
		return a.listOrders(ctx, args)
	case "advance":
		return a.advance(ctx, args)
	case "place":
		return a.place(ctx, args)
	case "stats":
		return a.showStats(ctx)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)

	if err := a.sessions.Login(ctx, *email, *password); err != nil {
		return err
	}
	ident, _ := a.sessions.Identity()
	fmt.Printf("logged in as %s <%s>\n", ident.Name, ident.Email)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	confirm := fs.String("confirm", "", "password confirmation")
	fs.Parse(args)

	if err := a.sessions.Register(ctx, *name, *email, *password, *confirm); err != nil {
		return err
	}
	fmt.Println("registered and logged in")
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	state := a.sessions.Bootstrap(ctx)
	if state != session.StateAuthenticated {
		fmt.Println("not logged in")
		return nil
	}
	ident, _ := a.sessions.Identity()
	fmt.Printf("%s <%s> (id %s)\n", ident.Name, ident.Email, ident.ID)
	return nil
}

func (a *app) listFoods(ctx context.Context) error {
	a.sessions.Bootstrap(ctx)

	foods, err := a.foods.List(ctx)
	if err != nil {
		return err
	}
	for _, f := range foods {
		fmt.Printf("%-24s  %-16s  $%.2f  %s\n", f.ID, f.Category, f.Price, f.Name)
	}
	return nil
}

func (a *app) listCategories(ctx context.Context) error {
	categories, err := a.categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%-24s  %s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) listOrders(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", "", "filter by status (pending/confirmed/delivered or the envelope spellings)")
	search := fs.String("search", "", "free-text search over order id and customer")
	fs.Parse(args)

	a.sessions.Bootstrap(ctx)

	filter := order.Filter{Search: *search}
	if *status != "" {
		st, err := order.ParseStatus(*status)
		if err != nil {
			return err
		}
		filter.Status = &st
	}

	orders, err := a.orders.List(ctx, filter)
	if err != nil {
		// Show the last good listing if there is one.
		if stale := a.orders.Snapshot(filter); len(stale) > 0 {
			fmt.Println("warning: refresh failed, showing cached orders")
			printOrders(stale)
		}
		return err
	}
	printOrders(orders)
	return nil
}

func printOrders(orders []order.Order) {
	for _, o := range orders {
		fmt.Printf("%-24s  %-16s  $%8.2f  %s  %s\n",
			o.ID, o.Status, o.TotalAmount,
			o.CreatedAt.Format("2006-01-02 15:04"), o.Buyer.Name)
	}
}

func (a *app) advance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: fooddash advance <order-id>")
	}
	orderID := args[0]

	a.sessions.Bootstrap(ctx)

	o, err := a.orders.Get(ctx, orderID)
	if err != nil {
		return err
	}
	next, ok := order.NextStatus(o.Status)
	if !ok {
		return fmt.Errorf("order %s is already %s", orderID, o.Status)
	}

	if err := a.orders.Transition(ctx, orderID, next); err != nil {
		return err
	}
	fmt.Printf("order %s: %s -> %s\n", orderID, o.Status, next)
	return nil
}

// place builds a cart from "-items foodID:qty,foodID:qty" and submits it.
func (a *app) place(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("place", flag.ExitOnError)
	items := fs.String("items", "", "comma-separated foodID:quantity pairs")
	address := fs.String("address", "", "delivery address")
	phone := fs.String("phone", "", "contact phone")
	fs.Parse(args)

	a.sessions.Bootstrap(ctx)

	foods, err := a.foods.List(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]food.Food, len(foods))
	for _, f := range foods {
		byID[f.ID] = f
	}

	basket := cart.New()
	for _, pair := range strings.Split(*items, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		id, qtyStr, ok := strings.Cut(pair, ":")
		qty := 1
		if ok {
			qty, err = strconv.Atoi(qtyStr)
			if err != nil {
				return fmt.Errorf("bad quantity in %q", pair)
			}
		}
		f, found := byID[id]
		if !found {
			return fmt.Errorf("unknown food %q", id)
		}
		basket.AddItem(f)
		basket.UpdateQuantity(f.ID, qty)
	}

	params := order.PlaceParams{
		TotalAmount:     basket.TotalAmount(),
		DeliveryAddress: *address,
		Phone:           *phone,
	}
	for _, it := range basket.Items() {
		params.Items = append(params.Items, order.Item{
			FoodID:    it.Food.ID,
			Name:      it.Food.Name,
			UnitPrice: it.Food.Price,
			Quantity:  it.Quantity,
		})
	}

	if err := a.orders.Place(ctx, params); err != nil {
		return err
	}
	basket.Clear()
	fmt.Printf("order placed, total $%.2f\n", params.TotalAmount)
	return nil
}

func (a *app) showStats(ctx context.Context) error {
	a.sessions.Bootstrap(ctx)

	sum, err := a.stats.Summary(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total orders:      %d\n", sum.TotalOrders)
	fmt.Printf("processing orders: %d\n", sum.ProcessingOrders)
	fmt.Printf("total foods:       %d\n", sum.TotalFoods)
	fmt.Printf("total revenue:     $%.2f\n", sum.TotalRevenue)
	return nil
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: fooddash [-admin] <command> [flags]

commands:
  login -email <email> -password <pw>
  register -name <name> -email <email> -password <pw> -confirm <pw>
  logout
  whoami
  foods
  categories
  orders [-status <status>] [-search <query>]
  advance <order-id>
  place -items <foodID:qty,...> -address <addr> -phone <phone>
  stats
`)
}
