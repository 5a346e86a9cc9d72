package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"nothingelse-storefront/config"
	"nothingelse-storefront/internal/domain"
	infracache "nothingelse-storefront/internal/infrastructure/cache"
	"nothingelse-storefront/internal/infrastructure/stripe"
	"nothingelse-storefront/internal/infrastructure/web3forms"
	"nothingelse-storefront/internal/localstore"
	"nothingelse-storefront/internal/notify"
	"nothingelse-storefront/internal/remote"
	"nothingelse-storefront/internal/repository"
	"nothingelse-storefront/internal/usecase"
	"nothingelse-storefront/pkg/logger"

	"github.com/goccy/go-json"
)

const clientVersion = "1.0.0"

type app struct {
	cfg      *config.Config
	nav      *remote.StaticNavigator
	auth     *usecase.AuthUsecase
	cart     *usecase.CartUsecase
	wishlist *usecase.WishlistUsecase
	catalog  *usecase.CatalogUsecase
	orders   *usecase.OrderUsecase
	admin    *usecase.AdminUsecase
	content  *usecase.ContentUsecase
}

func main() {
	ephemeral := flag.Bool("ephemeral", false, "use an in-memory state store (nothing persists)")
	flag.Parse()

	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Local persistence (the localStorage analog)
	var store localstore.Store
	if *ephemeral {
		store = localstore.NewMemoryStore()
	} else {
		fileStore, err := localstore.OpenFileStore(cfg.StateDir)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open local state store")
		}
		store = fileStore
	}

	// Remote client
	nav := remote.NewStaticNavigator("/")
	api, err := remote.New(cfg.APIBaseURL, store, nav, cfg.HTTPTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize API client")
	}
	api.SetRateLimit(cfg.APIRateLimit, cfg.APIRateBurst)

	// Cache: default expiration per product TTL, cleanup every 30m
	memCache := infracache.NewMemoryCache(cfg.CacheProductTTL, 30*time.Minute)

	notifier := notify.NewLogNotifier()

	// --- State services ---
	authUC := usecase.NewAuthUsecase(api, store)
	cartUC := usecase.NewCartUsecase(store, notifier, cfg.MaxCartQuantity)
	wishlistUC := usecase.NewWishlistUsecase(
		authUC,
		api,
		repository.NewRemoteWishlistStore(api),
		repository.NewLocalWishlistStore(store),
		notifier,
		cfg.SiteOrigin,
	)
	catalogUC := usecase.NewCatalogUsecase(api, memCache, cfg.CacheProductTTL, cfg.CacheCatalogTTL)
	orderUC := usecase.NewOrderUsecase(
		api,
		cartUC,
		stripe.NewClient(cfg.StripePublishableKey),
		notifier,
		cfg.FreeShippingThreshold,
		cfg.FlatShippingRate,
	)
	adminUC := usecase.NewAdminUsecase(api)
	contentUC := usecase.NewContentUsecase(
		api,
		web3forms.NewClient(cfg.Web3FormsKey, cfg.ContactToEmail, cfg.Web3FormsEndpoint),
		notifier,
	)

	logger.ClientStart("storefront", clientVersion, cfg.APIBaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Restore the session before anything runs, like the SPA does on boot.
	authUC.CheckSession(ctx)
	if err := wishlistUC.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("wishlist load failed")
	}

	a := &app{
		cfg:      cfg,
		nav:      nav,
		auth:     authUC,
		cart:     cartUC,
		wishlist: wishlistUC,
		catalog:  catalogUC,
		orders:   orderUC,
		admin:    adminUC,
		content:  contentUC,
	}

	if err := a.run(ctx, flag.Args()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
	logger.ClientStop("storefront")
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage()
	}

	switch args[0] {
	case "login":
		if len(args) != 3 {
			return fmt.Errorf("usage: login <email> <password>")
		}
		user, err := a.auth.Login(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(user)

	case "register":
		if len(args) != 4 {
			return fmt.Errorf("usage: register <name> <email> <password>")
		}
		user, err := a.auth.Register(ctx, domain.RegisterRequest{
			Name:     args[1],
			Email:    args[2],
			Password: args[3],
		})
		if err != nil {
			return err
		}
		return printJSON(user)

	case "admin-login":
		if len(args) != 3 {
			return fmt.Errorf("usage: admin-login <email> <password>")
		}
		a.nav.Redirect("/admin")
		user, err := a.auth.AdminLogin(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		return printJSON(user)

	case "logout":
		a.auth.Logout()
		return nil

	case "whoami":
		user := a.auth.CurrentUser()
		if user == nil {
			fmt.Println("not logged in")
			return nil
		}
		return printJSON(user)

	case "products":
		return a.runProducts(ctx, args[1:])

	case "cart":
		return a.runCart(ctx, args[1:])

	case "wishlist":
		return a.runWishlist(ctx, args[1:])

	case "orders":
		return a.runOrders(ctx, args[1:])

	case "admin":
		a.nav.Redirect("/admin")
		return a.runAdmin(ctx, args[1:])

	case "newsletter":
		if len(args) != 2 {
			return fmt.Errorf("usage: newsletter <email>")
		}
		return a.content.SubscribeNewsletter(ctx, args[1])

	case "contact":
		if len(args) < 5 {
			return fmt.Errorf("usage: contact <name> <email> <subject> <message...>")
		}
		return a.content.SubmitContact(ctx, domain.ContactMessage{
			Name:    args[1],
			Email:   args[2],
			Subject: args[3],
			Message: strings.Join(args[4:], " "),
		})

	default:
		return usage()
	}
}

func (a *app) runProducts(ctx context.Context, args []string) error {
	if len(args) == 0 {
		products, err := a.catalog.List(ctx, domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(products)
	}

	switch args[0] {
	case "get":
		if len(args) != 2 {
			return fmt.Errorf("usage: products get <id>")
		}
		product, err := a.catalog.GetByID(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(product)
	case "category":
		if len(args) != 2 {
			return fmt.Errorf("usage: products category <name>")
		}
		products, err := a.catalog.GetByCategory(ctx, args[1], domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(products)
	case "search":
		if len(args) != 2 {
			return fmt.Errorf("usage: products search <query>")
		}
		products, err := a.catalog.Search(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(products)
	case "featured":
		products, err := a.catalog.GetFeatured(ctx)
		if err != nil {
			return err
		}
		return printJSON(products)
	case "digital":
		products, err := a.catalog.GetDigital(ctx, domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(products)
	case "best-sellers":
		products, err := a.catalog.GetBestSellers(ctx)
		if err != nil {
			return err
		}
		return printJSON(products)
	case "reviews":
		if len(args) != 2 {
			return fmt.Errorf("usage: products reviews <id>")
		}
		reviews, err := a.catalog.GetReviews(ctx, args[1])
		if err != nil {
			return err
		}
		return printJSON(reviews)
	default:
		return fmt.Errorf("unknown products command %q", args[0])
	}
}

func (a *app) runCart(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		subtotal, shipping, total := a.orders.Quote()
		return printJSON(map[string]interface{}{
			"items":    a.cart.Items(),
			"count":    a.cart.Count(),
			"subtotal": subtotal,
			"shipping": shipping,
			"total":    total,
		})
	case "add":
		if len(args) < 2 || len(args) > 3 {
			return fmt.Errorf("usage: cart add <productID> [quantity]")
		}
		qty := 1
		if len(args) == 3 {
			n, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[2])
			}
			qty = n
		}
		product, err := a.catalog.GetByID(ctx, args[1])
		if err != nil {
			return err
		}
		return a.cart.AddItem(product, qty)
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: cart rm <productID>")
		}
		return a.cart.RemoveItem(args[1])
	case "set":
		if len(args) != 3 {
			return fmt.Errorf("usage: cart set <productID> <quantity>")
		}
		qty, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[2])
		}
		return a.cart.SetQuantity(args[1], qty)
	case "clear":
		return a.cart.Clear()
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
}

func (a *app) runWishlist(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"show"}
	}

	switch args[0] {
	case "show":
		return printJSON(map[string]interface{}{
			"items":   a.wishlist.Items(),
			"shareId": a.wishlist.ShareID(),
		})
	case "add":
		if len(args) != 2 {
			return fmt.Errorf("usage: wishlist add <productID>")
		}
		product, err := a.catalog.GetByID(ctx, args[1])
		if err != nil {
			return err
		}
		a.wishlist.AddItem(ctx, product)
		return nil
	case "rm":
		if len(args) != 2 {
			return fmt.Errorf("usage: wishlist rm <productID>")
		}
		a.wishlist.RemoveItem(ctx, args[1])
		return nil
	case "share":
		link, err := a.wishlist.GenerateShareLink(ctx)
		if err != nil {
			return err
		}
		fmt.Println(link)
		return nil
	case "shared":
		if len(args) != 2 {
			return fmt.Errorf("usage: wishlist shared <shareID>")
		}
		shared, err := a.wishlist.GetSharedWishlist(ctx, args[1])
		if err != nil {
			return err
		}
		if shared == nil {
			fmt.Println("wishlist not found")
			return nil
		}
		return printJSON(shared)
	case "clear":
		a.wishlist.Clear(ctx)
		return nil
	default:
		return fmt.Errorf("unknown wishlist command %q", args[0])
	}
}

func (a *app) runOrders(ctx context.Context, args []string) error {
	a.nav.Redirect("/member/orders")

	if len(args) == 0 {
		orders, err := a.orders.MyOrders(ctx)
		if err != nil {
			return err
		}
		return printJSON(orders)
	}
	order, err := a.orders.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(order)
}

func (a *app) runAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin <orders|promos|contacts|settings|analytics|social-accounts>")
	}

	switch args[0] {
	case "orders":
		orders, err := a.admin.ListOrders(ctx, domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(orders)
	case "promos":
		promos, err := a.admin.ListPromos(ctx)
		if err != nil {
			return err
		}
		return printJSON(promos)
	case "contacts":
		contacts, err := a.admin.ListContacts(ctx, domain.ListParams{})
		if err != nil {
			return err
		}
		return printJSON(contacts)
	case "settings":
		settings, err := a.admin.GetSettings(ctx)
		if err != nil {
			return err
		}
		return printJSON(settings)
	case "analytics":
		end := time.Now()
		start := end.AddDate(0, 0, -30)
		summary, err := a.admin.GetAnalytics(ctx, start, end)
		if err != nil {
			return err
		}
		return printJSON(summary)
	case "social-accounts":
		accounts, err := a.admin.GetSocialAccounts(ctx)
		if err != nil {
			return err
		}
		return printJSON(accounts)
	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(raw))
	return nil
}

func usage() error {
	return fmt.Errorf(`usage: storefront [--ephemeral] <command>

commands:
  login | register | admin-login | logout | whoami
  products [get|category|search|featured|digital|best-sellers|reviews]
  cart [show|add|rm|set|clear]
  wishlist [show|add|rm|share|shared|clear]
  orders [<id>]
  admin <orders|promos|contacts|settings|analytics|social-accounts>
  newsletter <email>
  contact <name> <email> <subject> <message...>`)
}
