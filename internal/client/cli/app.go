package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/cart"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/models"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/client/session"
	"github.com/vineethwilson15/FSAD-E-Commerce/internal/logging"
)

// Catalog is the part of the API the REPL browses.
type Catalog interface {
	ListProducts(ctx context.Context, page, limit int) (*models.ProductPage, error)
	GetProduct(ctx context.Context, id models.ID) (*models.Product, error)
}

const defaultPageSize = 12

type App struct {
	session  *session.Manager
	cart     *cart.Engine
	catalog  Catalog
	router   *Router
	in       *lineReader
	log      logging.Logger
	pageSize int
}

type Option func(*App)

func WithPageSize(n int) Option {
	return func(a *App) {
		if n > 0 {
			a.pageSize = n
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(a *App) { a.log = l.With("component", "cli") }
}

// NewApp builds the REPL. router must be the Navigator the session manager
// was created with, so expiry notices land on the same terminal.
func NewApp(sess *session.Manager, c *cart.Engine, catalog Catalog, router *Router, in io.Reader, opts ...Option) *App {
	a := &App{
		session:  sess,
		cart:     c,
		catalog:  catalog,
		router:   router,
		in:       newLineReader(in, router),
		log:      logging.Discard(),
		pageSize: defaultPageSize,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Run reads commands until exit, end of input or ctx cancellation.
func (a *App) Run(ctx context.Context) {
	a.router.Println("Welcome to the storefront (type 'help' for commands)")
	for {
		if ctx.Err() != nil {
			return
		}
		a.router.Printf("%s> ", a.prompt())

		line, err := a.in.ReadLine()
		if err != nil {
			a.router.Println()
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if !a.dispatch(ctx, fields[0], fields[1:]) {
			return
		}
	}
}

func (a *App) prompt() string {
	var tags []string
	if name := a.userName(); name != "" {
		tags = append(tags, name)
	}
	if badge := cartBadge(a.cart.ItemCount()); badge != "" {
		tags = append(tags, "cart: "+badge)
	}

	p := "storefront"
	if len(tags) > 0 {
		p += " (" + strings.Join(tags, " | ") + ")"
	}
	return p + " " + a.router.View()
}

// cartBadge is the unit count shown in the prompt, capped at 99+.
func cartBadge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 99:
		return "99+"
	default:
		return strconv.Itoa(n)
	}
}
