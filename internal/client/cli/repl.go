package cli

import (
	"context"
	"strings"
)

var helpLines = []string{
	"products [page]      browse the catalog",
	"show <id>            product details",
	"add <id> [qty]       add to cart",
	"remove <id>          remove from cart",
	"qty <id> <n>         set quantity (0 removes)",
	"cart | close         open or close the cart",
	"clear | total        empty the cart, show totals",
	"login | register     sign in or create an account",
	"exit | quit          leave",
}

// private lists the commands that need a signed-in session.
var private = map[string]bool{
	"products": true, "p": true, "show": true,
	"add": true, "remove": true, "rm": true, "qty": true,
	"cart": true, "close": true, "clear": true, "total": true,
}

// dispatch runs one command. It returns false when the REPL should stop.
func (a *App) dispatch(ctx context.Context, cmd string, args []string) bool {
	cmd = strings.ToLower(cmd)
	if private[cmd] && !a.allowed() {
		return true
	}

	switch cmd {
	case "help":
		a.help()
	case "register":
		a.register(ctx)
	case "login":
		a.login(ctx)
	case "logout":
		a.logout(ctx)
	case "products", "p":
		a.products(ctx, args)
	case "show":
		a.show(ctx, args)
	case "add":
		a.add(ctx, args)
	case "remove", "rm":
		a.remove(ctx, args)
	case "qty":
		a.setQuantity(ctx, args)
	case "cart":
		a.openCart()
	case "close":
		a.closeCart()
	case "clear":
		a.clearCart(ctx)
	case "total":
		a.total()
	case "exit", "quit":
		a.router.Println("Bye!")
		return false
	default:
		a.router.Println("Unknown command:", cmd)
	}
	return true
}

func (a *App) help() {
	authed := a.session.IsAuthenticated()
	a.router.Println("Available commands:")
	for _, line := range helpLines {
		isAuthLine := strings.HasPrefix(line, "login")
		switch {
		case authed && isAuthLine:
			line = "logout               sign out"
		case !authed && !isAuthLine && !strings.HasPrefix(line, "exit"):
			continue
		}
		a.router.Println("  " + line)
	}
}

// allowed gates the catalog and cart. Anonymous users are sent to the login
// view.
func (a *App) allowed() bool {
	if a.session.Loading() {
		a.router.Println("Loading session, please wait.")
		return false
	}
	if a.session.IsAuthenticated() {
		return true
	}
	a.router.Go(a.router.LoginPath())
	a.router.Println("Please log in to continue (type 'login' or 'register').")
	return false
}
