package cli

import (
	"fmt"
	"io"
	"sync"
)

// View paths the REPL can be on.
const (
	ViewCatalog = "/"
	ViewCart    = "/cart"
)

// Router tracks the current view and serialises all terminal output, since
// session expiry notices arrive from the timer goroutine.
type Router struct {
	mu        sync.Mutex
	w         io.Writer
	view      string
	loginPath string
}

func NewRouter(w io.Writer, loginPath string) *Router {
	return &Router{w: w, view: ViewCatalog, loginPath: loginPath}
}

// RedirectTo implements session.Navigator.
func (r *Router) RedirectTo(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.view = path
	if path == r.loginPath {
		fmt.Fprintln(r.w, "\nYour session has expired. Please log in again.")
		return
	}
	fmt.Fprintf(r.w, "\nRedirected to %s\n", path)
}

// Go switches view without printing anything.
func (r *Router) Go(path string) {
	r.mu.Lock()
	r.view = path
	r.mu.Unlock()
}

func (r *Router) View() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.view
}

func (r *Router) LoginPath() string { return r.loginPath }

func (r *Router) Printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.w, format, args...)
}

func (r *Router) Println(args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.w, args...)
}

// Write lets views render through the router's lock.
func (r *Router) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Write(p)
}
