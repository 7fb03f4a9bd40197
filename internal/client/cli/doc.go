// Package cli is the interactive terminal front-end of the storefront client.
//
// It wires the session manager, the cart engine and the catalog API into a
// read–eval–print loop. The Router doubles as the session's Navigator: when
// a session expires it prints a notice and moves the REPL to the login view.
//
// The REPL is started with App.Run(ctx), which blocks until the user exits
// or the input ends.
package cli
