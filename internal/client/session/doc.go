// Package session owns the authenticated-session lifecycle of the storefront
// client.
//
// A Manager moves through Uninitialized → Hydrating → {Authenticated,
// Anonymous}. Hydrate restores a persisted token and profile at startup and
// keeps them only when the token's exp claim is still in the future. Login
// and Register establish a new session from the auth API; Logout drops it.
//
// Every token change re-arms a single expiry timer. When it fires the session
// is cleared and the Navigator is sent to the login path. A generation
// counter makes sure a timer armed for an older token can never end a newer
// session.
//
// Session data lives in the durable store under the "token" and "user" keys.
// Storage failures are logged and never roll back the in-memory state.
package session
