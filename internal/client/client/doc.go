// Package client talks to the storefront REST API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Login, Register, ListProducts and GetProduct.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that joins
//     paths onto a configured base URL, applies a per-request timeout, tags
//     every request with an X-Request-ID and, when a token source is set,
//     sends the current session token as a Bearer credential.
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError carrying the server's
// human-readable message and any field-level validation errors. APIError
// unwraps to a sentinel so callers can match broad classes with errors.Is:
// ErrUnauthorized (401/403), ErrNotFound (404), ErrUnavailable (5xx and
// transport failures).
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call honors ctx cancellation.
package client
