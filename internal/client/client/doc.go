// Package client contains the transport to the FraudShield backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     Login/Signup, Predict, Analytics, Users/DeleteUser and History.
//  2. A concrete JSON-over-HTTP implementation (see HTTPClient) that injects
//     the bearer token passed by the caller, tags every request with an
//     X-Request-ID, and maps transport failures and HTTP statuses to sentinel
//     errors.
//
// The client holds no credential of its own: callers pass the token for every
// authenticated call, so the session manager stays the single owner of it.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnexpectedResponse, ErrUnauthorized. Server
// reported login/signup failures are returned as *AuthError; other non-2xx
// replies as *StatusError.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation; timeouts come from the underlying
// http.Client.
package client
