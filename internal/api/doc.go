// Package api provides the HTTP client for the shopping-list server.
//
// # Overview
//
// The package is the sole I/O boundary of the application: both caches and
// the auth screens go through a single *Client configured with the server's
// base URL. Requests read the bearer token fresh from a TokenSource on every
// call, so a login or logout elsewhere in the process takes effect on the
// very next request; the token is never captured at construction time.
//
// # Endpoints
//
//	POST   /auth/login         credentials → token (no auth)
//	POST   /auth/register      credentials → token (no auth)
//	GET    /lists/             caller's lists
//	POST   /lists/             create list
//	PUT    /lists/{id}         update list
//	DELETE /lists/{id}         delete list
//	GET    /lists/list/{id}    list detail with products
//	POST   /products/          create product
//	PUT    /products/{id}      update product
//	DELETE /products/{id}      delete product
//
// # Error Handling
//
// Every failure surfaces as *Error. Responses with status >= 400 carry the
// HTTP status and whatever message the server put in its body; transport
// failures carry a message only (Status == 0). The client performs no
// retries — retry policy belongs to the cache layer.
package api
