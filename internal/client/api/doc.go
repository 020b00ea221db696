// Package api is the client side of the blog backend's REST contract.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface) covering
//     auth (Register, Login, Me), blogs (list/get/create/update/delete and
//     the current user's list), comments (list/add/delete) and profiles.
//  2. A concrete net/http implementation (see HTTPClient) that builds URLs
//     from a base address, attaches the default bearer token to the
//     operations that need it, encodes blog submissions as multipart bodies
//     and normalizes every failure into one *Error.
//
// # Authorization
//
// The bearer token is a process-wide default set with SetAuthToken. When
// no token is set the Authorization header is omitted entirely. A 401 on a
// request that carried the header fires the OnUnauthorized hook, which the
// session manager uses to tear the session down.
//
// # Error Handling
//
// A failed call returns *Error. Its message is, in priority order, the
// server's JSON "message" field, the raw response body, or a fallback
// naming the operation ("Failed to fetch blogs"). Callers match the class
// of failure with errors.Is: ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrServer, ErrUnavailable.
//
// Successful generic calls return the response body verbatim as
// json.RawMessage; the client performs no schema validation. Nothing is
// retried.
package api
