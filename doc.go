// Package auth implements bearer-token authentication for the membership
// portal API: JWT issuance and validation, login and registration endpoints,
// and the route middleware that guards protected resources.
//
// Login flow:
//   - UserProvider verifies credentials against the Bun-backed Users
//     repository. Unknown emails and wrong passwords surface the same
//     generic error. Pending accounts are rejected until activated and
//     blocked accounts are rejected outright, both before the hash check.
//   - Auther signs an HS256 token embedding the user's uuid and admin flag.
//     Tokens live for a fixed window and cannot be revoked early.
//
// Protected routes:
//   - The jwtware middleware extracts the bearer token from the
//     Authorization header (strict two-segment form), validates it, and
//     stores the claims in the router context. RouteAuthenticator composes
//     it with user resolution so handlers can read the account through
//     FromContext.
//
// Activity sinks:
//   - ActivitySink is a light-weight audit emitter used by Auther and the
//     register command to describe login and account creation events. Sinks
//     run best-effort (errors are logged) and AsyncActivitySink detaches
//     recording from the request path entirely.
package auth
