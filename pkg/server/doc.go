// Package server exposes a store over a JSON HTTP API.
//
// # Routes
//
//	GET    /healthz
//	DELETE /                                  clear everything
//	GET    /affiliations?order=insertion|name|distance
//	POST   /affiliations
//	GET    /affiliations/closest?x=&y=[&k=]
//	GET    /affiliations/at?x=&y=
//	GET    /affiliations/{id}
//	DELETE /affiliations/{id}
//	PUT    /affiliations/{id}/coord
//	GET    /affiliations/{id}/publications[?after=year]
//	GET    /publications
//	POST   /publications
//	GET    /publications/common?a=&b=
//	GET    /publications/{id}
//	DELETE /publications/{id}
//	POST   /publications/{id}/parent
//	POST   /publications/{id}/affiliations
//	GET    /publications/{id}/chain
//	GET    /publications/{id}/descendants
//
// # Errors
//
// Failures are returned as {"error": {"code": ..., "message": ...}} with the
// status chosen by [errors.HTTPStatus]: 400 for malformed input, 404 for
// unknown ids, 409 for duplicate inserts and 422 for references to ids that
// do not exist.
//
// # Concurrency
//
// The store is not safe for concurrent use, and even its read operations may
// rebuild cached orderings. Every handler therefore holds the server's mutex
// for the duration of its store access.
package server
