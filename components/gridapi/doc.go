// Package gridapi exposes the grid pipeline as a small, stateless net/http
// handler that returns a filtered, sorted page of records as JSON.
//
// The handler responds to GET and HEAD requests. Filters, sort, and paging
// come from query parameters whose names can be overridden through options;
// every request is answered from scratch, so no server-side grid state is
// involved.
package gridapi
