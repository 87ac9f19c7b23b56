// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the route table.

NewRouter wires every handler onto a *http.ServeMux using Go 1.22+ method
patterns and wraps each route in request logging:

	mux := router.NewRouter(db, cfg)

Admin routes address surveys by id and require X-Admin-Key; public routes
address them by share slug. See the handlers package for the full route
reference.
*/
package router
