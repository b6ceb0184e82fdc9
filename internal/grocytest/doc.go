// Package grocytest runs a fake Grocy server for tests.
//
// The server is an httptest.Server routed with chi. It serves a small,
// self-consistent household loaded from the embedded fixtures directory:
// five products, a shopping list, two chores, two batteries, tasks, a meal
// plan with one recipe, users and the system endpoints. Generic objects
// live in an in-memory store, so a POST to objects/batteries is visible to
// the next GET.
//
// Every request is recorded with its path relative to the API root, which
// lets tests assert call counts, bodies and headers:
//
//	srv := grocytest.NewServer(t)
//	client, _ := api.New(api.Config{URL: srv.Host(), Port: srv.Port(), APIKey: "k"})
//	_, _ = client.Stock(ctx)
//	if srv.Count(http.MethodGet, "stock") != 1 { ... }
//
// Respond and Fail replace the answer for one method and path, for empty
// bodies and error statuses. The package does not import the client it
// exercises.
package grocytest
