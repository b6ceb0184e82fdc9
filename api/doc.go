// Package api is a typed client for the Grocy REST API.
//
// # Overview
//
// Grocy is a self-hosted household ERP: stock, chores, tasks, batteries,
// shopping lists and meal plans. This package maps its HTTP endpoints onto
// Go methods and decodes every response into a typed record at the
// boundary. Nothing above this package sees raw JSON.
//
// # Architecture
//
//   - transport.go: Transport interface and the net/http implementation
//   - client.go: Client, options and shared decode helpers
//   - stock.go, chores.go, shopping.go, objects.go, system.go: endpoints
//   - *_types.go: response records with their UnmarshalJSON decoders
//   - fields.go: field accessors that route scalars through package parse
//   - errors.go: Error and ParseError
//
// # Client Usage
//
//	client, err := api.New(api.Config{
//		URL:    "https://grocy.example",
//		Port:   443,
//		APIKey: os.Getenv("GROCY_API_KEY"),
//	}, api.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//
//	stock, err := client.Stock(ctx)
//	details, err := client.ProductDetails(ctx, stock[0].ProductID)
//
// Tests and alternative transports can use NewClient with any Transport.
//
// # URL Construction
//
// The API root is "{url}:{port}/api/", or "{url}:{port}/{path}/api/" when a
// sub-path is configured. The port is always appended, so URL must not
// carry one. Endpoint paths are resolved against that root.
//
// # Request Handling
//
// All requests:
//   - Take a context for cancellation
//   - Send Accept: application/json and a User-Agent
//   - Send the GROCY-API-KEY header, except when the key is "demo_mode"
//   - Encode bodies as JSON, or as application/octet-stream for uploads
//   - Send list filters as repeated query[] parameters, verbatim
//
// There are no retries and no caching. Callers decide both.
//
// # Error Handling
//
//   - *Error: status >= 400, with the server's error_message when present.
//     IsClientError and IsServerError split 4xx from 5xx.
//   - *ParseError: a record was missing a required field or carried an
//     unknown value for a required enum.
//   - Wrapped errors: "execute request: ...", "decode stock: ...".
//
// Transport errors reach the caller unchanged so errors.As works directly.
//
// # Response Records
//
// Records have exported fields. Optional numbers and timestamps are
// pointers and stay nil when Grocy sent null, "" or nothing at all; they are
// never defaulted to zero. Free text is a plain string where "" means
// absent. Optional enums (period_type, assignment_type, meal plan type)
// decode unknown values as nil; the stock log transaction_type is required
// and an unknown value is a ParseError.
//
// An empty response body decodes as a nil record with a nil error.
//
// # Thread Safety
//
// Client holds no mutable state and is safe for concurrent use when its
// Transport is. HTTPTransport is.
package api
