// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations. Every endpoint has a synchronous form and an /async
// form that runs the same service call on the background executor.
package api
