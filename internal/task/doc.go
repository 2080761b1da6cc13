// Package task provides background execution of request-scoped work on a
// bounded worker pool. Handlers submit a function and receive a Deferred
// handle they can wait on, so every endpoint can offer an asynchronous
// variant that runs the same service call off the request goroutine.
package task
