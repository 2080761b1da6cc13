// Package service contains the business flows that sit between the HTTP
// layer and the stores: uniqueness and referential-integrity checks, password
// hashing, credential verification, and transaction boundaries for mutations.
package service
