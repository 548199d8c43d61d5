// Package clientip resolves the network address of the caller behind proxies
// and load balancers and makes it available to handlers and log records.
//
// Forwarding headers are taken at face value; deploy behind a proxy that
// overwrites them.
package clientip
