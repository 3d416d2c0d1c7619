// Package order contains the Order aggregate: one checkout transaction spanning
// one or more shops. Each shop's portion is a ShopOrder entity with its own
// identity, forward-only status machine, delivery assignment references, and
// one-time delivery code. Line items are immutable price snapshots taken at
// cart time.
package order
