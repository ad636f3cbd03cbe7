// Package kernel provides core domain primitives for the fulfillment engine.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - UUID: An immutable identifier value object wrapping github.com/google/uuid,
//     used as the identity of every Order, Delivery, and Driver aggregate
//   - Money: A non-negative monetary amount in cents, used for order subtotals,
//     taxes, fees, tips, and totals
//
// Value objects in this package are immutable and validate themselves at
// construction, so a successfully constructed value can be passed around the
// domain without re-checking.
package kernel
