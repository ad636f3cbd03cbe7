// Package order provides domain entities and business logic for order
// management in the fulfillment engine. It implements the Order aggregate root
// with lifecycle management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, lines, charges, and lifecycle
//   - Status: A state machine that enforces valid order status transitions
//   - Type: Pickup vs. delivery fulfillment
//   - Item: A single validated order line
//   - Charges: The monetary breakdown with a derived total
//   - Payment: The mirrored payment method and settlement status
//
// Key business rules:
//   - Order status follows a defined forward-only workflow:
//     Pending -> Confirmed -> Preparing -> Ready -> Completed
//   - Cancellation is only permitted while Pending (merchant rejection)
//   - No operation may skip a state or move backward
//   - Orders are never deleted; Completed and Cancelled are terminal
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
