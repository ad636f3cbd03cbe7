// Package services contains domain services: operations that span more than
// one aggregate and therefore belong to neither.
//
// DeliveryDispatcher coordinates driver assignment, the one place where the
// Delivery and Driver aggregates change together. Handlers load the
// aggregates through repositories and hand them to the dispatcher; the
// dispatcher never touches persistence itself.
package services
