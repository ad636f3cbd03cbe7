package http

import "time"

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IDResponse carries the identifier of a newly created resource.
type IDResponse struct {
	ID string `json:"id"`
}

// OrderItem describes one line of an order in the create request.
// Monetary amounts are integer cents.
type OrderItem struct {
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPriceCents int64    `json:"unitPriceCents"`
	Options        []string `json:"options,omitempty"`
	Notes          string   `json:"notes,omitempty"`
}

// Charges describes the monetary breakdown of an order in integer cents.
type Charges struct {
	SubtotalCents    int64 `json:"subtotalCents"`
	TaxCents         int64 `json:"taxCents"`
	DeliveryFeeCents int64 `json:"deliveryFeeCents"`
	TipCents         int64 `json:"tipCents"`
}

// Payment describes the payment backing an order.
type Payment struct {
	Method string `json:"method"`
	Status string `json:"status"`
}

// NewOrder is the request body for creating an order.
type NewOrder struct {
	Number              string      `json:"number"`
	OrderType           string      `json:"orderType"`
	CustomerName        string      `json:"customerName"`
	Items               []OrderItem `json:"items"`
	Charges             Charges     `json:"charges"`
	Payment             Payment     `json:"payment"`
	SpecialInstructions string      `json:"specialInstructions,omitempty"`
}

// AcceptOrder is the optional request body for accepting an order.
type AcceptOrder struct {
	EstimatedReadyTime *time.Time `json:"estimatedReadyTime,omitempty"`
}

// Contact identifies one endpoint of a delivery run.
type Contact struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// NewDelivery is the request body for creating a delivery.
type NewDelivery struct {
	Number              string     `json:"number"`
	OrderID             string     `json:"orderId"`
	Customer            Contact    `json:"customer"`
	Restaurant          Contact    `json:"restaurant"`
	DistanceKm          float64    `json:"distanceKm"`
	EstimatedMinutes    int        `json:"estimatedMinutes"`
	ScheduledTime       *time.Time `json:"scheduledTime,omitempty"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
}

// AssignDriver is the request body for binding a driver to a delivery.
type AssignDriver struct {
	DriverID string `json:"driverId"`
}

// FailDelivery is the request body for abandoning a delivery.
type FailDelivery struct {
	Reason string `json:"reason"`
}

// Vehicle describes a driver's vehicle.
type Vehicle struct {
	Type  string `json:"type"`
	Plate string `json:"plate,omitempty"`
}

// NewDriver is the request body for registering a driver.
type NewDriver struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Rating  float64 `json:"rating"`
	Vehicle Vehicle `json:"vehicle"`
}

// DriverStatus is the request body for setting a driver's shift state.
type DriverStatus struct {
	Status string `json:"status"`
}

// Order is one order in the list read model.
type Order struct {
	ID           string    `json:"id"`
	Number       string    `json:"number"`
	OrderType    string    `json:"orderType"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customerName"`
	TotalCents   int64     `json:"totalCents"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Delivery is one delivery in the list read model.
type Delivery struct {
	ID              string    `json:"id"`
	Number          string    `json:"number"`
	OrderID         string    `json:"orderId"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customerName"`
	CustomerAddress string    `json:"customerAddress"`
	DriverID        *string   `json:"driverId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Driver is one driver in the list read model.
type Driver struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Status            string  `json:"status"`
	CurrentDeliveries int     `json:"currentDeliveries"`
	TotalDeliveries   int     `json:"totalDeliveries"`
	Rating            float64 `json:"rating"`
	Vehicle           Vehicle `json:"vehicle"`
}

// FleetCounts is the operational snapshot read model.
type FleetCounts struct {
	OrdersByStatus     map[string]int `json:"ordersByStatus"`
	DeliveriesByStatus map[string]int `json:"deliveriesByStatus"`
	AvailableDrivers   int            `json:"availableDrivers"`
}
