package label

import "github.com/shopspring/decimal"

// Bill is the order snapshot being labeled. It is read-only input to the
// layout builder and is never mutated by this context.
type Bill struct {
	BillID              string              `json:"billId"`
	CustomerDetails     CustomerDetails     `json:"customerDetails"`
	BillDetails         BillDetails         `json:"billDetails"`
	ShippingDetails     *ShippingDetails    `json:"shippingDetails,omitempty"`
	ProductDetails      []ProductDetail     `json:"productDetails"`
	OrganisationDetails OrganisationDetails `json:"organisationDetails"`
}

// CustomerDetails is the ship-to party of a bill.
type CustomerDetails struct {
	Name     string `json:"name"`
	FlatNo   string `json:"flatNo,omitempty"`
	Street   string `json:"street"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

// BillDetails carries the bill's identifying numbers and timestamps.
type BillDetails struct {
	BillNo string `json:"billNo"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// ShippingDetails carries the optional shipping method and weight.
type ShippingDetails struct {
	MethodName string          `json:"methodName,omitempty"`
	Weight     decimal.Decimal `json:"weight,omitempty"`
}

// ProductDetail is a single order line.
type ProductDetail struct {
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
}

// OrganisationDetails is the selling organisation embedded in a bill.
// When present its fields take priority over the tenant's stored
// FromAddress, field by field.
type OrganisationDetails struct {
	Name     string `json:"name"`
	Street   string `json:"street"`
	District string `json:"district"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Phone    string `json:"phone"`
}

// FromAddress is the tenant's stored sender address, supplied once and
// reused across all renders in a session.
type FromAddress struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Phone   string `json:"phone"`
}

// MissingFields returns the names of required sender fields that are
// empty. A bulk run is refused while any are missing.
func (a FromAddress) MissingFields() []string {
	var missing []string
	if a.Name == "" {
		missing = append(missing, "name")
	}
	if a.Street == "" {
		missing = append(missing, "street")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.State == "" {
		missing = append(missing, "state")
	}
	if a.ZipCode == "" {
		missing = append(missing, "zipCode")
	}
	return missing
}

// TotalQuantity sums the quantities of all product lines.
func (b *Bill) TotalQuantity() int {
	total := 0
	for _, p := range b.ProductDetails {
		total += p.Quantity
	}
	return total
}
