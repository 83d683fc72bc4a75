package domain

// Product is a catalog item shown in product listings.
type Product struct {
	ID             string `json:"id"`
	ProductNumber  string `json:"productNumber"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	ManufacturerID string `json:"manufacturerId,omitempty"`
	Available      bool   `json:"available"`
	Stock          int    `json:"stock"`
	CoverURL       string `json:"coverUrl,omitempty"`
	Price          *Price `json:"price,omitempty"`
}

// Price is the calculated price of a product for the current sales channel.
type Price struct {
	UnitPrice  float64  `json:"unitPrice"`
	TotalPrice float64  `json:"totalPrice"`
	ListPrice  *float64 `json:"listPrice,omitempty"`
}

// Order is an entry of the customer's order history.
type Order struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	OrderDateTime string  `json:"orderDateTime"`
	AmountTotal   float64 `json:"amountTotal"`
	State         string  `json:"state,omitempty"`
}
