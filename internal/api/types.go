package api

// ProductRef is the abbreviated product entry embedded in list summaries.
type ProductRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ListSummary mirrors one entry of GET lists/.
type ListSummary struct {
	ID         int64        `json:"id"`
	Name       *string      `json:"name"`
	TotalValue float64      `json:"totalValue"`
	Products   []ProductRef `json:"products"`
	OwnerID    int64        `json:"userId"`
}

// ProductCount returns the server-reported number of products on the list.
func (l ListSummary) ProductCount() int {
	return len(l.Products)
}

// DisplayName returns the list name, or an empty string for unnamed lists.
func (l ListSummary) DisplayName() string {
	if l.Name == nil {
		return ""
	}
	return *l.Name
}

// Product mirrors the payload of products/ endpoints.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ListID   int64   `json:"listId"`
}

// ListDetail mirrors GET lists/list/{id}: list metadata plus its products
// in server order.
type ListDetail struct {
	Name       string    `json:"name"`
	TotalValue float64   `json:"totalValue"`
	OwnerID    int64     `json:"userId"`
	Products   []Product `json:"products"`
}

// ListFields carries the mutable fields of a list for updates.
type ListFields struct {
	Name       string  `json:"name"`
	TotalValue float64 `json:"totalValue"`
}

// ProductFields carries the mutable fields of a product for updates.
type ProductFields struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
