package domain

// SaleKind selects the terminal configuration of an order.
type SaleKind string

const (
	SaleCash    SaleKind = "Cash"
	SaleFinance SaleKind = "Finance"
)

// Valid reports whether k is one of the known sale kinds.
func (k SaleKind) Valid() bool {
	return k == SaleCash || k == SaleFinance
}

// RequestContext carries authenticated staff info when available.
type RequestContext struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
