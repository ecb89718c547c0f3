package domain

const (
	CategorySticker = "sticker"
	CategoryPhoto   = "photo"
)

// Categories is the closed set of product categories.
var Categories = []string{CategorySticker, CategoryPhoto}

func ValidCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

type Product struct {
	ID          int64  `db:"id"`
	Name        string `db:"name"`
	Price       string `db:"price"` // decimal string, e.g. "12.99"
	ImageURL    string `db:"image_url"`
	Category    string `db:"category"`
	Description string `db:"description"`
	CreatedAt   string `db:"created_at"`
	UpdatedAt   string `db:"updated_at"`
}

// CartItem is one staged unit. The product fields are copied at add time
// so later catalog edits never change what the shopper staged.
type CartItem struct {
	ID          int64  `db:"id"`
	ProductID   int64  `db:"product_id"`
	Name        string `db:"name"`
	Price       string `db:"price"`
	ImageURL    string `db:"image_url"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

type ShippingDetails struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Zip     string
}

const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// ValidStatus reports whether s is in the closed order-status set.
// Transitions are free-form: any status may follow any other.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID            string `db:"id"`
	UserID        int64  `db:"user_id"`
	ShipName      string `db:"ship_name"`
	ShipEmail     string `db:"ship_email"`
	ShipPhone     string `db:"ship_phone"`
	ShipAddress   string `db:"ship_address"`
	ShipCity      string `db:"ship_city"`
	ShipState     string `db:"ship_state"`
	ShipZip       string `db:"ship_zip"`
	PaymentMethod string `db:"payment_method"`
	Total         string `db:"total"` // decimal string, fixed at creation
	Status        string `db:"status"`
	CreatedAt     string `db:"created_at"`
}

// OrderItem is a snapshot line. It intentionally carries no live reference
// to the products table: deleting or editing a product must not rewrite
// order history.
type OrderItem struct {
	OrderID     string `db:"order_id"`
	Seq         int    `db:"seq"`
	ProductID   int64  `db:"product_id"`
	Name        string `db:"name"`
	Price       string `db:"price"`
	ImageURL    string `db:"image_url"`
	Category    string `db:"category"`
	Description string `db:"description"`
}

type Address struct {
	ID        int64  `db:"id"`
	UserID    int64  `db:"user_id"`
	Name      string `db:"name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`
	Address   string `db:"address"`
	City      string `db:"city"`
	State     string `db:"state"`
	Zip       string `db:"zip"`
	CreatedAt string `db:"created_at"`
}
