package repos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"

	"stickerpress/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, user_id, ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_zip, payment_method, total, status, created_at`

// Create inserts the order header and its snapshot lines in one transaction.
func (r *OrderRepo) Create(o domain.Order, items []domain.OrderItem) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders
	    (id, user_id, ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_zip, payment_method, total, status, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, o.ID, o.UserID, o.ShipName, o.ShipEmail, o.ShipPhone, o.ShipAddress, o.ShipCity, o.ShipState, o.ShipZip, o.PaymentMethod, o.Total, o.Status); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, seq, product_id, name, price, image_url, category, description)
		  VALUES (?,?,?,?,?,?,?,?)
		`, o.ID, it.Seq, it.ProductID, it.Name, it.Price, it.ImageURL, it.Category, it.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (domain.Order, []domain.OrderItem, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	var items []domain.OrderItem
	if err := r.db.Select(&items, `
		SELECT order_id, seq, product_id, name, price, image_url, category, description
		FROM order_items
		WHERE order_id = ?
		ORDER BY seq
	`, orderID); err != nil {
		return domain.Order{}, nil, err
	}

	return o, items, nil
}

// ListByUser returns a user's orders newest-first. The id carries the
// creation timestamp, so it breaks ties within the same second.
func (r *OrderRepo) ListByUser(userID int64) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		WHERE user_id = ?
		ORDER BY datetime(created_at) DESC, id DESC
	`, userID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []domain.Order
	err := r.db.Select(&out, `
		SELECT `+orderCols+`
		FROM orders
		ORDER BY datetime(created_at) DESC, id DESC
		LIMIT ?
	`, limit)
	return out, err
}

// UpdateStatus sets the status and returns the stored row. Missing id
// yields sql.ErrNoRows.
func (r *OrderRepo) UpdateStatus(id, status string) (domain.Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return domain.Order{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Order{}, sql.ErrNoRows
	}
	var o domain.Order
	err = r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, err
}
