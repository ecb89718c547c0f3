package repos

import (
	"time"

	"github.com/jmoiron/sqlx"

	"stickerpress/internal/domain"
)

type CartRepo struct{ db *sqlx.DB }

func NewCartRepo(db *sqlx.DB) *CartRepo { return &CartRepo{db: db} }

func (r *CartRepo) EnsureCart(sessionID string) (string, error) {
	var cartID string
	if err := r.db.Get(&cartID, `SELECT id FROM carts WHERE session_id = ?`, sessionID); err == nil {
		return cartID, nil
	}
	_, err := r.db.Exec(`INSERT INTO carts(id,session_id,updated_at) VALUES(?,?,?)`,
		sessionID, sessionID, time.Now().Format(time.RFC3339))
	if err != nil {
		return "", err
	}
	return sessionID, nil
}

// Append adds one unit as its own row. Re-adding the same product stacks
// entries rather than bumping a quantity.
func (r *CartRepo) Append(cartID string, it domain.CartItem) error {
	_, err := r.db.Exec(`
		INSERT INTO cart_items(cart_id, product_id, name, price, image_url, category, description, created_at)
		VALUES(?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, cartID, it.ProductID, it.Name, it.Price, it.ImageURL, it.Category, it.Description)
	return err
}

// Items returns the staged units in insertion order.
func (r *CartRepo) Items(cartID string) ([]domain.CartItem, error) {
	var out []domain.CartItem
	err := r.db.Select(&out, `
	  SELECT id, product_id, name, price, image_url, category, description
	  FROM cart_items
	  WHERE cart_id = ?
	  ORDER BY id
	`, cartID)
	return out, err
}

// RemoveByProduct deletes every staged unit of the given product and
// reports how many rows went away.
func (r *CartRepo) RemoveByProduct(cartID string, productID int64) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// RemoveProducts clears the given product ids after a successful checkout.
func (r *CartRepo) RemoveProducts(cartID string, productIDs []int64) error {
	if len(productIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM cart_items WHERE cart_id = ? AND product_id IN (?)`, cartID, productIDs)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(query, args...)
	return err
}

func (r *CartRepo) Clear(cartID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
