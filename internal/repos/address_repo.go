package repos

import (
	"github.com/jmoiron/sqlx"

	"stickerpress/internal/domain"
)

type AddressRepo struct{ db *sqlx.DB }

func NewAddressRepo(db *sqlx.DB) *AddressRepo { return &AddressRepo{db: db} }

func (r *AddressRepo) ListByUser(userID int64) ([]domain.Address, error) {
	var out []domain.Address
	err := r.db.Select(&out, `
	  SELECT id, user_id, name, email, phone, address, city, state, zip, created_at
	  FROM addresses
	  WHERE user_id = ?
	  ORDER BY id
	`, userID)
	return out, err
}

// Exists checks the dedup key: same recipient name and street address.
func (r *AddressRepo) Exists(userID int64, name, street string) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM addresses WHERE user_id = ? AND name = ? AND address = ?`, userID, name, street)
	return n > 0, err
}

func (r *AddressRepo) Insert(userID int64, d domain.ShippingDetails) error {
	_, err := r.db.Exec(`
	  INSERT INTO addresses(user_id, name, email, phone, address, city, state, zip)
	  VALUES (?,?,?,?,?,?,?,?)
	`, userID, d.Name, d.Email, d.Phone, d.Address, d.City, d.State, d.Zip)
	return err
}

// Delete is scoped to the owning user so one account can't delete another's.
func (r *AddressRepo) Delete(userID, addressID int64) error {
	_, err := r.db.Exec(`DELETE FROM addresses WHERE id = ? AND user_id = ?`, addressID, userID)
	return err
}
