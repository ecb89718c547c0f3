package repos

import (
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"

	"stickerpress/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, name, price, image_url, category, description, created_at, COALESCE(updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products ORDER BY id`)
	return out, err
}

func (r *ProductRepo) ListByCategory(category string) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `SELECT `+productCols+` FROM products WHERE category = ? ORDER BY id`, category)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, err
}

// Search matches the query case-insensitively against name and description.
// The query is a literal substring: LIKE wildcards in it are escaped so
// "_" and "%" match themselves.
func (r *ProductRepo) Search(q string) ([]domain.Product, error) {
	like := "%" + escapeLike(q) + "%"
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'
	  ORDER BY id
	`, like, like)
	return out, err
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// Insert creates a product and returns the stored record with its new id.
func (r *ProductRepo) Insert(p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`
	  INSERT INTO products(name, price, image_url, category, description)
	  VALUES (?, ?, ?, ?, ?)
	`, p.Name, p.Price, p.ImageURL, p.Category, p.Description)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return r.Get(id)
}

// Update replaces the whole record by id and returns the authoritative
// stored row. Missing id yields sql.ErrNoRows.
func (r *ProductRepo) Update(p domain.Product) (domain.Product, error) {
	res, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, price = ?, image_url = ?, category = ?, description = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, p.Name, p.Price, p.ImageURL, p.Category, p.Description, p.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, sql.ErrNoRows
	}
	return r.Get(p.ID)
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
