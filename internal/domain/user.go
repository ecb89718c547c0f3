package domain

// User never carries the credential hash; the hash stays inside the auth
// path (repos.UserRepo.ByEmailWithHash) and is compared once at login.
type User struct {
	ID    int64  `db:"id"`
	Email string `db:"email"`
	Name  string `db:"name"`
}
