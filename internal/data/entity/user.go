package entity

type User struct {
	Base
	Email        string `db:"email"`
	PasswordHash string `db:"password"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	IsActive     bool   `db:"is_active"`
	IsAdmin      bool   `db:"is_admin"`
	// ValidationCode is present while the account awaits activation and
	// is cleared (NULL) the moment is_active flips to true.
	ValidationCode *string `db:"validation_code"`
}

// FullName is the display name embedded in token claims
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
