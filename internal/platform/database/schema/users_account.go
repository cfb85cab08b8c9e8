package schema

// UserAccountTable represents the 'users' table
type UserAccountTable struct {
	Table     string
	ID        string
	Email     string
	Password  string
	CreatedAt string
}

// UserAccount is the schema definition for users
var UserAccount = UserAccountTable{
	Table:     "users",
	ID:        "id",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
}

// Columns returns all standard column names
func (t UserAccountTable) Columns() []string {
	return []string{t.ID, t.Email, t.Password, t.CreatedAt}
}
