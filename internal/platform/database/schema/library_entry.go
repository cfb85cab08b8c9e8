package schema

// LibraryEntryTable represents the 'user_books' table
type LibraryEntryTable struct {
	Table      string
	UserID     string
	BookID     string
	AccessedAt string
}

// LibraryEntry is the schema definition for user_books
var LibraryEntry = LibraryEntryTable{
	Table:      "user_books",
	UserID:     "userid",
	BookID:     "bookid",
	AccessedAt: "accessedat",
}

func (t LibraryEntryTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.AccessedAt}
}
