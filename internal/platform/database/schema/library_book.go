package schema

// BookTable represents the 'books' table
type BookTable struct {
	Table     string
	ID        string
	Content   string
	Title     string
	Author    string
	Metadata  string
	Analysis  string
	CreatedAt string
	UpdatedAt string
}

// Book is the schema definition for books
var Book = BookTable{
	Table:     "books",
	ID:        "id",
	Content:   "content",
	Title:     "title",
	Author:    "author",
	Metadata:  "metadata",
	Analysis:  "analysis",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t BookTable) Columns() []string {
	return []string{
		t.ID, t.Content, t.Title, t.Author, t.Metadata, t.Analysis, t.CreatedAt, t.UpdatedAt,
	}
}
