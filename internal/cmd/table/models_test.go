package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stacks/pkg/books"
)

func TestBooksToTableData(t *testing.T) {
	issued := books.New("Dune", "Frank Herbert", "111")
	require.NoError(t, issued.Issue())

	data := BooksToTableData([]*books.Book{
		books.New("Emma", "Jane Austen", "222"),
		issued,
	})

	assert.Equal(t, []string{"Title", "Author", "ISBN", "Status"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, []string{"Emma", "Jane Austen", "222", "✓ Available"}, data.Rows[0])
	assert.Equal(t, []string{"Dune", "Frank Herbert", "111", "Issued"}, data.Rows[1])
	assert.Len(t, data.ColumnAlignment, len(data.Headers))
}

func TestBooksToTableDataEmpty(t *testing.T) {
	data := BooksToTableData(nil)
	assert.NotNil(t, data.Rows)
	assert.Empty(t, data.Rows)
}
