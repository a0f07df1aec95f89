package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/stacks/pkg/books"
	"github.com/agentstation/stacks/pkg/inventory"
	"github.com/agentstation/stacks/pkg/logging"
)

func newInventory(t *testing.T) *inventory.Inventory {
	t.Helper()
	inv, err := inventory.New(
		inventory.WithDir(t.TempDir()),
		inventory.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)
	return inv
}

func run(t *testing.T, catalog Catalog, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	input := strings.Join(script, "\n") + "\n"
	require.NoError(t, New(catalog, strings.NewReader(input), &out).Run(context.Background()))
	return out.String()
}

func TestShellAddAndList(t *testing.T) {
	inv := newInventory(t)

	out := run(t, inv,
		ChoiceAdd, "Dune", "Frank Herbert", "111",
		ChoiceList,
		ChoiceExit,
	)

	assert.Contains(t, out, "========== LIBRARY INVENTORY MANAGER ==========")
	assert.Contains(t, out, msgAdded)
	assert.Contains(t, out, msgListHeader)
	assert.Contains(t, out, "Dune | Frank Herbert | ISBN: 111 | Status: available")
	assert.True(t, strings.HasSuffix(out, msgExit+"\n"))

	data, err := os.ReadFile(inv.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Dune"`)
}

func TestShellEmptyList(t *testing.T) {
	out := run(t, newInventory(t), ChoiceList, ChoiceExit)
	assert.Contains(t, out, msgEmpty)
	assert.NotContains(t, out, msgListHeader)
}

func TestShellIssueAndReturn(t *testing.T) {
	inv := newInventory(t)
	require.NoError(t, inv.AddAndSave(books.New("Dune", "Frank Herbert", "111")))

	out := run(t, inv,
		ChoiceIssue, "111",
		ChoiceIssue, "111",
		ChoiceIssue, "999",
		ChoiceReturn, "111",
		ChoiceReturn, "111",
		ChoiceExit,
	)

	assert.Equal(t, 1, strings.Count(out, msgIssued))
	assert.Equal(t, 2, strings.Count(out, msgIssueFailed))
	assert.Equal(t, 1, strings.Count(out, msgReturned))
	assert.Equal(t, 1, strings.Count(out, msgReturnFailed))

	b, err := inv.FindByISBN("111")
	require.NoError(t, err)
	assert.True(t, b.IsAvailable())
}

func TestShellSearch(t *testing.T) {
	inv := newInventory(t)
	require.NoError(t, inv.AddAndSave(books.New("Dune", "Frank Herbert", "111")))
	require.NoError(t, inv.AddAndSave(books.New("Dune Messiah", "Frank Herbert", "222")))

	t.Run("isbn", func(t *testing.T) {
		out := run(t, inv, ChoiceSearch, "222", ChoiceExit)
		assert.Contains(t, out, msgFound)
		assert.Contains(t, out, "Dune Messiah | Frank Herbert | ISBN: 222")
		assert.NotContains(t, out, msgMatches)
	})

	t.Run("title", func(t *testing.T) {
		out := run(t, inv, ChoiceSearch, "dune", ChoiceExit)
		assert.Contains(t, out, msgMatches)
		assert.Contains(t, out, "ISBN: 111")
		assert.Contains(t, out, "ISBN: 222")
	})

	t.Run("miss", func(t *testing.T) {
		out := run(t, inv, ChoiceSearch, "emma", ChoiceExit)
		assert.Contains(t, out, msgNoMatch)
	})
}

func TestShellInvalidChoice(t *testing.T) {
	out := run(t, newInventory(t), "7", "", "abc", ChoiceExit)
	assert.Equal(t, 3, strings.Count(out, msgInvalid))
}

func TestShellEOFExits(t *testing.T) {
	var out bytes.Buffer
	err := New(newInventory(t), strings.NewReader(""), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), msgExit)
}

func TestShellEOFDuringPrompt(t *testing.T) {
	inv := newInventory(t)
	var out bytes.Buffer
	err := New(inv, strings.NewReader("1\nDune\n"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), msgExit)
	assert.Equal(t, 0, inv.Len())
}

func TestShellLastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	err := New(newInventory(t), strings.NewReader("4\n6"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), msgEmpty)
	assert.Equal(t, 1, strings.Count(out.String(), msgExit))
}

func TestShellCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(newInventory(t), strings.NewReader("4\n"), &out).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestShellCancelWhileWaitingForInput(t *testing.T) {
	reader, writer := io.Pipe()
	t.Cleanup(func() { _ = writer.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out bytes.Buffer
	sh := New(newInventory(t), reader, &out)
	result := make(chan error, 1)
	go func() {
		result <- sh.Run(ctx)
	}()

	// Answer the first prompt, then leave the add prompt waiting.
	_, err := writer.Write([]byte(ChoiceAdd + "\n"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-result:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Contains(t, out.String(), msgExit)
	assert.NotContains(t, out.String(), msgAdded)
}

func TestShellAddFailure(t *testing.T) {
	dir := t.TempDir()
	inv, err := inventory.New(
		inventory.WithDir(dir),
		inventory.WithLogger(logging.NewNopLogger()),
	)
	require.NoError(t, err)

	// A non-empty directory at the storage path makes the rename fail.
	path := filepath.Join(dir, "library_books.json")
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	out := run(t, inv, ChoiceAdd, "Dune", "Frank Herbert", "111", ChoiceExit)
	assert.Contains(t, out, msgAddFailed)
	assert.NotContains(t, out, msgAdded)
	assert.Equal(t, 0, inv.Len())
}

type failingCatalog struct {
	Catalog
	issued []string
}

func (f *failingCatalog) Issue(isbn string) error {
	f.issued = append(f.issued, isbn)
	return errors.New("boom")
}

func TestShellLogsRejections(t *testing.T) {
	logger := logging.NewTestLogger(t)
	catalog := &failingCatalog{}

	var out bytes.Buffer
	input := strings.NewReader("2\n  111\r\n6\n")
	require.NoError(t, New(catalog, input, &out, WithLogger(logger.Logger)).Run(context.Background()))

	assert.Equal(t, []string{"  111"}, catalog.issued)
	assert.Contains(t, out.String(), msgIssueFailed)
	assert.True(t, logger.Contains("Issue rejected"))
}
