package inventory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/stacks/pkg/books"
	"github.com/agentstation/stacks/pkg/constants"
	"github.com/agentstation/stacks/pkg/errors"
)

// Save writes the whole inventory to the storage file, replacing its previous
// contents. Failures are logged and swallowed; use Flush to observe them.
func (inv *Inventory) Save() {
	if err := inv.Flush(); err != nil {
		inv.logger.Error().
			Err(err).
			Str("path", inv.path).
			Msg("Error saving books")
	}
}

// Flush writes the whole inventory to the storage file and returns any error.
func (inv *Inventory) Flush() error {
	data, err := json.MarshalIndent(books.Records(inv.books), "", constants.JSONIndent)
	if err != nil {
		return errors.WrapResource("encode", "inventory", "", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(inv.path, data); err != nil {
		return err
	}

	inv.dirty = false
	return nil
}

// Load reads the storage file and appends its books in file order.
//
//   - A missing file is created with an empty array.
//   - Content that does not parse, or holds an unknown status, is logged and
//     discarded: memory is reset to empty and the file rewritten. If quarantine
//     is enabled the discarded bytes are first copied beside the storage file,
//     and the file is only rewritten once that copy exists.
//   - Any other read failure is logged and memory is left as it was.
func (inv *Inventory) Load() {
	data, err := os.ReadFile(inv.path)
	if os.IsNotExist(err) {
		inv.logger.Debug().Str("path", inv.path).Msg("Storage file missing, creating empty inventory")
		inv.Save()
		return
	}
	if err != nil {
		inv.logger.Error().
			Err(errors.WrapIO("read", inv.path, err)).
			Msg("Error loading books")
		return
	}

	loaded, err := decode(data, inv.path)
	if err != nil {
		inv.logger.Error().
			Err(err).
			Str("path", inv.path).
			Msg("Storage corrupted, resetting")
		inv.reset(data)
		return
	}

	inv.books = append(inv.books, loaded...)
	inv.logger.Debug().
		Int("count", len(loaded)).
		Str("path", inv.path).
		Msg("Loaded books")
}

// decode parses storage content. Every entry is validated before any is
// returned, so a bad entry never yields a partial inventory.
func decode(data []byte, path string) ([]*books.Book, error) {
	var records []books.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	loaded := make([]*books.Book, 0, len(records))
	for i, r := range records {
		b, err := books.FromRecord(r)
		if err != nil {
			return nil, &errors.ParseError{
				Format:  "json",
				File:    path,
				Message: fmt.Sprintf("entry %d: %v", i, err),
				Err:     err,
			}
		}
		loaded = append(loaded, b)
	}
	return loaded, nil
}

// reset discards the in-memory books and rewrites the storage file empty.
// If quarantine is enabled but the copy cannot be made, the corrupt file is
// left in place so its bytes are not lost until the next change is saved.
func (inv *Inventory) reset(corrupt []byte) {
	inv.books = nil
	if inv.options.quarantine {
		if err := inv.quarantine(corrupt); err != nil {
			inv.logger.Error().
				Err(err).
				Str("path", inv.path).
				Msg("Error quarantining corrupt storage, leaving file in place")
			return
		}
	}
	inv.Save()
}

// quarantine copies unparseable storage content to a timestamped sibling file.
// An existing file of the same name is never overwritten.
func (inv *Inventory) quarantine(corrupt []byte) error {
	target := inv.path + constants.QuarantineSuffix + inv.options.now().Format(constants.QuarantineTimeFormat)

	file, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", target, err)
	}
	if _, err := file.Write(corrupt); err != nil {
		_ = file.Close()
		return errors.WrapIO("write", target, err)
	}
	if err := file.Close(); err != nil {
		return errors.WrapIO("close", target, err)
	}

	inv.logger.Warn().
		Str("path", inv.path).
		Str("quarantine", target).
		Msg("Quarantined corrupt storage")
	return nil
}

// writeFileAtomic writes data to a temporary file in the target directory and
// renames it over path, so readers never observe a half-written file.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", tempPath, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("close", tempPath, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", tempPath, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}
