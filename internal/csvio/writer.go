package csvio

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"treesta-importer/internal/record"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// lineEnd terminates every written CSV row.
const lineEnd = "\r\n"

// WriteFileAtomic writes a file through write. The content goes to a
// temporary file next to path which is renamed into place only after
// write and close succeed, so a failed run never leaves a partial file.
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return eris.Wrap(err, "csvio: create output directory")
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return eris.Wrap(err, "csvio: create temp file")
	}

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)

	if err = write(bw); err != nil {
		return err
	}

	if err = bw.Flush(); err != nil {
		return eris.Wrap(err, "csvio: flush output")
	}

	if err = tmp.Chmod(filePerm); err != nil {
		return eris.Wrap(err, "csvio: chmod output")
	}

	if err = tmp.Close(); err != nil {
		return eris.Wrap(err, "csvio: close output")
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return eris.Wrapf(err, "csvio: move output into place at %s", path)
	}

	return nil
}

// WriteRows writes header and rows as a fully quoted, semicolon-delimited
// CSV file. Cells a row does not carry are written empty.
func WriteRows(path string, header []string, rows []record.Row) error {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return EncodeRows(w, header, rows)
	})
}

// EncodeRows is WriteRows over an io.Writer.
func EncodeRows(w io.Writer, header []string, rows []record.Row) error {
	if err := writeQuotedLine(w, header); err != nil {
		return err
	}

	cells := make([]string, len(header))

	for _, row := range rows {
		for i, name := range header {
			cells[i] = row[name]
		}

		if err := writeQuotedLine(w, cells); err != nil {
			return err
		}
	}

	return nil
}

// writeQuotedLine quotes every cell; encoding/csv only quotes on demand.
func writeQuotedLine(w io.Writer, cells []string) error {
	var b strings.Builder

	for i, c := range cells {
		if i > 0 {
			b.WriteByte(Delimiter)
		}

		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(c, `"`, `""`))
		b.WriteByte('"')
	}

	b.WriteString(lineEnd)

	_, err := io.WriteString(w, b.String())

	return err
}

// RemoveIfExists deletes path, ignoring a file that is already gone.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return eris.Wrapf(err, "csvio: remove %s", path)
	}

	return nil
}
