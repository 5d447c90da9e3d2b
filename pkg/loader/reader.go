package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dsnet/compress/bzip2"
)

type fileReader struct {
	f  *os.File
	bz *bzip2.Reader
}

func (r *fileReader) Read(p []byte) (int, error) {
	if r.bz != nil {
		return r.bz.Read(p)
	}
	return r.f.Read(p)
}

func (r *fileReader) Close() error {
	if r.bz != nil {
		r.bz.Close()
	}
	return r.f.Close()
}

// openFile opens path for reading, decompressing .bz2 files on the fly.
func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".bz2") {
		return &fileReader{f: f}, nil
	}

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileReader{f: f, bz: bz}, nil
}

type csvTable struct {
	r      *csv.Reader
	header map[string]int
	row    []string
	line   int
}

func newCSVTable(r io.Reader, required ...string) (*csvTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	h := make(map[string]int, len(header))
	for i, col := range header {
		col = strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))
		if _, ok := h[col]; !ok {
			h[col] = i
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return &csvTable{r: cr, header: h, line: 1}, nil
}

// next advances to the next row. it returns io.EOF after the last row.
func (t *csvTable) next() error {
	row, err := t.r.Read()
	if err != nil {
		return err
	}
	t.row = row
	t.line++
	return nil
}

func (t *csvTable) get(col string) string {
	i, ok := t.header[col]
	if !ok || i >= len(t.row) {
		return ""
	}
	return strings.TrimSpace(t.row[i])
}

// OpenFile opens a possibly bzip2 compressed input file.
func OpenFile(path string) (io.ReadCloser, error) {
	return openFile(path)
}

// ReadFile reads the whole, possibly bzip2 compressed, file.
func ReadFile(path string) ([]byte, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ForEachRow calls handle for every data row of a csv with a header line. row is keyed by column name.
func ForEachRow(r io.Reader, handle func(line int, row map[string]string) error) error {
	t, err := newCSVTable(r)
	if err != nil {
		return err
	}
	for {
		err := t.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read row: %w", err)
		}
		row := make(map[string]string, len(t.header))
		for col := range t.header {
			row[col] = t.get(col)
		}
		if err := handle(t.line, row); err != nil {
			return err
		}
	}
}
