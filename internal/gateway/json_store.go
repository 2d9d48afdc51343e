package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/shopspring/decimal"

	"name-reconciliation/internal/domain"
	"name-reconciliation/internal/report"
)

// JSONStore keeps reference datasets in a JSON document of the form
//
//	{"<origin>": {"<name>": {"cpf": "<id>", "valor": 1234.56}}}
//
// Origins and names keep their file order. A bare number is accepted in
// place of the record object.
type JSONStore struct {
	path string
}

// NewJSONStore creates a store backed by the file at path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

type jsonRecord struct {
	ID     string       `json:"cpf,omitempty"`
	Amount *json.Number `json:"valor"`
}

// Load reads all datasets. A missing file yields no datasets.
func (s *JSONStore) Load(ctx context.Context) ([]*domain.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read reference store %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var sets []*domain.Dataset
	err = walkObject(dec, func(origin string) error {
		ds := domain.NewDataset(origin)
		if err := walkObject(dec, func(name string) error {
			rec, err := decodeRecord(dec)
			if err != nil {
				return fmt.Errorf("%s/%s: %w", origin, name, err)
			}
			rec.Name = name
			ds.Put(rec)
			return nil
		}); err != nil {
			return err
		}
		sets = append(sets, ds)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to decode reference store %s: %w", s.path, err)
	}
	return sets, nil
}

// Save replaces the store with sets.
func (s *JSONStore) Save(ctx context.Context, sets []*domain.Dataset) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ds := range sets {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, ds.Origin)
		buf.WriteByte('{')
		for j, rec := range ds.Records() {
			if j > 0 {
				buf.WriteByte(',')
			}
			writeKey(&buf, rec.Name)
			jr := jsonRecord{ID: rec.SecondaryID}
			if rec.Amount.Valid {
				n := json.Number(rec.Amount.Decimal.String())
				jr.Amount = &n
			}
			b, err := json.Marshal(jr)
			if err != nil {
				return fmt.Errorf("encode %s: %w", rec.Name, err)
			}
			buf.Write(b)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "    "); err != nil {
		return fmt.Errorf("indent reference store: %w", err)
	}
	out.WriteByte('\n')
	return report.WriteFileAtomic(s.path, out.Bytes())
}

func writeKey(buf *bytes.Buffer, key string) {
	b, _ := json.Marshal(key)
	buf.Write(b)
	buf.WriteByte(':')
}

// walkObject consumes one JSON object from dec, calling fn for each key with
// the decoder positioned at the value.
func walkObject(dec *json.Decoder, fn func(key string) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := fn(key); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func decodeRecord(dec *json.Decoder) (domain.Record, error) {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return domain.Record{}, err
	}

	var jr jsonRecord
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '{':
		if err := json.Unmarshal(trimmed, &jr); err != nil {
			return domain.Record{}, err
		}
	case bytes.Equal(trimmed, []byte("null")):
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return domain.Record{}, err
		}
		jr.Amount = &n
	}

	rec := domain.Record{SecondaryID: jr.ID}
	if jr.Amount != nil {
		d, err := decimal.NewFromString(jr.Amount.String())
		if err != nil {
			return domain.Record{}, &domain.FormatError{Value: jr.Amount.String()}
		}
		rec.Amount = decimal.NewNullDecimal(d)
	}
	return rec, nil
}
