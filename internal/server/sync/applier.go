package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/flashsync/internal/models"
	"github.com/iudanet/flashsync/internal/server/storage"
	"github.com/iudanet/flashsync/pkg/api"
)

// Applier writes a client batch into an account store.
type Applier struct {
	validate *validator.Validate
}

// NewApplier creates an applier with row validation
func NewApplier() *Applier {
	return &Applier{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Apply stamps every operation with seq and upserts it through tx.
// The first rejected operation aborts the batch; the caller's transaction
// must then be rolled back so that no operation of the batch is kept.
// On success the operations are returned with server_seq set in their rows,
// every other field of the client's row is preserved.
func (a *Applier) Apply(ctx context.Context, tx storage.Tx, ops []api.Operation, seq int64) ([]api.Operation, error) {
	applied := make([]api.Operation, 0, len(ops))

	for i, op := range ops {
		record, fields, err := a.decode(op)
		if err != nil {
			return nil, &OperationError{Index: i, Table: op.Table, Err: err}
		}

		record.SetSeq(seq)

		if err := tx.Upsert(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to apply operation %d: %w", i, err)
		}

		row, err := stampRow(fields, seq)
		if err != nil {
			return nil, &OperationError{Index: i, Table: op.Table, Err: err}
		}

		applied = append(applied, api.Operation{Table: op.Table, Row: row})
	}

	return applied, nil
}

// decode превращает строку клиента в запись нужной таблицы и возвращает ее поля
// Идентификаторы обязаны быть JSON строками: число в deck_id - ошибка, а не приведение типа
func (a *Applier) decode(op api.Operation) (models.Record, map[string]json.RawMessage, error) {
	table := models.Table(op.Table)
	record, ok := models.NewRecord(table)
	if !ok {
		return nil, nil, ErrUnknownTable
	}

	if !isObject(op.Row) {
		return nil, nil, fmt.Errorf("%w: row must be a JSON object", ErrMalformedRow)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(op.Row, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	if err := checkFields(table, fields); err != nil {
		return nil, nil, err
	}

	if err := json.Unmarshal(op.Row, record); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	if err := a.validate.Struct(record); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}

	if review, ok := record.(*models.Review); ok && !isScalar(review.Response) {
		return nil, nil, fmt.Errorf("%w: response must be a JSON scalar", ErrMalformedRow)
	}

	return record, fields, nil
}

// checkFields requires every field of the table to be present and not null.
// encoding/json matches keys case-insensitively, so a key that differs from
// a wire name only by case is rejected instead of being stored under the
// wire name and echoed under the client's spelling.
func checkFields(table models.Table, fields map[string]json.RawMessage) error {
	known := append(table.Fields(), models.SeqField)

	for key := range fields {
		for _, name := range known {
			if key != name && strings.EqualFold(key, name) {
				return fmt.Errorf("%w: field %q must be spelled %q", ErrMalformedRow, clip(key), name)
			}
		}
	}

	for _, name := range table.Fields() {
		raw, ok := fields[name]
		if !ok {
			return fmt.Errorf("%w: missing field %q", ErrMalformedRow, name)
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%w: field %q is null", ErrMalformedRow, name)
		}
	}

	return nil
}

// stampRow sets server_seq in the client's row without dropping other fields
func stampRow(fields map[string]json.RawMessage, seq int64) (json.RawMessage, error) {
	fields[models.SeqField] = json.RawMessage(strconv.FormatInt(seq, 10))

	stamped, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}

	return stamped, nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isScalar(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	return trimmed[0] != '{' && trimmed[0] != '['
}
