package parser

import (
	"bytes"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the first sheet of an xlsx workbook into a Table.
// Any failure to open or navigate the workbook is an ErrUnreadableFile:
// the upload is unusable as a whole and the transaction must roll back.
// A table with zero data rows is NOT an error — it propagates and naturally
// yields zero trade points and zero orders.
func ReadWorkbook(data []byte, opts ReadOptions) (*Table, error) {
	f, err := newWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.GetRows(f.GetSheetList()[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	t, err := newTable(raw, opts)
	if err != nil {
		return nil, err
	}
	if t.Empty() {
		log.Warn().Msg("parser: no data rows loaded from file")
	}
	return t, nil
}

// newWorkbook opens an xlsx workbook and guarantees at least one sheet.
func newWorkbook(data []byte) (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	if len(f.GetSheetList()) == 0 {
		f.Close()
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadableFile)
	}
	return f, nil
}
