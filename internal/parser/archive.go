package parser

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// MaxArchiveSize is the hard ceiling for ZIP bundle uploads.
const MaxArchiveSize = 50 << 20 // 50 MB

// Fixed cells of every bundle member sheet: the trade point the member's
// order is destined for is described in a small header block above the
// product rows.
const (
	metaNameCell    = "B1"
	metaAddressCell = "B2"
	metaCodeCell    = "B3"
	memberSkipRows  = 4 // header block + column captions
)

// SheetMeta is the trade-point header block of one archive member.
type SheetMeta struct {
	Name    string
	Address string
	SapCode string
}

// ArchiveSheet is one spreadsheet member of a ZIP bundle: its trade-point
// metadata plus the product table below the header block.
type ArchiveSheet struct {
	FileName string
	Meta     SheetMeta
	Table    *Table
}

// ReadArchive unpacks a ZIP bundle of spreadsheet members. The size ceiling
// is enforced before any member is opened; a container that does not parse
// as ZIP is ErrNotAnArchive. Members without a recognized spreadsheet
// extension are ignored; each recognized member is parsed independently.
func ReadArchive(data []byte) ([]ArchiveSheet, error) {
	if int64(len(data)) > MaxArchiveSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnArchive, err)
	}

	var sheets []ArchiveSheet
	for _, member := range zr.File {
		if member.FileInfo().IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(member.Name))
		if ext != ".xlsx" && ext != ".xlsm" {
			continue
		}

		rc, err := member.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: member %s: %v", ErrUnreadableFile, member.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: member %s: %v", ErrUnreadableFile, member.Name, err)
		}

		sheet, err := readArchiveSheet(member.Name, raw)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *sheet)
	}
	return sheets, nil
}

func readArchiveSheet(name string, data []byte) (*ArchiveSheet, error) {
	meta, err := readSheetMeta(data)
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	table, err := ReadWorkbook(data, ReadOptions{SkipRows: memberSkipRows, NoHeader: true})
	if err != nil {
		return nil, fmt.Errorf("member %s: %w", name, err)
	}
	return &ArchiveSheet{FileName: name, Meta: *meta, Table: table}, nil
}

// readSheetMeta pulls the trade-point block from the fixed header cells.
func readSheetMeta(data []byte) (*SheetMeta, error) {
	f, err := newWorkbook(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetList()[0]
	name, _ := f.GetCellValue(sheet, metaNameCell)
	address, _ := f.GetCellValue(sheet, metaAddressCell)
	code, _ := f.GetCellValue(sheet, metaCodeCell)

	return &SheetMeta{
		Name:    strings.TrimSpace(name),
		Address: strings.TrimSpace(address),
		SapCode: strings.TrimSpace(code),
	}, nil
}
