package parser

import "errors"

// Fatal parse errors. Any of these aborts the upload's transaction as a
// whole — no partial orders or line items survive.
var (
	// ErrUnreadableFile: the input cannot be interpreted as a spreadsheet
	// at all (corrupt file, wrong format, missing mandatory columns).
	ErrUnreadableFile = errors.New("file is not a readable spreadsheet")

	// ErrFileTooLarge: an archive input exceeds MaxArchiveSize.
	ErrFileTooLarge = errors.New("file exceeds the archive size limit")

	// ErrNotAnArchive: an archive-format adapter received a file that is
	// not a valid ZIP container.
	ErrNotAnArchive = errors.New("file is not a valid archive")

	// ErrUnknownFormat: no adapter is registered for the customer code.
	ErrUnknownFormat = errors.New("no parser registered for customer format")

	// ErrIntegrity: a product or trade point that the extraction phase
	// must have created is missing at lookup time. This is an adapter
	// pipeline-ordering defect, not a data problem in the uploaded file.
	ErrIntegrity = errors.New("parse pipeline integrity violation")
)
