package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the application's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldFile        = "file_path"
	FieldParser      = "parser"
	FieldFormat      = "format"
	FieldLine        = "line_number"
	FieldReason      = "reason"
	FieldError       = "error"
	FieldCount       = "count"
	FieldBank        = "bank"
	FieldAccount     = "account"
	FieldUploader    = "uploader"
	FieldProfile     = "profile"
	FieldScore       = "score"
	FieldBillID      = "bill_id"
	FieldDelimiter   = "delimiter"
	FieldInputFile   = "input_file"
	FieldOutputFile  = "output_file"
	FieldTransaction = "transaction_id"
)
