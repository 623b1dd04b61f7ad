package logging

// Standard field names, so that log lines from every stage can be filtered
// the same way.
const (
	FieldFile          = "file_path"
	FieldSection       = "section"
	FieldStartMarker   = "start_marker"
	FieldEndMarker     = "end_marker"
	FieldRecords       = "records"
	FieldLines         = "lines"
	FieldCount         = "count"
	FieldSubjects      = "subjects"
	FieldConfident     = "confident"
	FieldScore         = "score"
	FieldStage         = "stage"
	FieldReason        = "reason"
	FieldStatus        = "status"
	FieldError         = "error"
	FieldDuration      = "duration_ms"
	FieldFormat        = "format"
	FieldWorkers       = "workers"
	FieldExtractor     = "extractor"
	FieldInputFile     = "input_file"
	FieldOutputFile    = "output_file"
	FieldHistoryWindow = "history_window"
)
