// Package exporter writes derived market summaries to report files.
//
// CSVWriter is the core CSV writing layer with support for headers,
// streaming, and UTF-8 BOM for Excel compatibility. SummaryExporter renders
// one summary report per geography scope on top of it, HistoryExporter
// streams the full observation history behind those summaries, and
// WorkbookExporter produces a multi-sheet Excel workbook with the same
// figures.
//
// Missing figures export as empty cells in CSV and blank cells in Excel,
// never as zeros.
package exporter
