// Package ingest turns loosely structured tabular venue data into exchange
// and balance records. Three input shapes share one grid contract: CSV text,
// XLSX workbooks, and a three-tab Google Sheet. The engine is strict about
// structural landmarks (token cell, header row, sheet ID) and lenient about
// everything else: absent columns and sloppy cells normalize to zero instead
// of failing the import.
package ingest
