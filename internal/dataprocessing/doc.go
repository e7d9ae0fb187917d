// Package dataprocessing turns the raw vendor rate sheet into the normalized
// route table every other package works from.
//
// # Architecture
//
// The package has two components:
//
// 1. Normalizer: pure string functions deriving Destination, Country and the
// supplier matching key from the raw cells
// 2. Loader: reads the Excel workbook, resolves the column layout and applies
// the normalizer to every row
//
// # Data Flow
//
//	Excel File → Loader → []domain.RouteRecord → filter / analytics
//
// # Error Handling
//
// The normalizer functions are total: missing text degrades to "Unknown" and
// nothing returns an error. The loader returns *LoadError for anything that
// prevents a complete table (unreadable file, missing required column); a
// partial table is never produced. Malformed numeric cells are trusted as
// provided and parse to zero.
package dataprocessing
