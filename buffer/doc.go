// Package buffer implements the pure, rune-accurate document model that backs
// the editor component.
//
// Coordinates are 0-based (Row, Col) in runes.
// Ranges are half-open selections in document coordinates: [Start, End).
//
// Every effective mutation is observable: a BeforeChange notification fires
// for each atomic edit while positions are still valid against the old text,
// and one batch of ChangeRecords fires once the transaction has committed.
// Marks (range markers and bookmarks) are remapped through every edit.
package buffer
