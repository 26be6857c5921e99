// Package extract turns document files into plain text for ingestion.
//
// PDF extraction uses ledongthuc/pdf and keeps going past unreadable pages;
// partial text beats no text for retrieval purposes. OCR for scanned pages
// is out of scope.
package extract
