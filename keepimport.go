// Package keepimport provides an HTTP service that imports Google Keep
// notes from a Takeout archive export. It scans the uploaded archive for
// note documents, extracts each one into a normalized note record, and
// persists the records against a per-user collection in SQLite.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gin/).
package keepimport
