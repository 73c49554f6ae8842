// Package pagetext provides page sources that turn report documents into
// page-level plain text. Each source handles a set of file extensions and is
// registered with the Registry at startup.
package pagetext
