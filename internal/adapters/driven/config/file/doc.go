// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - LoadCatalog, WriteCatalog: YAML or TOML metric catalog files for import and export
package file
