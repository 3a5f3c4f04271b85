// Package files provides file system discovery utilities for locating
// ADAT files on disk.
//
// Discovery finds .adat files in a directory (sorted by name so batch
// conversions run in a stable order) and files matching glob patterns.
// Relative directories resolve against the Discovery base path to keep
// callers portable.
//
// Example usage:
//
//	discovery := files.NewDiscovery("/path/to/data")
//
//	adatFiles, err := discovery.FindAdatFiles("plates")
//	if err != nil {
//	    return err
//	}
//	for _, f := range adatFiles {
//	    // Parse file
//	}
package files
