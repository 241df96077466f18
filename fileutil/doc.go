// Package fileutil provides atomic file writes and small JSON file helpers.
//
//	if err := fileutil.EnsureDir(dir); err != nil {
//		return err
//	}
//	return fileutil.AtomicWriteJSON(filepath.Join(dir, "report.json"), report)
package fileutil
