//go:build !linux

package watcher

// DetectFilesystemType is only implemented on Linux; elsewhere every path is
// treated as local unless it is empty.
func DetectFilesystemType(path string) FilesystemType {
	if path == "" {
		return FSTypeUnknown
	}
	return FSTypeLocal
}
