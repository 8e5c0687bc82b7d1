package watcher

// FilesystemType is a coarse classification of the filesystem holding the
// watched file. Network filesystems do not deliver inotify events reliably,
// so the watcher polls on them.
type FilesystemType int

const (
	FSTypeUnknown FilesystemType = iota
	FSTypeLocal
	FSTypeNFS
	FSTypeSMB
	FSTypeFUSE
)

func (t FilesystemType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeNFS:
		return "nfs"
	case FSTypeSMB:
		return "smb"
	case FSTypeFUSE:
		return "fuse"
	}
	return "unknown"
}

// Remote reports whether events on this filesystem should not be trusted.
func (t FilesystemType) Remote() bool {
	return t == FSTypeNFS || t == FSTypeSMB || t == FSTypeFUSE
}
