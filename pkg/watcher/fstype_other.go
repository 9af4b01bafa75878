//go:build !linux

package watcher

func statfsType(string) FilesystemType {
	return FSTypeLocal
}
