package domain

import (
	"os"
	"path/filepath"
)

const (
	// DataDirName is the name of the default data directory under the user's home.
	DataDirName = ".railfare"

	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "railfare.yaml"

	// ConfigEnvVar overrides configuration discovery with an explicit file path.
	ConfigEnvVar = "RAILFARE_CONFIG"

	// StationsFileName is the name of the station roster document.
	StationsFileName = "stations.json"

	// RunNumbersDirName is the directory holding run-number records, one file per date.
	RunNumbersDirName = "runs"

	// SnapshotsDirName is the directory holding query snapshots, one directory per date.
	SnapshotsDirName = "snapshots"

	// SocketFileName is the name of the daemon unix socket.
	SocketFileName = "railfare.sock"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// SocketPerm is the permission for the daemon socket (rw-------).
	SocketPerm = 0o600
)

// DefaultDataPath returns the default data directory. It falls back to a
// relative directory when the home directory cannot be determined.
func DefaultDataPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return DataDirName
	}
	return filepath.Join(home, DataDirName)
}

// DefaultSocketPath returns the daemon socket path inside dataDir.
func DefaultSocketPath(dataDir string) string {
	return filepath.Join(dataDir, SocketFileName)
}
