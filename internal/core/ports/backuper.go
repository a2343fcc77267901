package ports

import "context"

// Backuper dumps the service database into a directory.
// Backup must not return before the dump is complete.
type Backuper interface {
	Backup(ctx context.Context, directory string) error
}
