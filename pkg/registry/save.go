package registry

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/agentstation/roster/pkg/constants"
	"github.com/agentstation/roster/pkg/errors"
	"github.com/agentstation/roster/pkg/logging"
)

// lockRetryDelay is how often a held write lock is polled.
const lockRetryDelay = 100 * time.Millisecond

// Save writes doc back to path. The file currently at path is copied to
// path+".bak" first; the new content replaces it through a temporary file
// and a rename. The write is guarded by an advisory lock on path+".lock".
// It returns the backup path.
func Save(ctx context.Context, path string, doc *Document, strategies ...Strategy) (string, error) {
	data, err := Encode(doc, strategies...)
	if err != nil {
		return "", err
	}

	lock := flock.New(path + constants.LockSuffix)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return "", errors.WrapIO("lock", lock.Path(), err)
	}
	if !locked {
		return "", errors.NewIOError("lock", lock.Path(), errors.New("lock not acquired"))
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	backup, err := Backup(path)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", errors.WrapIO("write", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.WrapIO("write", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", errors.WrapIO("rename", path, err)
	}

	logging.FromContext(ctx).Debug().
		Str("backup", backup).
		Int("agents", len(doc.Agents)).
		Msg("registry written")
	return backup, nil
}

// Backup copies the file at path to path+".bak", replacing an older backup.
func Backup(path string) (string, error) {
	original, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WrapIO("read", path, err)
	}
	backup := path + constants.BackupSuffix
	if err := os.WriteFile(backup, original, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", backup, err)
	}
	return backup, nil
}
