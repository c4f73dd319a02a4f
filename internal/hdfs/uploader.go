// Package hdfs uploads processed tables into HDFS through a containerized
// namenode. The filesystem CLI is treated as an opaque external system:
// every invocation either succeeds or fails with its captured output.
package hdfs

import (
	"context"
	"path"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// Uploader is the interface to the external distributed filesystem.
type Uploader interface {
	// CreateDirectory ensures the destination directory exists (mkdir -p).
	CreateDirectory(ctx context.Context, dir string) error

	// CopyIn stages a local file inside the external system's host.
	CopyIn(ctx context.Context, localPath, remotePath string) error

	// PutFile moves a staged file into the distributed filesystem.
	PutFile(ctx context.Context, remotePath, hdfsPath string) error
}

// UploadAll uploads each file with the three-step sequence: directory
// creation, local staging, filesystem put. The first failure aborts that
// file's attempt and is returned; there is no retry and no rollback.
func UploadAll(ctx context.Context, up Uploader, files []string, hdfsDir, tmpDir string) error {
	for _, file := range files {
		name := filepath.Base(file)
		staged := path.Join(tmpDir, name)
		dest := path.Join(hdfsDir, name)

		if err := up.CreateDirectory(ctx, hdfsDir); err != nil {
			return errors.Wrapf(err, "upload %s", file)
		}
		if err := up.CopyIn(ctx, file, staged); err != nil {
			return errors.Wrapf(err, "upload %s", file)
		}
		if err := up.PutFile(ctx, staged, dest); err != nil {
			return errors.Wrapf(err, "upload %s", file)
		}
	}
	return nil
}
