// Package preserve backs up user data before a destructive update and puts it
// back afterwards. Everything is copy-then-delete: a failed backup leaves the
// original tree untouched.
package preserve

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Paths are the subtrees under the installation root that hold user data.
// The same list drives backup and restore, so the two are exact inverses.
var Paths = []string{
	"server/static/assets",
	"server/static/thumbnails",
	"server/static/mods",
	"server/data",
	"server/save_backups",
	"extensions/compendium/db",
}

const sessionDirName = "pa_update_backup"

// Backup deep-copies every existing preserve path from root into a fresh
// session directory under base. A stale session from an interrupted run is
// deleted first, never merged. Missing preserve paths are skipped: a first
// install has none.
func Backup(base, root string) (string, error) {
	sessionDir := filepath.Join(base, sessionDirName)
	if _, err := os.Stat(sessionDir); err == nil {
		if err := os.RemoveAll(sessionDir); err != nil {
			return "", fmt.Errorf("could not clear stale backup session: %w", err)
		}
	}
	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return "", fmt.Errorf("could not create backup session: %w", err)
	}

	for _, rel := range Paths {
		src := filepath.Join(root, filepath.FromSlash(rel))
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		dst := filepath.Join(sessionDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return "", fmt.Errorf("backup failed for %s: %w", rel, err)
		}
		if err := CopyDir(src, dst); err != nil {
			return "", fmt.Errorf("backup failed for %s: %w", rel, err)
		}
	}

	return sessionDir, nil
}

// Restore copies every preserve path present in the session back under root,
// replacing whatever the fresh install put there, then deletes the session.
// Call it once, after the destructive replacement has completed.
func Restore(sessionDir, root string) error {
	for _, rel := range Paths {
		src := filepath.Join(sessionDir, filepath.FromSlash(rel))
		info, err := os.Stat(src)
		if err != nil || !info.IsDir() {
			continue
		}
		dst := filepath.Join(root, filepath.FromSlash(rel))
		if _, err := os.Stat(dst); err == nil {
			if err := os.RemoveAll(dst); err != nil {
				return fmt.Errorf("restore failed for %s: %w", rel, err)
			}
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return fmt.Errorf("restore failed for %s: %w", rel, err)
		}
		if err := CopyDir(src, dst); err != nil {
			return fmt.Errorf("restore failed for %s: %w", rel, err)
		}
	}

	if err := os.RemoveAll(sessionDir); err != nil {
		return fmt.Errorf("could not delete backup session: %w", err)
	}
	return nil
}

// CopyDir recursively copies the contents of src into dst, creating dst if
// needed.
func CopyDir(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			if err := CopyDir(srcPath, dstPath); err != nil {
				return err
			}
		} else {
			if err := copyFile(srcPath, dstPath); err != nil {
				return fmt.Errorf("failed to copy %s to %s: %w", srcPath, dstPath, err)
			}
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	_, copyErr := io.Copy(out, in)
	closeErr := out.Close()
	if copyErr != nil {
		return copyErr
	}
	return closeErr
}
