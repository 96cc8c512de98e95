// Package backup implements timestamped preset backups and per-preset
// retention.
//
// # Naming
//
// Backup(path) copies the file into the backup directory as
//
//	<stem>_<YYYYMMDD_HHMMSS><ext>      e.g. studio_20250121_100000.xml
//
// preserving permission bits and modification time. Two backups of the same
// file within one second share a name; the second overwrites the first and a
// warning is logged.
//
// # Retention
//
// Prune(n) groups backups by their original stem, the name without its two
// trailing underscore segments, and deletes all but the n newest of every
// group. Age comes from the timestamp in the name, falling back to the
// modification time. Files with fewer than three underscore-delimited parts
// belong to no group and are never pruned. A file that cannot be deleted is
// logged and skipped.
//
// Restore(backup, target) overwrites target unconditionally; it does not back
// up the target first.
//
// # Mirroring
//
// StorageMirror copies backups into an object storage bucket (core/storage)
// under a key prefix, so a lost backup directory can be recovered:
//
//	mirror := backup.NewStorageMirror(client, "presets", "backups/", logger)
//	_ = mirror.Upload(ctx, backupPath)
package backup
