// Package library lists and guards the preset files of a library directory.
//
// List(dir, ext) returns name, path, extension, size and modification time
// of every regular file, newest first. Guard enforces the size limit applied
// before a preset is parsed (10 MB by default) and Resolve keeps caller
// supplied names inside the library directory.
package library
