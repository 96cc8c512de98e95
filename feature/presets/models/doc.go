// Package models defines the database models of the presets feature.
//
// Revision maps the 'preset_revisions' table written by the revision catalog:
// one row per save, backup or restore, carrying the preset stem, the file
// format, the metadata name and version, the fingerprint and the topology
// counts of the configuration that was written.
package models
