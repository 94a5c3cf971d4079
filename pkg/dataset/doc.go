// Package dataset reads and writes citeforest dataset files.
//
// # Overview
//
// A dataset lists affiliations, publications and the citation links between
// publications. It is the only way data reaches the store from outside the
// process: the CLI and the HTTP server both start from an empty store and
// [Apply] one or more datasets to it.
//
// # Formats
//
// Two encodings share the same field names. TOML uses arrays of tables:
//
//	[[affiliation]]
//	id = "TUNI"
//	name = "Tampere University"
//	x = 10
//	y = 20
//
//	[[publication]]
//	id = 1
//	title = "On Trees"
//	year = 2000
//	affiliations = ["TUNI"]
//	parent = 0
//
// JSON uses "affiliations" and "publications" arrays of the same objects. The
// format is chosen from the file extension by [FormatFromPath].
//
// # Loading
//
// [ReadFile] decodes a single file. [LoadFiles] decodes several files
// concurrently and returns them in argument order, so applying them one after
// another is deterministic.
//
// # Applying
//
// [Apply] validates a dataset against the target store before touching it.
// A dataset with a duplicate id or a dangling reference is rejected as a
// whole and the store is left unchanged.
//
// # Export
//
// [Export] snapshots a live store as a [Dataset] and [WriteJSON] encodes it.
// Exporting then re-applying to an empty store reproduces the same
// affiliations, publications, links and parent edges.
package dataset
