// Package store provides an in-memory, multi-index store of affiliations and
// the publications they contributed to.
//
// # Overview
//
// Two kinds of entities live in a [Store]:
//
//   - Affiliations: named organizations located at an integer point
//     ([geo.Coord]). Besides the primary table they are indexed by
//     (name, id) and by (coordinate, id) in ordered B-trees.
//   - Publications: documents with a heading and a year. Each publication
//     cites at most one parent and may be cited by any number of children,
//     so the citation structure is a forest.
//
// Affiliations and publications are connected by cross links. Linking an
// affiliation to a publication records the publication (with its year) on
// the affiliation and the affiliation on the publication, and removing
// either endpoint drops every link that references it.
//
// # Basic Usage
//
//	s := store.New()
//	s.AddAffiliation("TUNI", "Tampere University", geo.Coord{X: 10, Y: 20})
//	s.AddPublication(1, "On Trees", 2000, nil)
//	s.AddPublication(2, "On Forests", 2005, []store.AffiliationID{"TUNI"})
//	s.AddReference(2, 1) // publication 2 cites publication 1
//
//	s.Parent(2)                        // 1
//	s.DirectReferences(1)              // [2]
//	s.PublicationsAfter("TUNI", 2001)  // [{2005 2}]
//
// # Not Found
//
// Absence is an expected outcome, not an error. Lookups return the sentinel
// values [NoAffiliation], [NoPublication], [NoName], [NoYear] and
// [geo.NoCoord]; list lookups return a single-element list holding the
// sentinel. Inserts return false for duplicate ids, and link operations
// return false without mutating anything when an endpoint is missing.
//
// # Derived Orderings
//
// [Store.AffiliationsAlphabetically] and [Store.AffiliationsDistanceIncreasing]
// are served from caches that are marked stale by every write to the
// underlying index and rebuilt on the next read.
//
// # Concurrency
//
// A Store is not safe for concurrent use. Even read operations may rebuild a
// cache, so callers sharing a Store must hold one exclusive lock around every
// call (see pkg/server).
package store
