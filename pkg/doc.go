// Package pkg holds the libraries behind the citeforest command.
//
// # Overview
//
// Citeforest keeps research affiliations, the publications they contributed
// to and the citation links between publications in memory. The packages
// are layered:
//
//  1. [geo] - integer coordinates and their origin-distance ordering
//  2. [store] - the in-memory store: affiliations, the citation forest,
//     ordered indices and cached orderings
//  3. [dataset] - TOML and JSON dataset files applied to a store
//  4. [idgen] - seeded random ids and synthetic datasets
//  5. [render/nodelink] - DOT and SVG diagrams of the forest
//  6. [server] - the JSON HTTP API
//
// Supporting packages are [errors] (coded errors), [observability] (hooks
// for logging) and [buildinfo] (version stamping).
//
// # Quick Start
//
//	s := store.New()
//	sets, err := dataset.LoadFiles(ctx, "examples/datasets/nordic.toml")
//	if err != nil {
//	    return err
//	}
//	if _, err := dataset.ApplyAll(s, sets); err != nil {
//	    return err
//	}
//	fmt.Println(s.AffiliationsDistanceIncreasing())
//	fmt.Println(s.ClosestCommonParent(4, 5))
//
// [geo]: github.com/matzehuels/citeforest/pkg/geo
// [store]: github.com/matzehuels/citeforest/pkg/store
// [dataset]: github.com/matzehuels/citeforest/pkg/dataset
// [idgen]: github.com/matzehuels/citeforest/pkg/idgen
// [render/nodelink]: github.com/matzehuels/citeforest/pkg/render/nodelink
// [server]: github.com/matzehuels/citeforest/pkg/server
// [errors]: github.com/matzehuels/citeforest/pkg/errors
// [observability]: github.com/matzehuels/citeforest/pkg/observability
// [buildinfo]: github.com/matzehuels/citeforest/pkg/buildinfo
package pkg
