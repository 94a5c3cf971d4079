package dataset_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/citeforest/pkg/dataset"
	"github.com/matzehuels/citeforest/pkg/store"
)

func ExampleApply() {
	const src = `
[[affiliation]]
id = "TUNI"
name = "Tampere University"
x = 10
y = 20

[[publication]]
id = 1
title = "On Trees"
year = 2000
affiliations = ["TUNI"]

[[publication]]
id = 2
title = "More Trees"
year = 2004
parent = 1
`
	ds, err := dataset.Read(strings.NewReader(src), dataset.FormatTOML)
	if err != nil {
		panic(err)
	}
	s := store.New()
	st, err := dataset.Apply(s, ds)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%+v\n", st)
	fmt.Println(s.Parent(2), s.AffiliationName("TUNI"))
	// Output:
	// {Affiliations:1 Publications:2 Links:1 References:1}
	// 1 Tampere University
}
