package cli

import (
	"fmt"
	"io"

	corecatalog "github.com/example/monkeys/internal/core/catalog"
)

var bannerArt = []string{
	`     🐵`,
	`    (o_o)`,
	`     |_|`,
	`    /| |\ `,
	`   / | | \`,
}

var defaultSpeciesArt = []string{
	`     🐵`,
	`    (o_o)`,
	`     |_|`,
}

// speciesArt is keyed by corecatalog.Key of the common name.
var speciesArt = map[string][]string{
	corecatalog.Key("capuchin"): {
		`    (o)___(o)`,
		`    (  O  )`,
		`     \___/`,
	},
	corecatalog.Key("baboon"): {
		`     (o_o)`,
		`     |___|`,
		`    /| | |\`,
	},
	corecatalog.Key("lemur"): {
		`      / \`,
		`     / o \ `,
		`    |  _  |`,
		`     \\-//`,
	},
	corecatalog.Key("macaque"): {
		`     (^_^)`,
		`      (_)`,
		`     /| |\`,
	},
}

// artFor returns the drawing for a species name, or the generic monkey.
func artFor(name string) []string {
	if art, ok := speciesArt[corecatalog.Key(name)]; ok {
		return art
	}
	return defaultSpeciesArt
}

func writeLines(out io.Writer, lines []string) {
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
