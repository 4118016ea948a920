package inventory

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// newNameCollator ordena nombres por intercalación Unicode ("apple" antes que "Zebra").
// Un Collator no es seguro para uso concurrente: crear uno por ordenamiento.
func newNameCollator() *collate.Collator {
	return collate.New(language.Und)
}
