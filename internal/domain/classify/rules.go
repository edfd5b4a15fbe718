package classify

import "regexp"

// Catálogo de reglas de clasificación. El orden de evaluación es parte del
// contrato: está acá como dato visible, no enterrado en el control de flujo.

// Base types reconocidos.
const (
	BaseP = "P"
	BaseU = "U"
)

// Categorías reconocidas y sus palabras clave (en minúsculas).
const (
	CategoryWandfarbe = "Wandfarbe"
	CategoryLack      = "Lack"
)

// SizeTokens son los tamaños reconocidos, en orden de evaluación. "10 Liter"
// va antes que "1 Liter": si se invirtiera, "10 Liter" matchearía el token
// "1 Liter" por colisión de substring.
var SizeTokens = []string{
	"10 Liter",
	"2.5 Liter",
	"1 Liter",
	"0.75 Liter",
	"0.375 Liter",
}

// customColorPhrase marca una línea como color personalizado (camino pigmento).
const customColorPhrase = "custom color"

// pigmentRe extrae la opción de pigmento P1..P4 de texto libre o del
// property bag de la línea.
var pigmentRe = regexp.MustCompile(`\bP[1-4]\b`)

// SpecialProduct es un producto con nombre propio que se registra directo por
// nombre, sin pasar por los tags Base P/U.
type SpecialProduct struct {
	Name     string
	Category string
	Sizes    []string
}

// SpecialProducts es el catálogo de productos especiales en orden de
// evaluación: primero la lista Wandfarbe, después la Lack. "Pure White"
// existe en ambas con tamaños permitidos distintos; el orden más el subset
// de tamaños resuelve la ambigüedad.
var SpecialProducts = []SpecialProduct{
	{Name: "Pure White", Category: CategoryWandfarbe, Sizes: []string{"1 Liter", "2.5 Liter", "10 Liter"}},
	{Name: "Ultra White", Category: CategoryWandfarbe, Sizes: []string{"1 Liter", "2.5 Liter", "10 Liter"}},
	{Name: "Wall Primer", Category: CategoryWandfarbe, Sizes: []string{"2.5 Liter", "10 Liter"}},
	{Name: "Pure White", Category: CategoryLack, Sizes: []string{"0.75 Liter"}},
	{Name: "Lack Primer", Category: CategoryLack, Sizes: []string{"0.75 Liter"}},
	{Name: "Klarlack", Category: CategoryLack, Sizes: []string{"0.75 Liter"}},
	{Name: "Wandschutz", Category: CategoryLack, Sizes: []string{"0.75 Liter", "2.5 Liter"}},
}
