package classify

import (
	"context"
	"strconv"
	"strings"

	"github.com/mynt/inventory-tracker/internal/domain/entity"
)

// BaseTypeResolver resuelve el base type de un producto a partir de sus tags
// en la fuente externa. nil significa "sin tag base reconocido".
type BaseTypeResolver interface {
	ResolveBaseType(ctx context.Context, productID string) (*string, error)
}

// Config controla el orden de evaluación del clasificador.
//
// Por defecto se detecta el tamaño primero (comportamiento de la última
// revisión del sistema). Con CategoryFirst la categoría se detecta antes y,
// si se detectó una, restringe la búsqueda en el catálogo de productos
// especiales a esa categoría: la categoría interpreta los items ambiguos en
// lugar de solo sobreescribir la del catálogo.
type Config struct {
	CategoryFirst bool
}

// Classifier mapea una línea de orden cruda a su clave canónica de
// inventario. Determinista y sin I/O salvo la resolución de tags, que cachea
// el resolver; clasificar dos veces la misma línea da la misma clave.
type Classifier struct {
	cfg      Config
	resolver BaseTypeResolver
}

// New construye el clasificador.
func New(cfg Config, resolver BaseTypeResolver) *Classifier {
	return &Classifier{cfg: cfg, resolver: resolver}
}

// Classify devuelve la clave de inventario de la línea, o nil si la línea se
// ignora (sin tamaño, sin categoría, sin pigmento o sin base type resoluble).
// Error solo si la resolución de tags falla; el caller decide si aborta.
func (c *Classifier) Classify(ctx context.Context, li entity.LineItem) (*entity.InventoryKey, error) {
	text := li.Name + " " + li.VariantTitle

	size := DetectSize(text)
	category := DetectCategory(text)

	if c.cfg.CategoryFirst && category == "" && !hasSpecialProductName(text) {
		return nil, nil
	}
	if size == "" {
		return nil, nil
	}

	// Color personalizado: base type por opción de pigmento, sin tags.
	if IsCustomColor(li) {
		if category == "" {
			return nil, nil
		}
		base := baseTypeFromPigment(li)
		if base == "" {
			return nil, nil
		}
		return &entity.InventoryKey{BaseType: base, Category: category, Size: size}, nil
	}

	// Productos especiales: registrados por nombre, antes del camino genérico.
	if key := c.detectSpecialProduct(text, category, size); key != nil {
		return key, nil
	}

	// Camino por defecto: categoría + base type vía tags del producto.
	if category == "" {
		return nil, nil
	}
	if li.ProductID == nil {
		return nil, nil
	}
	base, err := c.resolver.ResolveBaseType(ctx, strconv.FormatInt(*li.ProductID, 10))
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, nil
	}
	return &entity.InventoryKey{BaseType: *base, Category: category, Size: size}, nil
}

// detectSpecialProduct busca el texto en el catálogo de productos especiales.
// En modo size-first el hint de categoría del texto, si existe, pisa la
// categoría del catálogo; en modo category-first una categoría detectada
// restringe la búsqueda a su lista.
func (c *Classifier) detectSpecialProduct(text, categoryHint, size string) *entity.InventoryKey {
	hay := strings.ToLower(strings.TrimSpace(text))
	for _, p := range SpecialProducts {
		if c.cfg.CategoryFirst && categoryHint != "" && p.Category != categoryHint {
			continue
		}
		if !strings.Contains(hay, strings.ToLower(p.Name)) {
			continue
		}
		if !containsString(p.Sizes, size) {
			continue
		}
		category := p.Category
		if categoryHint != "" {
			category = categoryHint
		}
		return &entity.InventoryKey{BaseType: p.Name, Category: category, Size: size}
	}
	return nil
}

// DetectSize devuelve el primer token de tamaño presente en el texto, en el
// orden fijo de SizeTokens. Vacío si no hay ninguno.
func DetectSize(text string) string {
	t := strings.ToLower(text)
	for _, s := range SizeTokens {
		if strings.Contains(t, strings.ToLower(s)) {
			return s
		}
	}
	return ""
}

// DetectCategory devuelve la categoría por palabra clave, o vacío.
func DetectCategory(text string) string {
	t := strings.ToLower(text)
	if strings.Contains(t, "wandfarbe") {
		return CategoryWandfarbe
	}
	if strings.Contains(t, "lack") {
		return CategoryLack
	}
	return ""
}

// IsCustomColor indica si la línea es un color personalizado.
func IsCustomColor(li entity.LineItem) bool {
	return strings.Contains(strings.ToLower(li.Name), customColorPhrase) ||
		strings.Contains(strings.ToLower(li.VariantTitle), customColorPhrase)
}

// DetectPigmentOption extrae la opción de pigmento (P1..P4) del texto de la
// línea o, si no está ahí, del property bag. Vacío si no aparece.
func DetectPigmentOption(li entity.LineItem) string {
	if m := pigmentRe.FindString(li.Name + " " + li.VariantTitle); m != "" {
		return m
	}
	for _, p := range li.Properties {
		if m := pigmentRe.FindString(p.Name + " " + p.Value); m != "" {
			return m
		}
	}
	return ""
}

// baseTypeFromPigment mapea la opción de pigmento al base type:
// P1 -> P, P2/P3/P4 -> U.
func baseTypeFromPigment(li entity.LineItem) string {
	switch DetectPigmentOption(li) {
	case "P1":
		return BaseP
	case "P2", "P3", "P4":
		return BaseU
	}
	return ""
}

func hasSpecialProductName(text string) bool {
	hay := strings.ToLower(text)
	for _, p := range SpecialProducts {
		if strings.Contains(hay, strings.ToLower(p.Name)) {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
