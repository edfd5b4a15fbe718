package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/mynt/inventory-tracker/internal/domain/classify"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/internal/domain/repository"
)

// DefaultTagFetchConcurrency es el tope global de consultas simultáneas a la
// fuente de tags.
const DefaultTagFetchConcurrency = 3

// TagResolver resuelve el base type de un producto vía sus tags, con caché
// read-through de 7 días. Implementa classify.BaseTypeResolver.
type TagResolver struct {
	cache  repository.TagCacheRepository
	source TagSource
	sem    *semaphore.Weighted
	now    func() time.Time
}

var _ classify.BaseTypeResolver = (*TagResolver)(nil)

// NewTagResolver construye el resolver. maxConcurrent limita las consultas
// simultáneas a la fuente externa en todo el proceso.
func NewTagResolver(cache repository.TagCacheRepository, source TagSource, maxConcurrent int64) *TagResolver {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultTagFetchConcurrency
	}
	return &TagResolver{
		cache:  cache,
		source: source,
		sem:    semaphore.NewWeighted(maxConcurrent),
		now:    time.Now,
	}
}

// ResolveBaseType devuelve "P", "U" o nil ("sin tag base reconocido") para el
// producto. Una entrada de caché vigente responde directo, incluso si su
// valor es nil; si no, consulta la fuente, deriva el base type y actualiza el
// caché. Un fallo al leer el caché se trata como "sin caché"; un fallo de la
// fuente se propaga.
func (r *TagResolver) ResolveBaseType(ctx context.Context, productID string) (*string, error) {
	if cached, err := r.cache.Get(productID); err == nil && cached != nil && cached.Fresh(r.now()) {
		return cached.BaseType, nil
	}

	if err := r.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	tagsRaw, err := r.source.FetchProductTags(ctx, productID)
	r.sem.Release(1)
	if err != nil {
		return nil, fmt.Errorf("consultar tags del producto %s: %w", productID, err)
	}

	base := deriveBaseType(tagsRaw)

	if err := r.cache.Upsert(&entity.TagCache{
		ProductID: productID,
		TagsRaw:   tagsRaw,
		BaseType:  base,
		UpdatedAt: r.now(),
	}); err != nil {
		return nil, fmt.Errorf("actualizar caché de tags del producto %s: %w", productID, err)
	}
	return base, nil
}

// deriveBaseType busca "base p" / "base u" en los tags en minúsculas.
// "base p" se evalúa primero; gana el primer match.
func deriveBaseType(tagsRaw string) *string {
	tags := strings.ToLower(tagsRaw)
	if strings.Contains(tags, "base p") {
		b := classify.BaseP
		return &b
	}
	if strings.Contains(tags, "base u") {
		b := classify.BaseU
		return &b
	}
	return nil
}
