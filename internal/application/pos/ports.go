package pos

import (
	"context"

	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
)

// ProductLookup índice del catálogo actual.
type ProductLookup interface {
	ProductsByID(ctx context.Context) map[string]*entity.Product
}
