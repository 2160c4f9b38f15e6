package repository

import "context"

// Claves del espacio de documentos. Cada clave guarda un arreglo JSON de un solo tipo de entidad.
const (
	KeyProducts              = "products"
	KeyIdentities            = "identities"
	KeyQuotes                = "quotes"
	KeyPosCustomers          = "pos_customers"
	KeyPosSales              = "pos_sales"
	KeyCommissionSettlements = "commission_settlements"
	KeyCashClosings          = "cash_closings"

	// CartKeyPrefix prefijo de los namespaces de carrito (cart:<identityID>, cart:guest, cart:guest:<id>).
	CartKeyPrefix = "cart:"
)

// DocumentStore define el puerto de persistencia por clave (DIP): documentos JSON completos,
// sin API de merge parcial. Get devuelve found=false si la clave no existe.
type DocumentStore interface {
	Get(ctx context.Context, key string) (doc []byte, found bool, err error)
	Put(ctx context.Context, key string, doc []byte) error
}

// AtomicDocumentStore backend capaz de ejecutar leer-modificar-escribir dentro de una transacción propia.
// Si fn devuelve error, no se escribe nada y el error se propaga.
type AtomicDocumentStore interface {
	DocumentStore
	Modify(ctx context.Context, key string, fn func(current []byte, found bool) ([]byte, error)) error
}
