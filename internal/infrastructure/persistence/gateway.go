// Package persistence implementa el gateway de colecciones por clave sobre un DocumentStore.
//
// Contrato: Load inicializa la clave con la colección por defecto si no existe; Save reemplaza
// la colección completa; Update hace leer-modificar-escribir bajo un mutex en proceso (y dentro
// de una transacción del backend cuando éste la soporta). Las fallas de almacenamiento (JSON
// corrupto, backend caído, espacio agotado) se registran y degradan a la colección por defecto;
// nunca llegan al llamador.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/jhoicas/Ferreteria-api/internal/domain/repository"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
	"github.com/jhoicas/Ferreteria-api/pkg/metrics"
)

// errAborted corta Modify cuando la función del llamador falla; no es una falla de almacenamiento.
var errAborted = errors.New("persistence: modificación abortada")

// Gateway acceso a colecciones completas por clave.
// Con store nil (sin almacenamiento en el host) Load devuelve el default y Save no hace nada.
type Gateway struct {
	store repository.DocumentStore
	log   *logger.Logger
	mu    sync.Mutex
}

// NewGateway construye el gateway. store puede ser nil.
func NewGateway(store repository.DocumentStore, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{store: store, log: log.Component("persistence")}
}

// Available indica si hay un almacenamiento real detrás del gateway.
func (g *Gateway) Available() bool {
	return g.store != nil
}

// Load devuelve la colección guardada en key. Si no existe, escribe def y lo devuelve.
func Load[T any](ctx context.Context, g *Gateway, key string, def []T) []T {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.store == nil {
		return clone(def)
	}
	raw, found, err := g.store.Get(ctx, key)
	if err != nil {
		g.fallback(key, "load", err)
		return clone(def)
	}
	if !found {
		g.put(ctx, key, def)
		return clone(def)
	}
	return decode(g, key, raw, def)
}

// Save reemplaza la colección completa guardada en key.
func Save[T any](ctx context.Context, g *Gateway, key string, coll []T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.store == nil {
		return
	}
	g.put(ctx, key, coll)
}

// Update lee la colección de key (o def), aplica fn y guarda el resultado como una sola escritura.
// Un error de fn cancela la escritura y se devuelve tal cual; las fallas de almacenamiento no.
func Update[T any](ctx context.Context, g *Gateway, key string, def []T, fn func(current []T) ([]T, error)) ([]T, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.store == nil {
		return fn(clone(def))
	}

	var (
		out     []T
		fnErr   error
		applied bool
	)
	apply := func(raw []byte, found bool) ([]byte, error) {
		applied = true
		current := clone(def)
		if found {
			current = decode(g, key, raw, def)
		}
		next, err := fn(current)
		if err != nil {
			fnErr = err
			return nil, errAborted
		}
		out = next
		return json.Marshal(next)
	}

	var err error
	if atomic, ok := g.store.(repository.AtomicDocumentStore); ok {
		err = atomic.Modify(ctx, key, apply)
	} else {
		raw, found, getErr := g.store.Get(ctx, key)
		if getErr != nil {
			// sin lectura no hay escritura
			err = getErr
		} else {
			var doc []byte
			doc, err = apply(raw, found)
			if err == nil {
				err = g.store.Put(ctx, key, doc)
			}
		}
	}

	if err != nil && !errors.Is(err, errAborted) {
		g.fallback(key, "update", err)
		if !applied {
			// el backend falló antes de leer: se calcula sobre el default sin persistir
			_, _ = apply(nil, false)
		}
	}
	if fnErr != nil {
		return nil, fnErr
	}
	return out, nil
}

func (g *Gateway) put(ctx context.Context, key string, coll any) {
	doc, err := json.Marshal(coll)
	if err != nil {
		g.fallback(key, "encode", err)
		return
	}
	if err := g.store.Put(ctx, key, doc); err != nil {
		g.fallback(key, "save", err)
	}
}

func (g *Gateway) fallback(key, op string, err error) {
	metrics.GatewayFallbacks.WithLabelValues(keyFamily(key), op).Inc()
	g.log.Warn().Err(err).Str("key", key).Str("op", op).Msg("persistencia degradada a colección por defecto")
}

// keyFamily agrupa las claves por namespace para acotar las series de métricas.
func keyFamily(key string) string {
	if family, _, ok := strings.Cut(key, ":"); ok {
		return family
	}
	return key
}

func decode[T any](g *Gateway, key string, raw []byte, def []T) []T {
	var coll []T
	if err := json.Unmarshal(raw, &coll); err != nil {
		g.fallback(key, "decode", err)
		return clone(def)
	}
	return coll
}

func clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
