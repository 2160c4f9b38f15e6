// seed carga el catálogo e identidades de demostración en el almacén configurado.
//
// Uso: go run ./cmd/seed [ruta/productos.csv]
// El CSV (separado por ';', exportado en ISO-8859-1 por el sistema de mostrador) tiene columnas
// id;nombre;precio_base;tier1;tier2;tier3;existencias;categoria. Sin archivo se usan los productos de ejemplo.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ferreteria-api/internal/application/catalog"
	"github.com/jhoicas/Ferreteria-api/internal/application/identity"
	"github.com/jhoicas/Ferreteria-api/internal/domain/entity"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/persistence"
	"github.com/jhoicas/Ferreteria-api/internal/infrastructure/store"
	"github.com/jhoicas/Ferreteria-api/pkg/config"
	"github.com/jhoicas/Ferreteria-api/pkg/logger"
)

var demoIdentities = []entity.Identity{
	{ID: "admin", Name: "Administración", Email: "admin@ferreteria.mx", Role: entity.RoleAdmin},
	{ID: "vendedor-1", Name: "Mostrador 1", Email: "mostrador1@ferreteria.mx", Role: entity.RoleSalesperson},
	{ID: "cliente-especial", Name: "Constructora del Valle", Email: "compras@cvalle.mx", Role: entity.RoleSpecialClient},
}

func demoProducts() []entity.Product {
	tiers := func(t1, t2, t3 int64) *entity.TierPrices {
		return &entity.TierPrices{Tier1: decimal.NewFromInt(t1), Tier2: decimal.NewFromInt(t2), Tier3: decimal.NewFromInt(t3)}
	}
	return []entity.Product{
		{ID: "cemento-50kg", Name: "Cemento gris 50 kg", BasePrice: decimal.NewFromInt(245), Tiers: tiers(245, 230, 205), Stock: 120, Category: "Obra negra"},
		{ID: "varilla-3-8", Name: "Varilla corrugada 3/8\"", BasePrice: decimal.NewFromInt(189), Tiers: tiers(189, 175, 160), Stock: 300, Category: "Obra negra"},
		{ID: "martillo-16oz", Name: "Martillo uña 16 oz", BasePrice: decimal.NewFromInt(165), Stock: 25, Category: "Herramienta"},
		{ID: "cinta-8m", Name: "Flexómetro 8 m", BasePrice: decimal.NewFromInt(129), Tiers: tiers(129, 119, 98), Stock: 40, Category: "Herramienta"},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	products := demoProducts()
	if len(os.Args) > 1 {
		f, err := os.Open(os.Args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
			os.Exit(1)
		}
		products, err = readProducts(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
			os.Exit(1)
		}
	}

	ctx := context.Background()
	docs, closeStore, err := store.Open(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir almacén: %v\n", err)
		os.Exit(1)
	}
	defer closeStore()
	gw := persistence.NewGateway(docs, log)

	catalogUC := catalog.NewUseCase(gw)
	for _, p := range products {
		if _, err := catalogUC.Upsert(ctx, p); err != nil {
			log.Warn().Err(err).Str("product_id", p.ID).Msg("producto omitido")
		}
	}

	directory := identity.NewDirectory(gw)
	for _, ident := range demoIdentities {
		if _, err := directory.Register(ctx, ident); err != nil {
			log.Warn().Err(err).Str("identity_id", ident.ID).Msg("identidad omitida")
		}
	}

	log.Info().Int("products", len(products)).Int("identities", len(demoIdentities)).Msg("seed completado")
}

// readProducts lee el CSV de productos; la primera fila es encabezado. Tiers vacíos = sin precios por tier.
func readProducts(r io.Reader) ([]entity.Product, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = 8
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	var out []entity.Product
	for i, row := range rows {
		if i == 0 {
			continue
		}
		p, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseRow(row []string) (entity.Product, error) {
	base, err := decimal.NewFromString(strings.TrimSpace(row[2]))
	if err != nil {
		return entity.Product{}, fmt.Errorf("precio_base: %w", err)
	}
	stock, err := strconv.Atoi(strings.TrimSpace(row[6]))
	if err != nil {
		return entity.Product{}, fmt.Errorf("existencias: %w", err)
	}
	p := entity.Product{
		ID:        strings.TrimSpace(row[0]),
		Name:      strings.TrimSpace(row[1]),
		BasePrice: base,
		Stock:     stock,
		Category:  strings.TrimSpace(row[7]),
	}
	if strings.TrimSpace(row[3]) == "" {
		return p, nil
	}
	var prices [3]decimal.Decimal
	for i := range prices {
		if prices[i], err = decimal.NewFromString(strings.TrimSpace(row[3+i])); err != nil {
			return entity.Product{}, fmt.Errorf("tier%d: %w", i+1, err)
		}
	}
	p.Tiers = &entity.TierPrices{Tier1: prices[0], Tier2: prices[1], Tier3: prices[2]}
	return p, nil
}
