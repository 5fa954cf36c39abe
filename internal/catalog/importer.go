package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/kidshop/kidshop-golang/internal/feed"
)

// Importer reconciles a parsed supplier feed into the catalog tables.
// Every write is an upsert keyed on a natural key (producer name, brand name,
// product SKU) and overwrites all attribute columns, so the feed is always
// authoritative and a re-run of the same document changes nothing.
type Importer struct {
	db *sql.DB
}

func NewImporter(db *sql.DB) *Importer {
	return &Importer{db: db}
}

// Result summarizes a completed import run.
type Result struct {
	RunID     string
	Producers int
	Products  int
	Skipped   int // products without a SKU, which cannot be reconciled
}

// Run imports the whole document inside one transaction: a failure at any
// point rolls everything back, so a partially-updated catalog is never
// observable. The document must already be fully parsed before Run is called.
//
// Producers are imported first so products can resolve their responsible
// producer from the name→id map; brands are resolved per product.
func (imp *Importer) Run(ctx context.Context, doc *feed.Document) (*Result, error) {
	res := &Result{RunID: uuid.NewString()}

	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start import transaction: %w", err)
	}
	defer tx.Rollback() // Safety net

	producerIDs, err := imp.importProducers(ctx, tx, doc.Producers)
	if err != nil {
		return nil, err
	}
	res.Producers = len(producerIDs)
	log.Printf("[import %s] producers reconciled: %d", res.RunID, res.Producers)

	for i := range doc.Products {
		p := &doc.Products[i]

		sku := strings.TrimSpace(p.Index)
		if sku == "" {
			res.Skipped++
			log.Printf("[import %s] skipping product %q: no SKU", res.RunID, strings.TrimSpace(p.Name))
			continue
		}

		if err := imp.upsertProduct(ctx, tx, sku, p, producerIDs); err != nil {
			return nil, err
		}
		res.Products++
	}
	log.Printf("[import %s] products reconciled: %d (skipped %d)", res.RunID, res.Products, res.Skipped)

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import transaction: %w", err)
	}
	return res, nil
}

// importProducers upserts every named producer wholesale and returns the
// name→id map used for product reference resolution.
func (imp *Importer) importProducers(ctx context.Context, tx *sql.Tx, producers []feed.ProducerEntry) (map[string]int64, error) {
	const query = `
		INSERT INTO producers (name, country_code, street, postal_code, city, email, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			country_code = EXCLUDED.country_code,
			street = EXCLUDED.street,
			postal_code = EXCLUDED.postal_code,
			city = EXCLUDED.city,
			email = EXCLUDED.email,
			phone_number = EXCLUDED.phone_number
		RETURNING id`

	ids := make(map[string]int64, len(producers))
	for i := range producers {
		p := &producers[i]

		name := strings.TrimSpace(p.Name)
		if name == "" {
			continue
		}

		var id int64
		err := tx.QueryRowContext(ctx, query,
			name,
			feed.Value(p.Address.CountryCode, ""),
			feed.Value(p.Address.Street, ""),
			feed.Value(p.Address.PostalCode, ""),
			feed.Value(p.Address.City, ""),
			feed.Value(p.Contact.Email, ""),
			feed.Value(p.Contact.PhoneNumber, ""),
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert producer %q: %w", name, err)
		}
		ids[name] = id
	}
	return ids, nil
}

// upsertProduct coerces one feed entry and writes it keyed on SKU. Every
// attribute column is overwritten on conflict; the feed always wins.
func (imp *Importer) upsertProduct(ctx context.Context, tx *sql.Tx, sku string, p *feed.ProductEntry, producerIDs map[string]int64) error {
	price, err := p.ListPriceDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	suggested, err := p.SuggestedPriceDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	vat, err := p.VATPercent()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	stock, err := p.StockQuantity()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	length, err := p.PackageLengthDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	width, err := p.PackageWidthDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	height, err := p.PackageHeightDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}
	weight, err := p.GrossWeightDecimal()
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}

	brandID, err := ResolveBrand(ctx, tx, p.Brand)
	if err != nil {
		return fmt.Errorf("product %s: %w", sku, err)
	}

	var producerID *int64
	if name := p.ResponsibleProducer(); name != "" {
		if id, ok := producerIDs[name]; ok {
			producerID = &id
		}
	}

	const query = `
		INSERT INTO products (
			sku, name, ean, description, price, suggested_price, vat, stock_quantity,
			package_length, package_width, package_height, gross_weight,
			image_urls, category_path, brand_id, producer_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			ean = EXCLUDED.ean,
			description = EXCLUDED.description,
			price = EXCLUDED.price,
			suggested_price = EXCLUDED.suggested_price,
			vat = EXCLUDED.vat,
			stock_quantity = EXCLUDED.stock_quantity,
			package_length = EXCLUDED.package_length,
			package_width = EXCLUDED.package_width,
			package_height = EXCLUDED.package_height,
			gross_weight = EXCLUDED.gross_weight,
			image_urls = EXCLUDED.image_urls,
			category_path = EXCLUDED.category_path,
			brand_id = EXCLUDED.brand_id,
			producer_id = EXCLUDED.producer_id`

	_, err = tx.ExecContext(ctx, query,
		sku,
		feed.Value(p.Name, ""),
		feed.Value(p.EAN, ""),
		feed.Value(p.Description, ""),
		price,
		suggested,
		vat,
		stock,
		length,
		width,
		height,
		weight,
		p.JoinedImageURLs(),
		feed.Value(p.CategoryPath, ""),
		brandID,
		producerID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert product %s: %w", sku, err)
	}
	return nil
}
