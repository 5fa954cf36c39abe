// Package feed decodes the supplier's XML product feed into typed structs.
// All optional fields keep their raw string form here; coercion to numbers
// happens through the accessor methods so the documented defaults ("0", "0%",
// empty string) are applied in exactly one place.
package feed

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ResponsibleProducerLabel is the tagged-attribute name that carries the
// producer responsible for a product. The feed uses Polish labels.
const ResponsibleProducerLabel = "Producent odpowiedzialny"

// Document is the root of the supplier feed.
type Document struct {
	XMLName   xml.Name        `xml:"Document"`
	Producers []ProducerEntry `xml:"responsibleProducers>p"`
	Products  []ProductEntry  `xml:"Produkt"`
}

// ProducerEntry is one entry of the responsibleProducers list.
type ProducerEntry struct {
	Name    string `xml:"name"`
	Address struct {
		CountryCode string `xml:"countryCode"`
		Street      string `xml:"street"`
		PostalCode  string `xml:"postalCode"`
		City        string `xml:"city"`
	} `xml:"address"`
	Contact struct {
		Email       string `xml:"email"`
		PhoneNumber string `xml:"phoneNumber"`
	} `xml:"contact"`
}

// ProductEntry is one Produkt element. Field names mirror the feed schema;
// the Go names are what the rest of the codebase sees.
type ProductEntry struct {
	Index          string      `xml:"Indeks"` // becomes the SKU
	Name           string      `xml:"Nazwa"`
	EAN            string      `xml:"Ean"`
	Description    string      `xml:"opis"`
	ListPrice      string      `xml:"Cena_z_cennika"`
	SuggestedPrice string      `xml:"Cena_z_sugerowana"`
	VAT            string      `xml:"Vat"`
	Stock          string      `xml:"Stan_mag"`
	PackageLength  string      `xml:"Szt_dlugosc_opakowania"`
	PackageWidth   string      `xml:"Szt_szerokosc_opakowania"`
	PackageHeight  string      `xml:"Szt_wysokosc_opakowania"`
	GrossWeight    string      `xml:"Szt_waga_brutto"`
	ImageLinks     []string    `xml:"linki_do_zdjec>link_do_zdjecia"`
	CategoryPath   string      `xml:"Kategoria"`
	Brand          string      `xml:"Marka"`
	Attributes     []Attribute `xml:"a"`
}

// Attribute is a tagged attribute entry: <a name="...">value</a>.
type Attribute struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// Parse decodes a feed document. Any XML error aborts the whole import
// before a single row is written.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse feed document: %w", err)
	}
	return &doc, nil
}

// Value trims raw and falls back to def when the field is empty or missing.
func Value(raw, def string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	return s
}

// ResponsibleProducer returns the producer name from the tagged attribute
// list, or "" when the product has no such attribute.
func (p *ProductEntry) ResponsibleProducer() string {
	for _, a := range p.Attributes {
		if a.Name == ResponsibleProducerLabel {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

// JoinedImageURLs flattens the image link list into one space-joined string.
// This mirrors the persisted image_urls column, which downstream readers
// split on whitespace.
func (p *ProductEntry) JoinedImageURLs() string {
	links := make([]string, 0, len(p.ImageLinks))
	for _, l := range p.ImageLinks {
		if l = strings.TrimSpace(l); l != "" {
			links = append(links, l)
		}
	}
	return strings.Join(links, " ")
}

// VATPercent parses the "23%" style VAT field into an integer percent.
// A missing field defaults to 0.
func (p *ProductEntry) VATPercent() (int, error) {
	raw := Value(p.VAT, "0%")
	vat, err := strconv.Atoi(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return 0, fmt.Errorf("invalid VAT value %q: %w", raw, err)
	}
	return vat, nil
}

// StockQuantity parses the stock field, defaulting to 0.
func (p *ProductEntry) StockQuantity() (int, error) {
	raw := Value(p.Stock, "0")
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid stock quantity %q: %w", raw, err)
	}
	return qty, nil
}

// decimalField parses a locale-plain numeric string, defaulting to 0.
func decimalField(raw, name string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(Value(raw, "0"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q: %w", name, raw, err)
	}
	return d, nil
}

func (p *ProductEntry) ListPriceDecimal() (decimal.Decimal, error) {
	return decimalField(p.ListPrice, "price")
}

func (p *ProductEntry) SuggestedPriceDecimal() (decimal.Decimal, error) {
	return decimalField(p.SuggestedPrice, "suggested price")
}

func (p *ProductEntry) PackageLengthDecimal() (decimal.Decimal, error) {
	return decimalField(p.PackageLength, "package length")
}

func (p *ProductEntry) PackageWidthDecimal() (decimal.Decimal, error) {
	return decimalField(p.PackageWidth, "package width")
}

func (p *ProductEntry) PackageHeightDecimal() (decimal.Decimal, error) {
	return decimalField(p.PackageHeight, "package height")
}

func (p *ProductEntry) GrossWeightDecimal() (decimal.Decimal, error) {
	return decimalField(p.GrossWeight, "gross weight")
}
