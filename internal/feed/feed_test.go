package feed

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<Document>
  <responsibleProducers>
    <p>
      <name>GoodHome Sp. z o.o.</name>
      <address>
        <countryCode>PL</countryCode>
        <street>ul. Przykladowa 1</street>
        <postalCode>00-001</postalCode>
        <city>Warszawa</city>
      </address>
      <contact>
        <email>biuro@goodhome.pl</email>
        <phoneNumber>+48 123 456 789</phoneNumber>
      </contact>
    </p>
  </responsibleProducers>
  <Produkt>
    <Indeks>X1</Indeks>
    <Nazwa><![CDATA[Wooden Blocks]]></Nazwa>
    <Ean>5901234123457</Ean>
    <opis><![CDATA[A box of wooden blocks.]]></opis>
    <Cena_z_cennika>49.99</Cena_z_cennika>
    <Vat>23%</Vat>
    <Stan_mag>12</Stan_mag>
    <Szt_dlugosc_opakowania>30.5</Szt_dlugosc_opakowania>
    <Szt_szerokosc_opakowania>20</Szt_szerokosc_opakowania>
    <Szt_wysokosc_opakowania>10</Szt_wysokosc_opakowania>
    <Szt_waga_brutto>1.25</Szt_waga_brutto>
    <linki_do_zdjec>
      <link_do_zdjecia>https://img.example.com/x1-front.jpg</link_do_zdjecia>
      <link_do_zdjecia>https://img.example.com/x1-back.jpg</link_do_zdjecia>
    </linki_do_zdjec>
    <Kategoria>Zabawki/Klocki</Kategoria>
    <Marka>GoodHome</Marka>
    <a name="Producent odpowiedzialny">GoodHome Sp. z o.o.</a>
    <a name="Material">drewno</a>
  </Produkt>
</Document>`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleFeed))
	require.NoError(t, err)

	require.Len(t, doc.Producers, 1)
	require.Len(t, doc.Products, 1)

	t.Run("producer fields", func(t *testing.T) {
		p := doc.Producers[0]
		assert.Equal(t, "GoodHome Sp. z o.o.", p.Name)
		assert.Equal(t, "PL", p.Address.CountryCode)
		assert.Equal(t, "ul. Przykladowa 1", p.Address.Street)
		assert.Equal(t, "00-001", p.Address.PostalCode)
		assert.Equal(t, "Warszawa", p.Address.City)
		assert.Equal(t, "biuro@goodhome.pl", p.Contact.Email)
		assert.Equal(t, "+48 123 456 789", p.Contact.PhoneNumber)
	})

	t.Run("product fields including CDATA", func(t *testing.T) {
		p := doc.Products[0]
		assert.Equal(t, "X1", p.Index)
		assert.Equal(t, "Wooden Blocks", p.Name)
		assert.Equal(t, "5901234123457", p.EAN)
		assert.Equal(t, "A box of wooden blocks.", p.Description)
		assert.Equal(t, "Zabawki/Klocki", p.CategoryPath)
		assert.Equal(t, "GoodHome", p.Brand)
	})

	t.Run("responsible producer from tagged attributes", func(t *testing.T) {
		p := doc.Products[0]
		assert.Equal(t, "GoodHome Sp. z o.o.", p.ResponsibleProducer())
	})

	t.Run("image links joined with spaces", func(t *testing.T) {
		p := doc.Products[0]
		assert.Equal(t,
			"https://img.example.com/x1-front.jpg https://img.example.com/x1-back.jpg",
			p.JoinedImageURLs())
	})

	t.Run("vat percent sign stripped", func(t *testing.T) {
		p := doc.Products[0]
		vat, err := p.VATPercent()
		require.NoError(t, err)
		assert.Equal(t, 23, vat)
	})

	t.Run("numeric coercion", func(t *testing.T) {
		p := doc.Products[0]

		price, err := p.ListPriceDecimal()
		require.NoError(t, err)
		assert.True(t, price.Equal(decimal.RequireFromString("49.99")))

		stock, err := p.StockQuantity()
		require.NoError(t, err)
		assert.Equal(t, 12, stock)

		weight, err := p.GrossWeightDecimal()
		require.NoError(t, err)
		assert.True(t, weight.Equal(decimal.RequireFromString("1.25")))
	})

	t.Run("missing optional fields use defaults", func(t *testing.T) {
		// The sample product has no suggested price.
		p := doc.Products[0]
		suggested, err := p.SuggestedPriceDecimal()
		require.NoError(t, err)
		assert.True(t, suggested.IsZero())
	})
}

func TestParseRejectsMalformedDocument(t *testing.T) {
	_, err := Parse(strings.NewReader("<Document><Produkt>"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse feed document")
}

func TestValue(t *testing.T) {
	assert.Equal(t, "abc", Value("  abc  ", "0"))
	assert.Equal(t, "0", Value("", "0"))
	assert.Equal(t, "0%", Value("   ", "0%"))
}

func TestProductEntryDefaults(t *testing.T) {
	var p ProductEntry

	vat, err := p.VATPercent()
	require.NoError(t, err)
	assert.Equal(t, 0, vat)

	stock, err := p.StockQuantity()
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	price, err := p.ListPriceDecimal()
	require.NoError(t, err)
	assert.True(t, price.IsZero())

	assert.Equal(t, "", p.ResponsibleProducer())
	assert.Equal(t, "", p.JoinedImageURLs())
}

func TestProductEntryRejectsBadNumbers(t *testing.T) {
	p := ProductEntry{VAT: "abc%", Stock: "lots", ListPrice: "n/a"}

	_, err := p.VATPercent()
	assert.Error(t, err)

	_, err = p.StockQuantity()
	assert.Error(t, err)

	_, err = p.ListPriceDecimal()
	assert.Error(t, err)
}
