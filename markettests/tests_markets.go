package markettests

import (
	"fmt"
	"net/http"
	"time"

	"github.com/mercado-qa/market-contract-tests/servicedef"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	validCNPJ           = "80894215000132"
	shortCNPJ           = "808942150"
	nonexistentMarketID = 10000

	jsonContentType = "application/json"
)

// now is used for the unique part of created market names.
var now = time.Now

func uniqueMarketName() string {
	return fmt.Sprintf("Supermercado Booleano %d", now().UnixMilli())
}

func DoMarketTests(t *T) {
	t.Run("create market", func(t *T) {
		t.Post(t.URL("/mercado")).
			WithJSON(servicedef.MarketParams{
				Name:    uniqueMarketName(),
				CNPJ:    validCNPJ,
				Address: "Bairro Marisópolis - Centro, São Ludgero/SC",
			}).
			ExpectStatus(http.StatusCreated).
			ExpectHeaderContains("content-type", jsonContentType).
			CaptureInt("novoMercado.id", &t.State().MarketID).
			Send()
	})

	t.Run("create market with invalid CNPJ", func(t *T) {
		t.Post(t.URL("/mercado")).
			WithJSON(servicedef.MarketParams{
				Name:    "Mercado Mendes",
				CNPJ:    shortCNPJ,
				Address: "Bairro Parque Das Acácias - Centro, São Ludgero/SC",
			}).
			ExpectStatus(http.StatusBadRequest).
			ExpectJSONLike(ldvalue.ObjectBuild().
				Set("errors", ldvalue.ArrayOf(
					ldvalue.ObjectBuild().Set("msg", ldvalue.String("CNPJ deve ter 14 dígitos")).Build(),
				)).
				Build()).
			ExpectHeaderContains("content-type", jsonContentType).
			Send()
	})

	t.Run("list markets", func(t *T) {
		t.Get(t.URL("/mercado")).
			ExpectStatus(http.StatusOK).
			ExpectHeaderContains("content-type", jsonContentType).
			Send()
	})

	t.Run("get market by ID", func(t *T) {
		marketID := t.State().MarketID
		t.Get(t.URL("/mercado/%d", marketID)).
			ExpectStatus(http.StatusOK).
			ExpectJSONLike(ldvalue.ObjectBuild().
				Set("data", ldvalue.ObjectBuild().Set("id", ldvalue.Int(marketID)).Build()).
				Build()).
			Send()
	})

	t.Run("update nonexistent market", func(t *T) {
		t.Put(t.URL("/mercado/%d", nonexistentMarketID)).
			WithJSON(servicedef.MarketParams{
				Name:    "Mercado Kill",
				CNPJ:    validCNPJ,
				Address: "Bairro Marisópolis - Centro, São Ludgero/SC",
			}).
			ExpectStatus(http.StatusNotFound).
			ExpectBody(ldvalue.String("O mercado com o ID fornecido não foi encontrado.")).
			Send()
	})
}
