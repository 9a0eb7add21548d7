package markettests

import (
	"fmt"
	"net/http"

	"github.com/mercado-qa/market-contract-tests/servicedef"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func missingKeyMessage(key string) ldvalue.Value {
	return ldvalue.ObjectBuild().
		Set("message", ldvalue.String(fmt.Sprintf("A key %s ainda não existe", key))).
		Build()
}

func DoProductTests(t *T) {
	productsURL := func(t *T, categoryPath string) string {
		return t.URL("/mercado/%d/produtos%s", t.State().MarketID, categoryPath)
	}

	t.Run("list market products", func(t *T) {
		t.Get(productsURL(t, "")).
			ExpectStatus(http.StatusOK).
			Send()
	})

	t.Run("create fruit", func(t *T) {
		t.Post(productsURL(t, "/hortifruit/frutas")).
			WithJSON(servicedef.ProductParams{Name: "Tangerina", Price: decimal.NewFromInt(5)}).
			ExpectStatus(http.StatusCreated).
			CaptureInt("novaFruta.id", &t.State().FruitID).
			Send()
	})

	t.Run("list missing cold cuts subcategory", func(t *T) {
		t.Get(productsURL(t, "/frios/outros")).
			ExpectStatus(http.StatusNotFound).
			ExpectBody(missingKeyMessage("outros")).
			Send()
	})

	t.Run("delete fruit", func(t *T) {
		t.Delete(productsURL(t, fmt.Sprintf("/hortifruit/frutas/%d", t.State().FruitID))).
			ExpectStatus(http.StatusOK).
			Send()
	})

	t.Run("delete already deleted fruit", func(t *T) {
		t.Delete(productsURL(t, fmt.Sprintf("/hortifruit/frutas/%d", t.State().FruitID))).
			ExpectStatus(http.StatusBadRequest).
			Send()
	})

	t.Run("create beef cut", func(t *T) {
		t.Post(productsURL(t, "/acougue/bovinos")).
			WithJSON(servicedef.ProductParams{Name: "Paleta Bovina", Price: decimal.NewFromInt(20)}).
			ExpectStatus(http.StatusCreated).
			CaptureInt("novoBovino.id", &t.State().CattleID).
			Send()
	})

	t.Run("list beef cuts", func(t *T) {
		t.Get(productsURL(t, "/acougue/bovinos")).
			ExpectStatus(http.StatusOK).
			Send()
	})

	t.Run("delete beef cut", func(t *T) {
		t.Delete(productsURL(t, fmt.Sprintf("/acougue/bovinos/%d", t.State().CattleID))).
			ExpectStatus(http.StatusOK).
			Send()
	})

	t.Run("list missing pasta subcategory", func(t *T) {
		t.Get(productsURL(t, "/mercearia/massas")).
			ExpectStatus(http.StatusNotFound).
			ExpectBody(missingKeyMessage("massas")).
			Send()
	})

	t.Run("post to nonexistent endpoint", func(t *T) {
		t.Post(productsURL(t, "/mercearia/gelo")).
			WithJSON(servicedef.ProductParams{Name: "Macarrão do Zé", Price: decimal.NewFromInt(10)}).
			ExpectStatus(http.StatusNotFound).
			Send()
	})
}
