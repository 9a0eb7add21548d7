package markettests

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mercado-qa/market-contract-tests/servicedef"

	json "github.com/goccy/go-json"
)

const marketNotFoundMessage = "O mercado com o ID fornecido não foi encontrado."

// fakeMarketAPI is an in-memory imitation of the market API, with switches for making it
// misbehave in specific ways.
type fakeMarketAPI struct {
	tolerateDoubleDelete bool
	failMarketCreation   bool
	omitFruitID          bool
	cnpjMessage          string
	listMarketsDelay     time.Duration

	markets      map[int]*fakeMarket
	nextMarketID int
	nextItemID   int
	requests     []string
	lock         sync.Mutex
}

type fakeMarket struct {
	servicedef.Market
	categories map[string]map[string]map[int]servicedef.Product
}

func newFakeMarketAPI() *fakeMarketAPI {
	return &fakeMarketAPI{
		markets:      make(map[int]*fakeMarket),
		nextMarketID: 101,
		nextItemID:   501,
	}
}

func (f *fakeMarketAPI) requestLog() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeMarketAPI) marketNames() []string {
	f.lock.Lock()
	defer f.lock.Unlock()
	var ret []string
	for _, m := range f.markets {
		ret = append(ret, m.Name)
	}
	return ret
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	data, _ := json.Marshal(body)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func missingKey(key string) servicedef.MessageResponse {
	return servicedef.MessageResponse{Message: fmt.Sprintf("A key %s ainda não existe", key)}
}

func (f *fakeMarketAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == "/mercado" && f.listMarketsDelay > 0 {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(f.listMarketsDelay):
		}
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if segments[0] != "mercado" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(segments) == 1 {
		f.serveMarkets(w, r)
		return
	}
	id, err := strconv.Atoi(segments[1])
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if len(segments) == 2 {
		f.serveMarket(w, r, id)
		return
	}
	if segments[2] != "produtos" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	m := f.markets[id]
	if m == nil {
		writeJSON(w, http.StatusNotFound, marketNotFoundMessage)
		return
	}
	f.serveProducts(w, r, m, segments[3:])
}

func (f *fakeMarketAPI) serveMarkets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		var list []servicedef.Market
		for _, m := range f.markets {
			list = append(list, m.Market)
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": list})
	case http.MethodPost:
		if f.failMarketCreation {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		var params servicedef.MarketParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, servicedef.MessageResponse{Message: err.Error()})
			return
		}
		if len(params.CNPJ) != servicedef.CNPJLength {
			msg := f.cnpjMessage
			if msg == "" {
				msg = "CNPJ deve ter 14 dígitos"
			}
			writeJSON(w, http.StatusBadRequest, servicedef.ValidationErrorResponse{
				Errors: []servicedef.ValidationError{{Msg: msg, Path: "cnpj", Location: "body"}},
			})
			return
		}
		m := &fakeMarket{
			Market: servicedef.Market{ID: f.nextMarketID, Name: params.Name, CNPJ: params.CNPJ, Address: params.Address},
			categories: map[string]map[string]map[int]servicedef.Product{
				"hortifruit": {"frutas": {}},
				"acougue":    {"bovinos": {}},
				"frios":      {},
				"mercearia":  {},
			},
		}
		f.nextMarketID++
		f.markets[m.ID] = m
		writeJSON(w, http.StatusCreated, servicedef.CreateMarketResponse{
			Message:   "Mercado criado com sucesso!",
			NewMarket: m.Market,
		})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeMarketAPI) serveMarket(w http.ResponseWriter, r *http.Request, id int) {
	m := f.markets[id]
	if m == nil {
		writeJSON(w, http.StatusNotFound, marketNotFoundMessage)
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, servicedef.GetMarketResponse{Data: m.Market})
	case http.MethodPut:
		var params servicedef.MarketParams
		_ = json.NewDecoder(r.Body).Decode(&params)
		m.Name, m.CNPJ, m.Address = params.Name, params.CNPJ, params.Address
		writeJSON(w, http.StatusOK, servicedef.MessageResponse{Message: "ok"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeMarketAPI) serveProducts(w http.ResponseWriter, r *http.Request, m *fakeMarket, path []string) {
	if len(path) == 0 {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": m.categories})
		return
	}
	if len(path) < 2 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	category, ok := m.categories[path[0]]
	if !ok {
		writeJSON(w, http.StatusNotFound, missingKey(path[0]))
		return
	}
	items, ok := category[path[1]]
	if !ok {
		if r.Method == http.MethodGet {
			writeJSON(w, http.StatusNotFound, missingKey(path[1]))
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
		return
	}

	switch {
	case len(path) == 2 && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": items})

	case len(path) == 2 && r.Method == http.MethodPost:
		var params servicedef.ProductParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			writeJSON(w, http.StatusBadRequest, servicedef.MessageResponse{Message: err.Error()})
			return
		}
		product := servicedef.Product{ID: f.nextItemID, Name: params.Name, Price: params.Price}
		f.nextItemID++
		items[product.ID] = product
		created := map[string]interface{}{"id": product.ID, "nome": product.Name, "valor": json.RawMessage(product.Price.String())}
		if f.omitFruitID && path[1] == "frutas" {
			delete(created, "id")
		}
		wrapper := "novaFruta"
		if path[1] == "bovinos" {
			wrapper = "novoBovino"
		}
		writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Produto adicionado com sucesso!", wrapper: created})

	case len(path) == 3 && r.Method == http.MethodDelete:
		itemID, err := strconv.Atoi(path[2])
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if _, ok := items[itemID]; !ok && !f.tolerateDoubleDelete {
			writeJSON(w, http.StatusBadRequest, servicedef.MessageResponse{Message: "Produto não encontrado"})
			return
		}
		delete(items, itemID)
		writeJSON(w, http.StatusOK, servicedef.MessageResponse{Message: "Produto removido com sucesso!"})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}
