package servicedef

import (
	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// CNPJLength is the number of digits the service requires in a CNPJ.
const CNPJLength = 14

// MarketParams is the body of a request to create or update a market.
type MarketParams struct {
	Name    string `json:"nome"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"endereco"`
}

// Market is a market as returned by the service.
type Market struct {
	ID      int    `json:"id"`
	Name    string `json:"nome"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"endereco"`
}

// CreateMarketResponse is the body of a successful response to creating a market.
type CreateMarketResponse struct {
	Message   string `json:"message,omitempty"`
	NewMarket Market `json:"novoMercado"`
}

// GetMarketResponse is the body of a successful response to fetching one market.
type GetMarketResponse struct {
	Data Market `json:"data"`
}

// ValidationError is one entry of the "errors" array in a 400 response.
type ValidationError struct {
	Msg      string `json:"msg"`
	Path     string `json:"path,omitempty"`
	Location string `json:"location,omitempty"`
}

// ValidationErrorResponse is the body of a 400 response to an invalid request.
type ValidationErrorResponse struct {
	Errors []ValidationError `json:"errors"`
}

// MessageResponse is the body of responses that only carry a message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ProductParams is the body of a request to add a product to one of a market's categories.
type ProductParams struct {
	Name  string
	Price decimal.Decimal
}

type productParamsJSON struct {
	Name  string          `json:"nome"`
	Price json.RawMessage `json:"valor"`
}

// MarshalJSON writes the price as a JSON number; the service rejects quoted prices.
func (p ProductParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(productParamsJSON{Name: p.Name, Price: json.RawMessage(p.Price.String())})
}

// UnmarshalJSON accepts the price either as a number or as a string.
func (p *ProductParams) UnmarshalJSON(data []byte) error {
	var raw productParamsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var price decimal.Decimal
	if len(raw.Price) > 0 {
		if err := price.UnmarshalJSON(raw.Price); err != nil {
			return err
		}
	}
	*p = ProductParams{Name: raw.Name, Price: price}
	return nil
}

// Product is a product as returned by the service.
type Product struct {
	ID    int             `json:"id"`
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"valor"`
}

// CreateFruitResponse is the body of a successful response to adding a fruit.
type CreateFruitResponse struct {
	Message  string  `json:"message,omitempty"`
	NewFruit Product `json:"novaFruta"`
}

// CreateCattleResponse is the body of a successful response to adding a beef cut.
type CreateCattleResponse struct {
	Message   string  `json:"message,omitempty"`
	NewCattle Product `json:"novoBovino"`
}
