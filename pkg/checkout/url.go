// Package checkout builds redirect URLs for the provider's hosted checkout page.
package checkout

import (
	"encoding/base64"
	"strconv"
	"strings"
)

const (
	DefaultTestURL       = "https://test.paycom.uz"
	DefaultProductionURL = "https://checkout.paycom.uz"
)

type Config struct {
	MerchantID    string `mapstructure:"merchant_id"`
	TestMode      bool   `mapstructure:"test_mode"`
	TestURL       string `mapstructure:"test_url"`
	ProductionURL string `mapstructure:"production_url"`
	Lang          string `mapstructure:"lang"`
	CallbackURL   string `mapstructure:"callback_url"`
}

// BaseURL returns the checkout host selected by TestMode.
func (c Config) BaseURL() string {
	if c.TestMode {
		if c.TestURL == "" {
			return DefaultTestURL
		}
		return c.TestURL
	}
	if c.ProductionURL == "" {
		return DefaultProductionURL
	}
	return c.ProductionURL
}

// Params builds checkout parameters for one order using the configured merchant, language and callback.
func (c Config) Params(orderID string, amount int64) Params {
	return Params{
		MerchantID:  c.MerchantID,
		OrderID:     orderID,
		Amount:      amount,
		Lang:        c.Lang,
		CallbackURL: c.CallbackURL,
	}
}

type Params struct {
	MerchantID  string
	OrderID     string
	Amount      int64
	Lang        string
	CallbackURL string
}

// Encode renders the key-value grammar the provider decodes. Keys are always emitted in the same order.
func Encode(p Params) string {
	var b strings.Builder
	b.WriteString("m=")
	b.WriteString(p.MerchantID)
	b.WriteString(";ac.order_id=")
	b.WriteString(p.OrderID)
	b.WriteString(";a=")
	b.WriteString(strconv.FormatInt(p.Amount, 10))

	if p.Lang != "" {
		b.WriteString(";l=")
		b.WriteString(p.Lang)
	}
	if p.CallbackURL != "" {
		b.WriteString(";c=")
		b.WriteString(p.CallbackURL)
	}

	return b.String()
}

func URL(baseURL string, p Params) string {
	return strings.TrimRight(baseURL, "/") + "/" + base64.StdEncoding.EncodeToString([]byte(Encode(p)))
}
