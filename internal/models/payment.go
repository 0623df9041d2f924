package models

// Payment document field names
const PaymentFieldEmail = "email"

// CurrencyUSD is the only currency payment intents are created in
const CurrencyUSD = "usd"

// PaymentIntentRequest is the body of POST /create-payment-intent; price is in dollars
type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

// PaymentIntentResponse carries the client secret used by the browser to confirm the payment
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
