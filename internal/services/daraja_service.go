package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/gommon/random"
)

// DarajaService handles all M-Pesa Daraja API interactions with placeholders
type DarajaService interface {
	InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef string) (*STKPushResponse, error)
	ParseCallback(rawData []byte) (*STKCallbackResult, error)
}

type darajaService struct {
	consumerKey    string
	consumerSecret string
	shortCode      string
	callbackURL    string
	baseURL        string
	http           *http.Client
}

type STKPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	TransactionType   string `json:"TransactionType"`
	Amount            string `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKCallbackResult is the flattened outcome of a Daraja STK callback.
// ResultCode 0 means the customer completed the payment.
type STKCallbackResult struct {
	CheckoutRequestID string
	ResultCode        int
	ResultDesc        string
	MpesaReceipt      string
	Amount            float64
	PhoneNumber       string
}

type stkCallbackEnvelope struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []struct {
					Name  string      `json:"Name"`
					Value interface{} `json:"Value"`
				} `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// NewDarajaService creates a new Daraja service instance
func NewDarajaService(consumerKey, consumerSecret, shortCode, callbackURL string) DarajaService {
	return &darajaService{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		shortCode:      shortCode,
		callbackURL:    callbackURL,
		baseURL:        "https://sandbox.safaricom.co.ke", // Daraja sandbox base URL
		http:           &http.Client{Timeout: 30 * time.Second},
	}
}

// InitiateSTKPush triggers an STK push prompt on the customer's phone.
// Without API credentials it runs in sandbox mode and synthesizes an
// accepted response so the payment flow can be exercised end to end.
func (s *darajaService) InitiateSTKPush(ctx context.Context, phoneNumber string, amount float64, accountRef string) (*STKPushResponse, error) {
	payload := &STKPushRequest{
		BusinessShortCode: s.shortCode,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            fmt.Sprintf("%.0f", amount),
		PartyA:            phoneNumber,
		PartyB:            s.shortCode,
		PhoneNumber:       phoneNumber,
		CallBackURL:       s.callbackURL,
		AccountReference:  accountRef,
		TransactionDesc:   "Rent payment",
	}

	if s.consumerKey != "" && s.consumerSecret != "" {
		// TODO: swap basic auth for an OAuth bearer token before production use
		raw, err := s.makeRequest(ctx, http.MethodPost, "/mpesa/stkpush/v1/processrequest", payload)
		if err != nil {
			return nil, fmt.Errorf("stk push request failed: %w", err)
		}
		var resp STKPushResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("failed to parse stk push response: %w", err)
		}
		return &resp, nil
	}

	checkoutID := fmt.Sprintf("ws_CO_%s", random.String(20, random.Numeric))

	return &STKPushResponse{
		MerchantRequestID:   fmt.Sprintf("mr_%s", random.String(12, random.Numeric)),
		CheckoutRequestID:   checkoutID,
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}, nil
}

// ParseCallback decodes a Daraja STK callback payload
func (s *darajaService) ParseCallback(rawData []byte) (*STKCallbackResult, error) {
	var envelope stkCallbackEnvelope
	if err := json.Unmarshal(rawData, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse callback data: %v", err)
	}

	cb := envelope.Body.StkCallback
	if cb.CheckoutRequestID == "" {
		return nil, fmt.Errorf("callback missing CheckoutRequestID")
	}

	result := &STKCallbackResult{
		CheckoutRequestID: cb.CheckoutRequestID,
		ResultCode:        cb.ResultCode,
		ResultDesc:        cb.ResultDesc,
	}
	for _, item := range cb.CallbackMetadata.Item {
		switch item.Name {
		case "MpesaReceiptNumber":
			if v, ok := item.Value.(string); ok {
				result.MpesaReceipt = v
			}
		case "Amount":
			if v, ok := item.Value.(float64); ok {
				result.Amount = v
			}
		case "PhoneNumber":
			switch v := item.Value.(type) {
			case string:
				result.PhoneNumber = v
			case float64:
				result.PhoneNumber = fmt.Sprintf("%.0f", v)
			}
		}
	}
	return result, nil
}

func (s *darajaService) makeRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewBuffer(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(s.consumerKey, s.consumerSecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// NormalizePhoneNumber converts local formats (07..., +254...) to 2547...
func NormalizePhoneNumber(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = strings.TrimPrefix(phone, "+")
	if strings.HasPrefix(phone, "0") {
		return "254" + phone[1:]
	}
	return phone
}
