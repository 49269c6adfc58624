package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type DarajaServiceTestSuite struct {
	suite.Suite
}

func (s *DarajaServiceTestSuite) TestSandboxModeSynthesizesAcceptance() {
	svc := NewDarajaService("", "", "174379", "http://localhost:8080/api/webhooks/daraja")

	resp, err := svc.InitiateSTKPush(context.Background(), "254712345678", 15000, "RENT-A1")

	s.NoError(err)
	s.Require().NotNil(resp)
	s.Equal("0", resp.ResponseCode)
	s.True(strings.HasPrefix(resp.CheckoutRequestID, "ws_CO_"))
	s.NotEmpty(resp.MerchantRequestID)
}

func (s *DarajaServiceTestSuite) TestCredentialedPushPostsRequest() {
	var got STKPushRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/mpesa/stkpush/v1/processrequest", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		s.True(ok)
		s.Equal("key", user)
		s.Equal("secret", pass)
		s.NoError(json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(&STKPushResponse{
			MerchantRequestID: "mr_001",
			CheckoutRequestID: "ws_CO_987654321",
			ResponseCode:      "0",
		})
	}))
	defer server.Close()

	svc := &darajaService{
		consumerKey:    "key",
		consumerSecret: "secret",
		shortCode:      "174379",
		callbackURL:    "https://rentora.example/api/webhooks/daraja",
		baseURL:        server.URL,
		http:           &http.Client{Timeout: 5 * time.Second},
	}

	resp, err := svc.InitiateSTKPush(context.Background(), "254712345678", 25000, "RENT-B2")

	s.NoError(err)
	s.Require().NotNil(resp)
	s.Equal("ws_CO_987654321", resp.CheckoutRequestID)
	s.Equal("174379", got.BusinessShortCode)
	s.Equal("CustomerPayBillOnline", got.TransactionType)
	s.Equal("25000", got.Amount)
	s.Equal("254712345678", got.PhoneNumber)
	s.Equal("https://rentora.example/api/webhooks/daraja", got.CallBackURL)
	s.Equal("RENT-B2", got.AccountReference)
}

func (s *DarajaServiceTestSuite) TestParseCallbackSuccess() {
	svc := NewDarajaService("", "", "174379", "")
	payload := []byte(`{"Body":{"stkCallback":{"MerchantRequestID":"mr_001",
		"CheckoutRequestID":"ws_CO_123","ResultCode":0,"ResultDesc":"Success",
		"CallbackMetadata":{"Item":[
			{"Name":"Amount","Value":15000},
			{"Name":"MpesaReceiptNumber","Value":"QK12XYZ789"},
			{"Name":"PhoneNumber","Value":254712345678}
		]}}}}`)

	result, err := svc.ParseCallback(payload)

	s.NoError(err)
	s.Require().NotNil(result)
	s.Equal("ws_CO_123", result.CheckoutRequestID)
	s.Equal(0, result.ResultCode)
	s.Equal("QK12XYZ789", result.MpesaReceipt)
	s.Equal(15000.0, result.Amount)
	s.Equal("254712345678", result.PhoneNumber)
}

func (s *DarajaServiceTestSuite) TestParseCallbackMissingCheckoutID() {
	svc := NewDarajaService("", "", "174379", "")

	result, err := svc.ParseCallback([]byte(`{"Body":{"stkCallback":{}}}`))

	s.Error(err)
	s.Nil(result)
}

func (s *DarajaServiceTestSuite) TestNormalizePhoneNumber() {
	s.Equal("254712345678", NormalizePhoneNumber("0712345678"))
	s.Equal("254712345678", NormalizePhoneNumber("+254712345678"))
	s.Equal("254712345678", NormalizePhoneNumber(" 254712345678 "))
}

func TestDarajaServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DarajaServiceTestSuite))
}
