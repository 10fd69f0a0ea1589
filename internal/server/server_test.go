package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	contactdomain "github.com/invoiceflow/invoiceflow/internal/contact/domain"
	invoicedomain "github.com/invoiceflow/invoiceflow/internal/invoice/domain"
	"github.com/invoiceflow/invoiceflow/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

type fakeInvoiceService struct {
	createErr error
	statusErr error
	getErr    error
	invoice   invoicedomain.Invoice
	lastUser  snowflake.ID
}

func (f *fakeInvoiceService) Create(ctx context.Context, req invoicedomain.CreateInvoiceRequest) (invoicedomain.Invoice, error) {
	f.lastUser, _ = usercontext.UserIDFromContext(ctx)
	if f.createErr != nil {
		return invoicedomain.Invoice{}, f.createErr
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) Update(ctx context.Context, id string, req invoicedomain.UpdateInvoiceRequest) (invoicedomain.Invoice, error) {
	return f.invoice, nil
}

func (f *fakeInvoiceService) UpdateStatus(ctx context.Context, id string, req invoicedomain.UpdateStatusRequest) (invoicedomain.Invoice, error) {
	if f.statusErr != nil {
		return invoicedomain.Invoice{}, f.statusErr
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	if f.getErr != nil {
		return invoicedomain.Invoice{}, f.getErr
	}
	return f.invoice, nil
}

func (f *fakeInvoiceService) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	return invoicedomain.ListInvoiceResponse{Invoices: []invoicedomain.Invoice{f.invoice}}, nil
}

func (f *fakeInvoiceService) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeContactService struct{}

func (f *fakeContactService) Create(ctx context.Context, req contactdomain.CreateContactRequest) (contactdomain.Contact, error) {
	return contactdomain.Contact{Name: req.Name}, nil
}

func (f *fakeContactService) Update(ctx context.Context, id string, req contactdomain.UpdateContactRequest) (contactdomain.Contact, error) {
	return contactdomain.Contact{}, nil
}

func (f *fakeContactService) GetByID(ctx context.Context, req contactdomain.GetContactRequest) (contactdomain.Contact, error) {
	return contactdomain.Contact{}, contactdomain.ErrNotFound
}

func (f *fakeContactService) List(ctx context.Context, req contactdomain.ListContactRequest) (contactdomain.ListContactResponse, error) {
	return contactdomain.ListContactResponse{}, nil
}

func (f *fakeContactService) Delete(ctx context.Context, id string) error {
	return nil
}

type fakeSettingService struct {
	values datatypes.JSONMap
}

func (f *fakeSettingService) Get(ctx context.Context) (datatypes.JSONMap, error) {
	return f.values, nil
}

func (f *fakeSettingService) Replace(ctx context.Context, values datatypes.JSONMap) (datatypes.JSONMap, error) {
	f.values = values
	return f.values, nil
}

func (f *fakeSettingService) Patch(ctx context.Context, key string, value any) (datatypes.JSONMap, error) {
	if f.values == nil {
		f.values = datatypes.JSONMap{}
	}
	f.values[key] = value
	return f.values, nil
}

func newTestServer(t *testing.T, invoiceSvc invoicedomain.Service) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	svc := &Server{
		engine:     engine,
		invoiceSvc: invoiceSvc,
		contactSvc: &fakeContactService{},
		settingSvc: &fakeSettingService{},
	}
	svc.registerAPIRoutes()
	return svc
}

func doRequest(s *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(HeaderUser, userID)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	s := newTestServer(t, &fakeInvoiceService{})

	rec := doRequest(s, http.MethodGet, "/api/invoices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/invoices", "not-a-snowflake", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRequiredInjectsUser(t *testing.T) {
	fake := &fakeInvoiceService{}
	s := newTestServer(t, fake)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate()

	rec := doRequest(s, http.MethodPost, "/api/invoices", userID.String(), invoicedomain.CreateInvoiceRequest{})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, userID, fake.lastUser)
}

func TestCreateInvoiceStatusCodes(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"created", nil, http.StatusCreated},
		{"unknown client", invoicedomain.ErrClientNotFound, http.StatusNotFound},
		{"duplicate number", invoicedomain.ErrDuplicateInvoiceNumber, http.StatusConflict},
		{"bad quantity", invoicedomain.ErrInvalidQuantity, http.StatusBadRequest},
		{"missing unit price", invoicedomain.ErrMissingUnitPrice, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &fakeInvoiceService{createErr: tc.err})
			rec := doRequest(s, http.MethodPost, "/api/invoices", userID, invoicedomain.CreateInvoiceRequest{})
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestUpdateStatusTransitionErrors(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()
	invoiceID := node.Generate().String()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid transition", invoicedomain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"missing payment date", invoicedomain.ErrMissingPaymentDate, http.StatusUnprocessableEntity},
		{"missing payment method", invoicedomain.ErrMissingPaymentMethod, http.StatusUnprocessableEntity},
		{"unknown state", invoicedomain.ErrInvalidState, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestServer(t, &fakeInvoiceService{statusErr: tc.err})
			rec := doRequest(s, http.MethodPatch, "/api/invoices/"+invoiceID+"/status", userID, invoicedomain.UpdateStatusRequest{
				State: invoicedomain.StateSent,
			})
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestGetInvoiceNotFound(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()
	invoiceID := node.Generate().String()

	s := newTestServer(t, &fakeInvoiceService{getErr: invoicedomain.ErrNotFound})
	rec := doRequest(s, http.MethodGet, "/api/invoices/"+invoiceID, userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var payload errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "not_found", payload.Error.Type)
}

func TestGetInvoiceRejectsMalformedID(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()

	s := newTestServer(t, &fakeInvoiceService{})
	rec := doRequest(s, http.MethodGet, "/api/invoices/abc", userID, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContactNotFoundMapsTo404(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()
	contactID := node.Generate().String()

	s := newTestServer(t, &fakeInvoiceService{})
	rec := doRequest(s, http.MethodGet, "/api/contacts/"+contactID, userID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	userID := node.Generate().String()

	s := newTestServer(t, &fakeInvoiceService{})

	rec := doRequest(s, http.MethodPut, "/api/settings", userID, map[string]any{"currency": "EUR"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(s, http.MethodGet, "/api/settings", userID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "EUR", payload.Data["currency"])
}

func TestClassifyErrorForLog(t *testing.T) {
	typ, code := classifyErrorForLog(invoicedomain.ErrInvalidTransition)
	assert.Equal(t, "transition", typ)
	assert.Equal(t, "invalid_transition", code)

	typ, code = classifyErrorForLog(invoicedomain.ErrDuplicateInvoiceNumber)
	assert.Equal(t, "conflict", typ)
	assert.Equal(t, "conflict", code)

	typ, code = classifyErrorForLog(invoicedomain.ErrInvalidQuantity)
	assert.Equal(t, "validation", typ)
	assert.Equal(t, "invalid_quantity", code)
}
