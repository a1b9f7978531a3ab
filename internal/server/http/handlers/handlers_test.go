package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/darkahs/storefront/internal/adapter/paystack"
	"github.com/darkahs/storefront/internal/checkout"
	domainErrors "github.com/darkahs/storefront/internal/domain/errors"
	"github.com/darkahs/storefront/internal/domain/model"
	"github.com/darkahs/storefront/internal/server/http/dto"
	"github.com/darkahs/storefront/internal/server/http/middleware"
	testhelpers "github.com/darkahs/storefront/internal/test"
	"github.com/darkahs/storefront/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonHeaders() map[string]string {
	return map[string]string{"Content-Type": "application/json"}
}

func asUser(userID string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}

	c.Set(middleware.UserIDContextKey, "u42")
	if got := CurrentUserID(c); got != "u42" {
		t.Fatalf("expected u42, got %q", got)
	}
}

// --- auth ---

func TestAuthHandlerRegister(t *testing.T) {
	name := testhelpers.RandomASCIIString(5, 10)
	body, _ := json.Marshal(dto.RegisterRequest{Name: name, Email: "ama@example.com", Password: "longenough1"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(_ context.Context, gotName, gotEmail, gotPassword string) (string, error) {
		if gotName != name || gotEmail != "ama@example.com" || gotPassword != "longenough1" {
			t.Fatalf("unexpected registration details: %q %q %q", gotName, gotEmail, gotPassword)
		}
		return "session-token", nil
	}})

	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	var payload dto.AuthResponse
	json.Unmarshal(resp.Body.Bytes(), &payload)
	if !payload.Success || payload.Token != "session-token" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestAuthHandlerRegisterValidation(t *testing.T) {
	cases := []dto.RegisterRequest{
		{Name: "", Email: "a@b.c", Password: "longenough1"},
		{Name: "Ama", Email: "not-an-email", Password: "longenough1"},
		{Name: "Ama", Email: "a@b.c", Password: "short"},
	}
	for _, req := range cases {
		body, _ := json.Marshal(req)
		resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body, jsonHeaders())
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %+v, got %d", req, resp.Code)
		}
	}
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	body, _ := json.Marshal(dto.RegisterRequest{Name: "Ama", Email: "ama@example.com", Password: "longenough1"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string, string) (string, error) {
		return "", domainErrors.ErrAlreadyExists
	}})
	resp := performRequest(t, http.MethodPost, "/register", handler.Register, nil, body, jsonHeaders())
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginInvalidCredentials(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "ama@example.com", Password: "wrong"})
	handler := NewAuthHandler(testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}})
	resp := performRequest(t, http.MethodPost, "/login", handler.Login, nil, body, jsonHeaders())
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthHandlerAdminLogin(t *testing.T) {
	body, _ := json.Marshal(dto.LoginRequest{Email: "admin@example.com", Password: "sesame"})
	resp := performRequest(t, http.MethodPost, "/admin", NewAuthHandler(testhelpers.AuthFacadeStub{}).AdminLogin, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer admin-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
}

// --- orders ---

func TestOrderHandlerVerifySuccess(t *testing.T) {
	order := &model.Order{
		ID:               "o1",
		Reference:        "ref-1",
		TotalAmount:      150,
		Status:           model.OrderStatusProcessing,
		PaymentConfirmed: true,
		PaymentMethod:    model.PaymentMethodPaystack,
	}
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{VerifyFn: func(_ context.Context, reference string) (*model.Order, bool, error) {
		if reference != "ref-1" {
			t.Fatalf("unexpected reference %q", reference)
		}
		return order, true, nil
	}})

	body, _ := json.Marshal(dto.VerifyRequest{Reference: "ref-1"})
	resp := performRequest(t, http.MethodPost, "/verify", handler.Verify, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.VerifyResponse
	json.Unmarshal(resp.Body.Bytes(), &payload)
	if !payload.Success || payload.Order.ID != "o1" || payload.Order.Amount != 150 {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestOrderHandlerVerifyErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"empty reference", domainErrors.ErrEmptyReference, http.StatusBadRequest},
		{"rejected payment", paystack.RejectedError{Status: "failed"}, http.StatusBadRequest},
		{"bad metadata", &checkout.DecodeError{Stage: checkout.StageItems, Err: errors.New("broken")}, http.StatusBadRequest},
		{"gateway down", paystack.ErrUnavailable, http.StatusBadGateway},
		{"gateway garbage", paystack.ErrBadResponse, http.StatusBadGateway},
		{"storage failure", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(testhelpers.OrderFacadeStub{VerifyFn: func(context.Context, string) (*model.Order, bool, error) {
				return nil, false, tc.err
			}})
			body, _ := json.Marshal(dto.VerifyRequest{Reference: "ref-x"})
			resp := performRequest(t, http.MethodPost, "/verify", handler.Verify, nil, body, jsonHeaders())
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
		})
	}
}

func TestOrderHandlerVerifyRequiresBody(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/verify", NewOrderHandler(testhelpers.OrderFacadeStub{}).Verify, nil, []byte("not json"), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerUserOrders(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersFn: func(_ context.Context, buyerID string) ([]model.Order, error) {
		if buyerID != "u7" {
			t.Fatalf("unexpected buyer %q", buyerID)
		}
		return []model.Order{{ID: "o1", BuyerID: buyerID}}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/userorders", handler.UserOrders, asUser("u7"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.OrderListResponse
	json.Unmarshal(resp.Body.Bytes(), &payload)
	if len(payload.Orders) != 1 || payload.Orders[0].ID != "o1" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestOrderHandlerUserOrdersEmptyIsArray(t *testing.T) {
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{OrdersFn: func(context.Context, string) ([]model.Order, error) {
		return nil, nil
	}})
	resp := performRequest(t, http.MethodPost, "/userorders", handler.UserOrders, asUser("u7"), nil, nil)
	if !strings.Contains(resp.Body.String(), `"orders":[]`) {
		t.Fatalf("expected empty array, got %s", resp.Body.String())
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var gotID string
	var gotStatus model.OrderStatus
	handler := NewOrderHandler(testhelpers.OrderFacadeStub{UpdateStatusFn: func(_ context.Context, orderID string, status model.OrderStatus) error {
		gotID = orderID
		gotStatus = status
		return nil
	}})

	body, _ := json.Marshal(dto.StatusUpdateRequest{OrderID: "o1", Status: "Shipped"})
	resp := performRequest(t, http.MethodPost, "/status", handler.UpdateStatus, nil, body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotID != "o1" || gotStatus != model.OrderStatusShipped {
		t.Fatalf("unexpected call %q %q", gotID, gotStatus)
	}
}

func TestOrderHandlerUpdateStatusErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domainErrors.ErrInvalidStatus, http.StatusBadRequest},
		{domainErrors.ErrNotFound, http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		handler := NewOrderHandler(testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, string, model.OrderStatus) error {
			return tc.err
		}})
		body, _ := json.Marshal(dto.StatusUpdateRequest{OrderID: "o1", Status: "Shipped"})
		resp := performRequest(t, http.MethodPost, "/status", handler.UpdateStatus, nil, body, jsonHeaders())
		if resp.Code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, resp.Code)
		}
	}
}

// --- cart ---

func TestCartHandlerAdd(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{AddFn: func(_ context.Context, userID, productID, size string) (model.Cart, error) {
		if userID != "u1" || productID != "p1" || size != "M" {
			t.Fatalf("unexpected args %q %q %q", userID, productID, size)
		}
		cart := model.NewCart()
		cart.Add(productID, size)
		return cart, nil
	}})

	body, _ := json.Marshal(dto.CartAddRequest{ItemID: "p1", Size: "M"})
	resp := performRequest(t, http.MethodPost, "/add", handler.Add, asUser("u1"), body, jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.CartResponse
	json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload.CartData["p1"]["M"] != 1 {
		t.Fatalf("unexpected cart %s", resp.Body.String())
	}
}

func TestCartHandlerAddValidation(t *testing.T) {
	body, _ := json.Marshal(dto.CartAddRequest{ItemID: "", Size: "M"})
	resp := performRequest(t, http.MethodPost, "/add", NewCartHandler(testhelpers.CartFacadeStub{}).Add, asUser("u1"), body, jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartHandlerUpdateRequiresQuantity(t *testing.T) {
	// quantity must be present, but zero is a legal value.
	resp := performRequest(t, http.MethodPost, "/update", NewCartHandler(testhelpers.CartFacadeStub{}).Update,
		asUser("u1"), []byte(`{"itemId":"p1","size":"M"}`), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without quantity, got %d", resp.Code)
	}

	var gotQuantity = -1
	handler := NewCartHandler(testhelpers.CartFacadeStub{UpdateFn: func(_ context.Context, _, _, _ string, quantity int) (model.Cart, error) {
		gotQuantity = quantity
		return model.NewCart(), nil
	}})
	resp = performRequest(t, http.MethodPost, "/update", handler.Update,
		asUser("u1"), []byte(`{"itemId":"p1","size":"M","quantity":0}`), jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for zero quantity, got %d", resp.Code)
	}
	if gotQuantity != 0 {
		t.Fatalf("expected zero quantity passed through, got %d", gotQuantity)
	}
}

func TestCartHandlerUpdateMissingItem(t *testing.T) {
	handler := NewCartHandler(testhelpers.CartFacadeStub{UpdateFn: func(context.Context, string, string, string, int) (model.Cart, error) {
		return nil, domainErrors.ErrItemNotInCart
	}})
	resp := performRequest(t, http.MethodPost, "/update", handler.Update,
		asUser("u1"), []byte(`{"itemId":"ghost","size":"M","quantity":2}`), jsonHeaders())
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartHandlerClear(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/clear", NewCartHandler(testhelpers.CartFacadeStub{}).Clear, asUser("u1"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"cartData":{}`) {
		t.Fatalf("expected empty cart object, got %s", resp.Body.String())
	}
}

// --- products ---

func multipartProductBody(t *testing.T, fields map[string]string, images map[string][]byte) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	for field, data := range images {
		part, err := writer.CreateFormFile(field, field+".jpg")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		part.Write(data)
	}
	writer.Close()
	return buf.Bytes(), writer.FormDataContentType()
}

func TestProductHandlerAdd(t *testing.T) {
	var gotInput usecase.ProductInput
	var gotImages int
	handler := NewProductHandler(testhelpers.ProductFacadeStub{AddFn: func(_ context.Context, in usecase.ProductInput, images []usecase.ImageFile) (*model.Product, error) {
		gotInput = in
		gotImages = len(images)
		return &model.Product{ID: "p1", Name: in.Name, Price: in.Price}, nil
	}})

	body, contentType := multipartProductBody(t, map[string]string{
		"name":        "Crew Tee",
		"description": "desc",
		"price":       "120.5",
		"category":    "Men",
		"subCategory": "Topwear",
		"sizes":       `["S","M"]`,
		"bestseller":  "true",
	}, map[string][]byte{"image1": []byte("img-one"), "image2": []byte("img-two")})

	resp := performRequest(t, http.MethodPost, "/add", handler.Add, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.Name != "Crew Tee" || gotInput.Price != 120.5 || !gotInput.Bestseller {
		t.Fatalf("unexpected input %+v", gotInput)
	}
	if len(gotInput.Sizes) != 2 || gotInput.Sizes[0] != "S" {
		t.Fatalf("unexpected sizes %v", gotInput.Sizes)
	}
	if gotImages != 2 {
		t.Fatalf("expected two images, got %d", gotImages)
	}
}

func TestProductHandlerAddBadPrice(t *testing.T) {
	body, contentType := multipartProductBody(t, map[string]string{"name": "Tee", "price": "not-a-number"}, nil)
	resp := performRequest(t, http.MethodPost, "/add", NewProductHandler(testhelpers.ProductFacadeStub{}).Add, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestProductHandlerAddValidationFailure(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{AddFn: func(context.Context, usecase.ProductInput, []usecase.ImageFile) (*model.Product, error) {
		return nil, &usecase.ValidationError{Problems: []string{"name is required"}}
	}})
	body, contentType := multipartProductBody(t, map[string]string{"price": "10"}, nil)
	resp := performRequest(t, http.MethodPost, "/add", handler.Add, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "name is required") {
		t.Fatalf("expected validation message, got %s", resp.Body.String())
	}
}

func TestProductHandlerUpdateRequiresID(t *testing.T) {
	body, contentType := multipartProductBody(t, map[string]string{"name": "Tee"}, nil)
	resp := performRequest(t, http.MethodPost, "/update", NewProductHandler(testhelpers.ProductFacadeStub{}).Update, nil, body, map[string]string{"Content-Type": contentType})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without id, got %d", resp.Code)
	}
}

func TestProductHandlerRemove(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{RemoveFn: func(_ context.Context, id string) (*model.Product, error) {
		if id != "p1" {
			t.Fatalf("unexpected id %q", id)
		}
		return &model.Product{ID: id, Name: "Tee"}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/remove", handler.Remove, nil, []byte(`{"productId":"p1"}`), jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestProductHandlerRemoveNotFound(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{RemoveFn: func(context.Context, string) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}})
	resp := performRequest(t, http.MethodPost, "/remove", handler.Remove, nil, []byte(`{"productId":"ghost"}`), jsonHeaders())
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestProductHandlerList(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{ListFn: func(_ context.Context, page, limit int) ([]model.Product, int64, error) {
		if page != 2 || limit != 10 {
			t.Fatalf("unexpected paging %d %d", page, limit)
		}
		return []model.Product{{ID: "p1", Name: "Tee"}}, 21, nil
	}})
	router := gin.New()
	router.GET("/list", handler.List)
	req := httptest.NewRequest(http.MethodGet, "/list?page=2&limit=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload dto.ProductListResponse
	json.Unmarshal(w.Body.Bytes(), &payload)
	if payload.Total != 21 || len(payload.Products) != 1 {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestProductHandlerSingle(t *testing.T) {
	handler := NewProductHandler(testhelpers.ProductFacadeStub{GetFn: func(_ context.Context, id string) (*model.Product, error) {
		return &model.Product{ID: id, Name: "Tee"}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/single", handler.Single, nil, []byte(`{"productId":"p1"}`), jsonHeaders())
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var payload dto.ProductItemResponse
	json.Unmarshal(resp.Body.Bytes(), &payload)
	if payload.Product.ID != "p1" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}
