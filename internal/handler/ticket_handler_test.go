package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"barpos/internal/model"
	"barpos/internal/store"
)

func newTestHandler() (*Handler, *store.Store) {
	st := store.New(nil, nil, store.Options{})
	return New(st), st
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCloseTicketUnderTenderReturns400(t *testing.T) {
	h, st := newTestHandler()
	p := st.AddProduct(model.Product{Name: "Lager", Category: model.CategoryBeer, Price: 7})
	ticket := st.CreateTicket()
	if _, err := st.AddLine(ticket.ID, p.ID, "", nil); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	c, rec := postJSON(e, `{"method":"cash","cash_tendered":5}`)
	c.SetParamNames("id")
	c.SetParamValues(ticket.ID)

	if err := h.CloseTicket(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for under-tender, got %d", rec.Code)
	}
	if got, _ := st.ActiveTicket(); len(got.Lines) != 1 {
		t.Errorf("refused close must leave the ticket intact")
	}
}

func TestCloseTicketReturnsResult(t *testing.T) {
	h, st := newTestHandler()
	p := st.AddProduct(model.Product{Name: "Lager", Category: model.CategoryBeer, Price: 7})
	ticket := st.CreateTicket()
	if _, err := st.AddLine(ticket.ID, p.ID, "", nil); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	c, rec := postJSON(e, `{"method":"cash","cash_tendered":10}`)
	c.SetParamNames("id")
	c.SetParamValues(ticket.ID)

	if err := h.CloseTicket(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result model.CloseResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Total != 7 || result.ChangeDue != 3 {
		t.Errorf("unexpected close result: %+v", result)
	}
}

func TestCloseTicketUnknownMethodReturns400(t *testing.T) {
	h, st := newTestHandler()
	ticket := st.CreateTicket()

	e := echo.New()
	c, rec := postJSON(e, `{"method":"barter"}`)
	c.SetParamNames("id")
	c.SetParamValues(ticket.ID)

	if err := h.CloseTicket(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown method, got %d", rec.Code)
	}
}

func TestSettleWithOpenTabsReturns409(t *testing.T) {
	h, st := newTestHandler()
	p := st.AddProduct(model.Product{Name: "Lager", Category: model.CategoryBeer, Price: 7})
	if _, err := st.BeginShift("Sam", 100); err != nil {
		t.Fatal(err)
	}
	active, _ := st.ActiveTicket()
	if _, err := st.AddLine(active.ID, p.ID, "", nil); err != nil {
		t.Fatal(err)
	}

	e := echo.New()
	c, rec := postJSON(e, `{"counted_cash":100}`)
	if err := h.SettleShift(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for unsettled tabs, got %d", rec.Code)
	}
}

func TestCurrentShiftReturns404WithoutShift(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := h.CurrentShift(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 with no shift, got %d", rec.Code)
	}
}
