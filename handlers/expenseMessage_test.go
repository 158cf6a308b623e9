package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newParseRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/v1/expense-messages/parse", parseExpenseMessageHandler())
	return r
}

func TestParseExpenseMessageEndpoint(t *testing.T) {
	r := newParseRouter()

	body := `{"text": "20 jan\ncabe merah tanjung 5kg 500k"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/expense-messages/parse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		ExpenseDate string `json:"expense_date"`
		Items       []struct {
			Description string `json:"description"`
			Qty         string `json:"qty"`
			Unit        string `json:"unit"`
			TotalPrice  string `json:"total_price"`
		} `json:"items"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response JSON: %v", err)
	}

	if !strings.HasSuffix(resp.ExpenseDate, "-01-20") {
		t.Errorf("expense_date = %q, want January 20th", resp.ExpenseDate)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(resp.Items))
	}
	item := resp.Items[0]
	if item.Description != "cabe merah tanjung" {
		t.Errorf("description = %q", item.Description)
	}
	if item.Qty != "5.0000" {
		t.Errorf("qty = %q, want 5.0000", item.Qty)
	}
	if item.Unit != "kg" {
		t.Errorf("unit = %q, want kg", item.Unit)
	}
	if item.TotalPrice != "500000.00" {
		t.Errorf("total_price = %q, want 500000.00", item.TotalPrice)
	}
}

func TestParseExpenseMessageEndpointErrors(t *testing.T) {
	r := newParseRouter()

	cases := []struct {
		name string
		body string
		code string
	}{
		{"missing text", `{}`, "Validation"},
		{"no date line", `{"text": "cabe 5kg 50rb"}`, "MissingOrInvalidDate"},
		{"no items", `{"text": "20 jan"}`, "NoItemsParsed"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/expense-messages/parse", strings.NewReader(c.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var resp struct {
				Code string `json:"code"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response JSON: %v", err)
			}
			if resp.Code != c.code {
				t.Errorf("code = %q, want %q", resp.Code, c.code)
			}
		})
	}
}
