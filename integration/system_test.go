//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E_Purchase(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	name := fmt.Sprintf("client_%d_%d", time.Now().Unix(), rand.Intn(100000))
	pass := "password123!"

	doJSON(t, http.MethodPost, baseURL+"/clients", map[string]any{
		"name":     name,
		"password": pass,
	}, nil, 201)

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	doJSON(t, http.MethodPost, baseURL+"/clients/login", map[string]any{
		"name":     name,
		"password": pass,
	}, &loginResp, 200)
	if loginResp.AccessToken == "" {
		t.Fatalf("empty access_token")
	}
	tok := loginResp.AccessToken

	var products []map[string]any
	doJSON(t, http.MethodGet, baseURL+"/products", nil, &products, 200)
	if len(products) != 4 {
		t.Fatalf("expected 4 products, got %#v", products)
	}

	var created map[string]any
	doJSONAuth(t, http.MethodPost, baseURL+"/orders", tok, nil, &created, 201)

	orderID, _ := created["id"].(string)
	if orderID == "" {
		t.Fatalf("order id missing: %#v", created)
	}

	var got map[string]any
	doJSONAuth(t, http.MethodPost, baseURL+"/orders/"+orderID+"/positions", tok, map[string]any{
		"product": "Apple", "weight": 2,
	}, &got, 200)
	doJSONAuth(t, http.MethodPost, baseURL+"/orders/"+orderID+"/positions", tok, map[string]any{
		"product": "Pencil", "amount": 2,
	}, &got, 200)
	if got["total"] != "34" {
		t.Fatalf("total=%v want 34", got["total"])
	}

	doJSONAuth(t, http.MethodPost, baseURL+"/orders/"+orderID+"/pay", tok, nil, nil, 402)
	doJSONAuth(t, http.MethodPost, baseURL+"/clients/me/earn", tok, map[string]any{
		"currency": "USD", "amount": 1,
	}, nil, 200)

	var paid struct {
		Balance string `json:"balance"`
	}
	doJSONAuth(t, http.MethodPost, baseURL+"/orders/"+orderID+"/pay", tok, nil, &paid, 200)
	if paid.Balance != "22" {
		t.Fatalf("balance=%s want 22", paid.Balance)
	}
	doJSONAuth(t, http.MethodPost, baseURL+"/orders/"+orderID+"/pay", tok, nil, nil, 409)

	if os.Getenv("E2E_RESTART_DB") == "1" {
		restartComposeService(t, ctx, "postgres")
		waitReady(t, ctx, baseURL+"/readyz")
		doJSON(t, http.MethodGet, baseURL+"/products/Chair", nil, nil, 200)
	}
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == 200 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func doJSON(t *testing.T, method, url string, body any, out any, want int) {
	t.Helper()
	doJSONAuth(t, method, url, "", body, out, want)
}

func doJSONAuth(t *testing.T, method, url, token string, body any, out any, want int) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("%s %s: status=%d want=%d", method, url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
