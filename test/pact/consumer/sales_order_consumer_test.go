//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/sales-order-api/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	ID            string `json:"id"`
	InvoiceNumber string `json:"invoiceNumber"`
	Status        string `json:"status"`
	TotalAmount   string `json:"totalAmount"`
}

type viewPayload struct {
	Orders  []orderPayload `json:"orders"`
	Metrics struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
		Cancelled int `json:"cancelled"`
	} `json:"metrics"`
	Total int `json:"total"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestSalesOrderPortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	orderMatcher := matchers.Map{
		"id":            matchers.Like(pacttest.ExistingOrderID),
		"invoiceNumber": matchers.Like(pacttest.ExampleInvoice),
		"orderDate":     matchers.Like(pacttest.ExampleOrderDate),
		"customerId":    matchers.Like(pacttest.CustomerID),
		"storeId":       matchers.Like(pacttest.StoreID),
		"status":        matchers.Term("PENDING", "DRAFT|PENDING|COMPLETED|CANCELLED"),
		"totalAmount":   matchers.Term("250.00", "^\\d+\\.\\d{2}$"),
	}

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request for the pending orders view").
		WithRequest("GET", "/api/v1/sales-orders/view", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("status", matchers.S("PENDING"))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"orders": matchers.EachLike(orderMatcher, 1),
				"metrics": matchers.Map{
					"total":     matchers.Like(1),
					"pending":   matchers.Like(1),
					"completed": matchers.Like(0),
					"cancelled": matchers.Like(0),
				},
				"total": matchers.Like(1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderExists).
		UponReceiving("a request to fetch an existing sales order").
		WithRequest("GET", "/api/v1/sales-orders/"+pacttest.ExistingOrderID).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(orderMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing sales order").
		WithRequest("GET", "/api/v1/sales-orders/"+pacttest.MissingOrderID).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrdersBaseline).
		UponReceiving("a request to create a sales order").
		WithRequest("POST", "/api/v1/sales-orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleCreatePayload())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":            matchers.Like("3f1c2d4e-0000-4000-8000-000000000001"),
				"invoiceNumber": matchers.Term(pacttest.ExampleInvoice, "^SO-[A-Z0-9]+-\\d+$"),
				"status":        matchers.S("DRAFT"),
				"totalAmount":   matchers.S("250.00"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		view, err := client.PendingView(ctx)
		if err != nil {
			return fmt.Errorf("pending view: %w", err)
		}
		if len(view.Orders) == 0 || view.Metrics.Pending == 0 {
			return fmt.Errorf("expected pending orders, got %+v", view)
		}

		fetched, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if fetched.ID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order id %s, got %+v", pacttest.ExistingOrderID, fetched)
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		created, err := client.CreateOrder(ctx, pacttest.ExampleCreatePayload())
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		if created.Status != "DRAFT" || created.TotalAmount != "250.00" {
			return fmt.Errorf("unexpected created order %+v", created)
		}
		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *orderClient) PendingView(ctx context.Context) (*viewPayload, error) {
	var view viewPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/sales-orders/view?status=PENDING", nil, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *orderClient) GetOrder(ctx context.Context, id string) (*orderPayload, error) {
	var order orderPayload
	if err := c.do(ctx, http.MethodGet, "/api/v1/sales-orders/"+id, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *orderClient) CreateOrder(ctx context.Context, payload map[string]any) (*orderPayload, error) {
	var order orderPayload
	if err := c.do(ctx, http.MethodPost, "/api/v1/sales-orders", payload, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *orderClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(res)
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
