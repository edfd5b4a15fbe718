package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mynt/inventory-tracker/internal/application/inventory"
	"github.com/mynt/inventory-tracker/internal/domain/entity"
	"github.com/mynt/inventory-tracker/pkg/logger"
)

const ordersPageLimit = 250

var (
	_ inventory.OrderSource = (*Client)(nil)
	_ inventory.TagSource   = (*Client)(nil)
)

// Client habla con la Admin API REST de la tienda: órdenes pagadas paginadas
// y tags de producto. Los errores transitorios (429/5xx) se reintentan acá
// con backoff; lo que sale de este adaptador es definitivo.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	apiVersion string
	retry      retryPolicy
	log        *logger.Logger
}

// NewClient construye el cliente para la tienda indicada.
func NewClient(domain, token, apiVersion string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://" + domain,
		token:      token,
		apiVersion: apiVersion,
		retry:      defaultRetryPolicy(),
		log:        log,
	}
}

type lineItemPayload struct {
	ProductID    *int64  `json:"product_id"`
	Name         string  `json:"name"`
	VariantTitle *string `json:"variant_title"`
	Quantity     int     `json:"quantity"`
	Properties   []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"properties"`
}

type orderPayload struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	CreatedAt time.Time         `json:"created_at"`
	LineItems []lineItemPayload `json:"line_items"`
}

type ordersPayload struct {
	Orders []orderPayload `json:"orders"`
}

type productPayload struct {
	Product struct {
		ID   int64  `json:"id"`
		Tags string `json:"tags"`
	} `json:"product"`
}

// FetchPaidOrders trae todas las órdenes pagadas, siguiendo el cursor del
// header Link hasta la última página. createdAtMin nil trae el histórico
// completo.
func (c *Client) FetchPaidOrders(ctx context.Context, createdAtMin *time.Time) ([]entity.SourceOrder, error) {
	params := url.Values{}
	params.Set("status", "any")
	params.Set("financial_status", "paid")
	params.Set("limit", strconv.Itoa(ordersPageLimit))
	if createdAtMin != nil {
		params.Set("created_at_min", createdAtMin.UTC().Format(time.RFC3339))
	}
	pageURL := fmt.Sprintf("%s/admin/api/%s/orders.json?%s", c.baseURL, c.apiVersion, params.Encode())

	var orders []entity.SourceOrder
	for page := 1; pageURL != ""; page++ {
		var payload ordersPayload
		var next string
		err := c.retry.do(ctx, func() error {
			var err error
			next, err = c.getJSON(ctx, pageURL, &payload)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("obtener órdenes (página %d): %w", page, err)
		}
		for _, o := range payload.Orders {
			orders = append(orders, toSourceOrder(o))
		}
		c.log.Debug().Int("page", page).Int("orders", len(payload.Orders)).Msg("página de órdenes recibida")
		pageURL = next
	}
	return orders, nil
}

// FetchProductTags devuelve el string crudo de tags del producto.
func (c *Client) FetchProductTags(ctx context.Context, productID string) (string, error) {
	reqURL := fmt.Sprintf("%s/admin/api/%s/products/%s.json?fields=id,tags",
		c.baseURL, c.apiVersion, url.PathEscape(productID))

	var payload productPayload
	err := c.retry.do(ctx, func() error {
		_, err := c.getJSON(ctx, reqURL, &payload)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("obtener producto %s: %w", productID, err)
	}
	return payload.Product.Tags, nil
}

// getJSON hace el GET autenticado, decodifica el body en out y devuelve la
// URL de la página siguiente del header Link (vacía si no hay).
func (c *Client) getJSON(ctx context.Context, reqURL string, out any) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("armar request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Body:       strings.TrimSpace(string(body)),
		}
		if apiErr.Retryable() {
			c.log.Warn().Int("status", resp.StatusCode).Msg("respuesta transitoria de la API, se reintenta")
		}
		return "", apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", fmt.Errorf("decodificar respuesta: %w", err)
	}
	return parseNextLink(resp.Header.Get("Link")), nil
}

func toSourceOrder(o orderPayload) entity.SourceOrder {
	order := entity.SourceOrder{
		ID:        o.ID,
		Name:      o.Name,
		CreatedAt: o.CreatedAt,
		LineItems: make([]entity.LineItem, 0, len(o.LineItems)),
	}
	for _, li := range o.LineItems {
		item := entity.LineItem{
			ProductID: li.ProductID,
			Name:      li.Name,
			Quantity:  li.Quantity,
		}
		if li.VariantTitle != nil {
			item.VariantTitle = *li.VariantTitle
		}
		for _, p := range li.Properties {
			item.Properties = append(item.Properties, entity.LineItemProperty{Name: p.Name, Value: p.Value})
		}
		order.LineItems = append(order.LineItems, item)
	}
	return order
}

// parseNextLink extrae la URL rel="next" del header Link de paginación por
// cursor. Formato: <https://...page_info=xyz>; rel="next".
func parseNextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}

// parseRetryAfter interpreta el header Retry-After en segundos (admite
// decimales, la API los manda).
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(header), 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
