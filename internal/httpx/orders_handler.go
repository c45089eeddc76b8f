package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/provenly/commerce/internal/inventory"
	kafkax "github.com/provenly/commerce/internal/kafka"
	"github.com/provenly/commerce/internal/orders"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, lines []orders.LineInput, shippingAddress json.RawMessage) (*orders.Result, error)
	GetOrder(ctx context.Context, userID, orderID int64) (*orders.Result, error)
}

type ProductLister interface {
	Products(ctx context.Context) ([]orders.Product, error)
}

type EventPublisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type CreateOrderReq struct {
	Items           []orders.LineInput `json:"items"`
	ShippingAddress json.RawMessage    `json:"shipping_address,omitempty"`
}

type OrdersHandler struct {
	Orders   OrderService
	Catalog  ProductLister
	Producer EventPublisher
	Service  string
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(RequireUser)
		r.Post("/orders", h.createOrder)
		r.Get("/orders/{order_id}", h.getOrder)
	})
	r.Get("/products", h.listProducts)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. A ledger
// inconsistency gets a client-shaped response with a generic message; the
// details were already logged server-side.
func writeError(w http.ResponseWriter, err error) {
	var (
		ve *orders.ValidationError
		nf *orders.ProductNotFoundError
		ie *inventory.InsufficientError
		ce *inventory.InconsistencyError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &nf):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.As(err, &ie):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &ce):
		writeJSON(w, http.StatusConflict, map[string]string{"error": "unable to complete order, please retry"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	res, err := h.Orders.CreateOrder(ctx, userID(r), req.Items, req.ShippingAddress)
	if err != nil {
		writeError(w, err)
		return
	}

	h.publishOrderCreated(r, res)
	writeJSON(w, http.StatusCreated, res)
}

func (h *OrdersHandler) publishOrderCreated(r *http.Request, res *orders.Result) {
	if h.Producer == nil {
		return
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderCreated,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: res.OrderNumber,
	}
	ev.Payload = kafkax.MustMarshal(orders.OrderCreatedPayload{
		OrderID:     res.OrderID,
		OrderNumber: res.OrderNumber,
		UserID:      userID(r),
		TotalAmount: res.TotalAmount,
	})
	h.Producer.Publish(
		orders.PartitionKey(res.OrderNumber),
		kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderCreated)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(chi.URLParam(r, "order_id"), 10, 64)
	if err != nil || orderID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	res, err := h.Orders.GetOrder(ctx, userID(r), orderID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OrdersHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Catalog.Products(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	type productResp struct {
		ID    int64   `json:"id"`
		Title string  `json:"title"`
		Price float64 `json:"price"`
	}
	out := make([]productResp, 0, len(ps))
	for _, p := range ps {
		out = append(out, productResp{ID: p.ID, Title: p.Title, Price: p.Price.InexactFloat64()})
	}
	writeJSON(w, http.StatusOK, out)
}
