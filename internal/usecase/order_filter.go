package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/notify"
)

type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseFailed  Phase = "failed"
)

type OrderCard struct {
	domain.Order
	StatusLabel    string `json:"statusLabel"`
	StatusTone     string `json:"statusTone"`
	Currency       string `json:"currency"`
	ActionsEnabled bool   `json:"actionsEnabled"`
	Hint           string `json:"hint,omitempty"`
	Message        string `json:"message"`
	Error          string `json:"error,omitempty"`
}

type FilterChoice struct {
	Value  domain.OrderStatus `json:"value"`
	Label  string             `json:"label"`
	Active bool               `json:"active"`
}

// OrdersView is a snapshot of the orders screen. Orders is always the
// subset of the cached collection matching Filter.
type OrdersView struct {
	Phase     Phase              `json:"phase"`
	Error     string             `json:"error,omitempty"`
	Filter    domain.OrderStatus `json:"filter"`
	Filters   []FilterChoice     `json:"filters"`
	Orders    []OrderCard        `json:"orders"`
	EmptyText string             `json:"emptyText,omitempty"`
	Messages  map[string]string  `json:"messages"`
	Errors    map[string]string  `json:"errors"`
}

type OrderFilterController struct {
	client    clients.MarketplaceClient
	notifier  notify.Notifier
	publisher events.Publisher
	sessionID string
	log       *logrus.Entry

	mu        sync.Mutex
	mounted   bool
	phase     Phase
	loadErr   error
	orders    []domain.Order
	filter    domain.OrderStatus
	messages  map[string]string
	orderErrs map[string]string
}

func NewOrderFilterController(
	sessionID string,
	client clients.MarketplaceClient,
	notifier notify.Notifier,
	publisher events.Publisher,
	logger *logrus.Logger,
) *OrderFilterController {
	return &OrderFilterController{
		client:    client,
		notifier:  notifier,
		publisher: publisher,
		sessionID: sessionID,
		log:       logger.WithFields(logrus.Fields{"component": "OrderFilter", "session_id": sessionID}),
		phase:     PhaseLoading,
		messages:  make(map[string]string),
		orderErrs: make(map[string]string),
	}
}

// Mount loads the orders the first time it is called and does nothing after.
func (c *OrderFilterController) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.mu.Unlock()
	return c.LoadOrders(ctx)
}

// LoadOrders replaces the cached collection with the backend's. A reply with
// success:false leaves the cache as it was.
func (c *OrderFilterController) LoadOrders(ctx context.Context) error {
	resp, err := c.client.ListOrdersByUser(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.mounted = true

	if err != nil {
		c.log.Errorf("Error fetching orders: %v", err)
		c.phase = PhaseFailed
		c.loadErr = err
		return err
	}
	if resp.Success {
		c.orders = append([]domain.Order(nil), resp.Orders...)
		c.log.Infof("Loaded %d orders", len(c.orders))
	} else {
		c.log.Warnf("Marketplace declined to list orders: %s", resp.Message)
	}
	c.phase = PhaseReady
	c.loadErr = nil
	return nil
}

// SetFilter selects the status the view shows; StatusAll shows everything.
func (c *OrderFilterController) SetFilter(status domain.OrderStatus) error {
	if status != domain.StatusAll && !domain.IsValidStatus(status) {
		return domain.ErrUnknownStatus
	}
	c.mu.Lock()
	c.filter = status
	c.mu.Unlock()
	return nil
}

func (c *OrderFilterController) SetMessage(orderID, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if text == "" {
		delete(c.messages, orderID)
		return
	}
	c.messages[orderID] = text
}

type orderAction struct {
	op             string
	call           func(ctx context.Context, orderID, message string) (*clients.OrdersResponse, error)
	succeeded      string
	apiFailure     string
	apiToast       string
	transportError string
	transportToast string
	event          events.Type
}

// MarkReceived asks the backend to mark the order delivered, sending along
// the message typed for it.
func (c *OrderFilterController) MarkReceived(ctx context.Context, orderID string) error {
	return c.runAction(ctx, orderID, orderAction{
		op:             "update order status",
		call:           c.client.UpdateOrderStatus,
		succeeded:      MsgReceived,
		apiFailure:     MsgUpdateFailed,
		apiToast:       MsgUpdateFailed,
		transportError: MsgUpdateError,
		transportToast: MsgUpdateError,
		event:          events.TypeOrderReceived,
	})
}

func (c *OrderFilterController) CancelOrder(ctx context.Context, orderID string) error {
	return c.runAction(ctx, orderID, orderAction{
		op:             "cancel order",
		call:           c.client.CancelOrder,
		succeeded:      MsgCancelled,
		apiFailure:     MsgCancelFailed,
		apiToast:       MsgCancelFailedToast,
		transportError: MsgCancelError,
		transportToast: MsgCancelErrorToast,
		event:          events.TypeOrderCancelled,
	})
}

// runAction never touches the cached orders itself; on success it re-fetches
// them exactly once.
func (c *OrderFilterController) runAction(ctx context.Context, orderID string, a orderAction) error {
	c.mu.Lock()
	message := c.messages[orderID]
	c.mu.Unlock()

	logger := c.log.WithField("order_id", orderID)
	logger.Infof("Calling %s", a.op)

	resp, err := a.call(ctx, orderID, message)
	if err != nil {
		logger.Errorf("Error during %s: %v", a.op, err)
		c.setOrderError(orderID, a.transportError)
		c.notifier.Error("", a.transportToast)
		var terr *domain.TransportError
		if errors.As(err, &terr) {
			return err
		}
		return &domain.TransportError{Op: a.op, Err: err}
	}
	if !resp.Success {
		logger.Warnf("Marketplace rejected %s: %s", a.op, resp.Message)
		c.setOrderError(orderID, a.apiFailure)
		c.notifier.Error("", a.apiToast)
		return &domain.APIError{Op: a.op, Message: a.apiFailure}
	}

	c.mu.Lock()
	delete(c.messages, orderID)
	delete(c.orderErrs, orderID)
	c.mu.Unlock()

	if err := c.LoadOrders(ctx); err != nil {
		logger.Warnf("Refreshing orders after %s failed: %v", a.op, err)
	}
	c.notifier.Success("", a.succeeded)

	ev := events.NewEvent(a.event, c.sessionID)
	ev.OrderID = orderID
	if err := c.publisher.Publish(ctx, ev); err != nil {
		logger.Warnf("Failed to publish %s event: %v", a.event, err)
	}
	return nil
}

func (c *OrderFilterController) setOrderError(orderID, text string) {
	c.mu.Lock()
	c.orderErrs[orderID] = text
	c.mu.Unlock()
}

func (c *OrderFilterController) View() OrdersView {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := OrdersView{
		Phase:    c.phase,
		Filter:   c.filter,
		Messages: copyMap(c.messages),
		Errors:   copyMap(c.orderErrs),
		Orders:   []OrderCard{},
	}
	if c.phase == PhaseFailed && c.loadErr != nil {
		view.Error = MsgLoadFailed + c.loadErr.Error()
	}

	for _, s := range domain.OrderStatuses {
		view.Filters = append(view.Filters, FilterChoice{Value: s, Label: s.Label(), Active: c.filter == s})
	}
	view.Filters = append(view.Filters, FilterChoice{Value: domain.StatusAll, Label: domain.StatusAll.Label(), Active: c.filter == domain.StatusAll})

	if c.phase != PhaseReady {
		return view
	}

	for _, o := range domain.FilterByStatus(c.orders, c.filter) {
		card := OrderCard{
			Order:          o,
			StatusLabel:    o.OrderStatus.Label(),
			StatusTone:     o.OrderStatus.Tone(),
			Currency:       CurrencySymbol,
			ActionsEnabled: o.OrderStatus == domain.StatusPending,
			Message:        c.messages[o.ID],
			Error:          c.orderErrs[o.ID],
		}
		if card.ActionsEnabled {
			card.Hint = MsgReceivedHint
		}
		view.Orders = append(view.Orders, card)
	}
	if len(view.Orders) == 0 {
		view.EmptyText = MsgNoOrders
	}
	return view
}

// Filtered returns the orders currently selected by the filter.
func (c *OrderFilterController) Filtered() []domain.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.FilterByStatus(c.orders, c.filter)
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
