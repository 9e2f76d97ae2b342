package usecase

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/domain"
	"storefront/internal/events"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeMarketplace struct {
	mu sync.Mutex

	createResp *clients.CreateProductResponse
	createErr  error
	created    []domain.Listing

	listResp  *clients.OrdersResponse
	listErr   error
	listCalls int

	actionResp *clients.OrdersResponse
	actionErr  error
	updates    []orderCall
	cancels    []orderCall
}

type orderCall struct {
	OrderID string
	Message string
}

func (f *fakeMarketplace) CreateProduct(_ context.Context, listing domain.Listing) (*clients.CreateProductResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, listing)
	return f.createResp, f.createErr
}

func (f *fakeMarketplace) ListOrdersByUser(context.Context) (*clients.OrdersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	return f.listResp, f.listErr
}

func (f *fakeMarketplace) UpdateOrderStatus(_ context.Context, orderID, message string) (*clients.OrdersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, orderCall{orderID, message})
	return f.actionResp, f.actionErr
}

func (f *fakeMarketplace) CancelOrder(_ context.Context, orderID, message string) (*clients.OrdersResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels = append(f.cancels, orderCall{orderID, message})
	return f.actionResp, f.actionErr
}

func (f *fakeMarketplace) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type toastRecord struct {
	Kind    string
	ID      string
	Message string
}

type recordingNotifier struct {
	mu     sync.Mutex
	toasts []toastRecord
}

func (n *recordingNotifier) record(kind, id, message string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if id == "" {
		id = kind + "-toast"
	}
	n.toasts = append(n.toasts, toastRecord{Kind: kind, ID: id, Message: message})
	return id
}

func (n *recordingNotifier) Loading(message string) string { return n.record("loading", "", message) }

func (n *recordingNotifier) Success(id, message string) string {
	return n.record("success", id, message)
}

func (n *recordingNotifier) Error(id, message string) string { return n.record("error", id, message) }

func (n *recordingNotifier) last() toastRecord {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.toasts) == 0 {
		return toastRecord{}
	}
	return n.toasts[len(n.toasts)-1]
}

type chanNavigator chan string

func (n chanNavigator) Navigate(path string) { n <- path }

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Type
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}
