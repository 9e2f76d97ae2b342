package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/clients"
	"storefront/internal/domain"
	"storefront/internal/events"
)

func seededOrders() []domain.Order {
	return []domain.Order{
		{ID: "o1", OrderStatus: domain.StatusPending},
		{ID: "o2", OrderStatus: domain.StatusDelivered},
		{ID: "o3", OrderStatus: domain.StatusCancelled},
		{ID: "o4", OrderStatus: domain.StatusPending},
	}
}

type orderFixture struct {
	ctrl      *OrderFilterController
	backend   *fakeMarketplace
	notifier  *recordingNotifier
	publisher *recordingPublisher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	f := &orderFixture{
		backend: &fakeMarketplace{
			listResp:   &clients.OrdersResponse{Success: true, Orders: seededOrders()},
			actionResp: &clients.OrdersResponse{Success: true},
		},
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
	}
	f.ctrl = NewOrderFilterController("s1", f.backend, f.notifier, f.publisher, quietLogger())
	return f
}

func ids(orders []domain.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID)
	}
	return out
}

func TestMountLoadsOnce(t *testing.T) {
	f := newOrderFixture(t)
	assert.Equal(t, PhaseLoading, f.ctrl.View().Phase)

	require.NoError(t, f.ctrl.Mount(context.Background()))
	require.NoError(t, f.ctrl.Mount(context.Background()))

	assert.Equal(t, 1, f.backend.listCount())
	view := f.ctrl.View()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Len(t, view.Orders, 4)
}

func TestLoadFailureMovesToFailed(t *testing.T) {
	f := newOrderFixture(t)
	f.backend.listResp = nil
	f.backend.listErr = &domain.TransportError{Op: "list orders", Err: errors.New("boom")}

	require.Error(t, f.ctrl.LoadOrders(context.Background()))

	view := f.ctrl.View()
	assert.Equal(t, PhaseFailed, view.Phase)
	assert.Equal(t, "An error occurred: list orders: boom", view.Error)
	assert.Empty(t, view.Orders)
}

func TestLoadDeclinedLeavesCacheAndIsReady(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))

	f.backend.listResp = &clients.OrdersResponse{Success: false}
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))

	view := f.ctrl.View()
	assert.Equal(t, PhaseReady, view.Phase)
	assert.Empty(t, view.Error)
	assert.Len(t, view.Orders, 4)
}

func TestUnauthorizedBackendFailsOrderCalls(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Unauthorized"}`))
	}))
	defer backend.Close()

	notifier := &recordingNotifier{}
	client := clients.NewMarketplaceHTTPClient(backend.URL, time.Second, quietLogger())
	ctrl := NewOrderFilterController("s1", client, notifier, &recordingPublisher{}, quietLogger())

	err := ctrl.Mount(context.Background())
	var terr *domain.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusUnauthorized, terr.Status)

	view := ctrl.View()
	assert.Equal(t, PhaseFailed, view.Phase)
	assert.Contains(t, view.Error, "An error occurred: ")
	assert.Contains(t, view.Error, "Unauthorized")

	require.Error(t, ctrl.MarkReceived(context.Background(), "o1"))
	assert.Equal(t, MsgUpdateError, ctrl.View().Errors["o1"])
	assert.Equal(t, MsgUpdateError, notifier.last().Message)

	require.Error(t, ctrl.CancelOrder(context.Background(), "o2"))
	assert.Equal(t, MsgCancelError, ctrl.View().Errors["o2"])
	assert.Equal(t, MsgCancelErrorToast, notifier.last().Message)
}

func TestSetFilterSelectsMatchingOrdersAndRoundTrips(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))
	all := f.ctrl.Filtered()

	require.NoError(t, f.ctrl.SetFilter(domain.StatusPending))
	assert.Equal(t, []string{"o1", "o4"}, ids(f.ctrl.Filtered()))
	assert.Equal(t, 1, f.backend.listCount(), "filtering makes no network call")

	for _, s := range domain.OrderStatuses {
		require.NoError(t, f.ctrl.SetFilter(s))
		for _, o := range f.ctrl.Filtered() {
			assert.Equal(t, s, o.OrderStatus)
		}
	}

	require.NoError(t, f.ctrl.SetFilter(domain.StatusAll))
	assert.Equal(t, all, f.ctrl.Filtered())

	assert.ErrorIs(t, f.ctrl.SetFilter("Shipped"), domain.ErrUnknownStatus)
}

func TestEmptyFilterReportsNoOrdersFound(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))
	require.NoError(t, f.ctrl.SetFilter(domain.StatusRefunded))

	view := f.ctrl.View()
	assert.Empty(t, view.Orders)
	assert.Equal(t, MsgNoOrders, view.EmptyText)

	require.NoError(t, f.ctrl.SetFilter(domain.StatusAll))
	assert.Empty(t, f.ctrl.View().EmptyText)
}

func TestViewCards(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))
	f.ctrl.SetMessage("o1", "received")

	view := f.ctrl.View()
	require.Len(t, view.Orders, 4)
	pending, delivered := view.Orders[0], view.Orders[1]
	assert.True(t, pending.ActionsEnabled)
	assert.Equal(t, MsgReceivedHint, pending.Hint)
	assert.Equal(t, "received", pending.Message)
	assert.Equal(t, "warning", pending.StatusTone)
	assert.False(t, delivered.ActionsEnabled)
	assert.Empty(t, delivered.Hint)
	assert.Equal(t, "Delivered", delivered.StatusLabel)
	assert.Equal(t, "SOL", delivered.Currency)

	require.Len(t, view.Filters, 5)
	assert.Equal(t, "All", view.Filters[4].Label)
	assert.True(t, view.Filters[4].Active)
}

func TestMarkReceivedSuccessClearsMessageAndRefetchesOnce(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))
	f.ctrl.SetMessage("o1", "received")
	f.ctrl.SetMessage("o4", "still waiting")
	before := f.backend.listCount()

	require.NoError(t, f.ctrl.MarkReceived(context.Background(), "o1"))

	assert.Equal(t, []orderCall{{OrderID: "o1", Message: "received"}}, f.backend.updates)
	assert.Equal(t, before+1, f.backend.listCount())
	view := f.ctrl.View()
	assert.NotContains(t, view.Messages, "o1")
	assert.Equal(t, "still waiting", view.Messages["o4"])
	assert.Equal(t, toastRecord{Kind: "success", ID: "success-toast", Message: MsgReceived}, f.notifier.last())
	assert.Equal(t, []events.Type{events.TypeOrderReceived}, f.publisher.types())
}

func TestMarkReceivedFailures(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))
	f.ctrl.SetMessage("o1", "received")
	before := f.backend.listCount()

	f.backend.actionResp = &clients.OrdersResponse{Success: false}
	err := f.ctrl.MarkReceived(context.Background(), "o1")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, MsgUpdateFailed, f.ctrl.View().Errors["o1"])
	assert.Equal(t, "received", f.ctrl.View().Messages["o1"], "message survives a failure")
	assert.Equal(t, MsgUpdateFailed, f.notifier.last().Message)

	f.backend.actionResp = nil
	f.backend.actionErr = errors.New("timeout")
	err = f.ctrl.MarkReceived(context.Background(), "o1")
	var terr *domain.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, MsgUpdateError, f.ctrl.View().Errors["o1"])
	assert.Equal(t, MsgUpdateError, f.notifier.last().Message)

	assert.Equal(t, before, f.backend.listCount(), "failures never re-fetch")
	assert.Empty(t, f.publisher.types())
}

func TestCancelOrder(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.ctrl.LoadOrders(context.Background()))

	f.backend.actionResp = &clients.OrdersResponse{Success: false}
	require.Error(t, f.ctrl.CancelOrder(context.Background(), "o4"))
	assert.Equal(t, MsgCancelFailed, f.ctrl.View().Errors["o4"])
	assert.Equal(t, MsgCancelFailedToast, f.notifier.last().Message)

	f.backend.actionResp = nil
	f.backend.actionErr = errors.New("reset")
	require.Error(t, f.ctrl.CancelOrder(context.Background(), "o4"))
	assert.Equal(t, MsgCancelError, f.ctrl.View().Errors["o4"])
	assert.Equal(t, MsgCancelErrorToast, f.notifier.last().Message)

	cancelled := seededOrders()
	cancelled[3].OrderStatus = domain.StatusCancelled
	f.backend.listResp = &clients.OrdersResponse{Success: true, Orders: cancelled}
	f.backend.actionErr = nil
	f.backend.actionResp = &clients.OrdersResponse{Success: true}
	require.NoError(t, f.ctrl.CancelOrder(context.Background(), "o4"))

	view := f.ctrl.View()
	assert.NotContains(t, view.Errors, "o4")
	assert.Equal(t, MsgCancelled, f.notifier.last().Message)
	require.NoError(t, f.ctrl.SetFilter(domain.StatusPending))
	assert.Equal(t, []string{"o1"}, ids(f.ctrl.Filtered()))
	assert.Len(t, f.backend.cancels, 3)
}

func TestSetMessageIsPerOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.ctrl.SetMessage("o1", "a")
	f.ctrl.SetMessage("o2", "b")
	f.ctrl.SetMessage("o1", "")

	assert.Equal(t, map[string]string{"o2": "b"}, f.ctrl.View().Messages)
}
