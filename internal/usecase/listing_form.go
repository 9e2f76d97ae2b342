package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"storefront/internal/clients"
	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/notify"
)

type ListingFormConfig struct {
	RedirectDelay time.Duration
	RedirectPath  string
}

// ListingFormView is a snapshot of the listing form.
type ListingFormView struct {
	Draft         domain.Listing    `json:"draft"`
	Loading       bool              `json:"loading"`
	ImageURLError string            `json:"imageUrlError,omitempty"`
	APIError      string            `json:"apiError,omitempty"`
	History       []domain.Listing  `json:"history"`
	RedirectTo    string            `json:"redirectTo,omitempty"`
	Categories    []domain.Category `json:"categories"`
	Fields        []FormField       `json:"fields"`
}

type FormField struct {
	Name        domain.ListingField `json:"name"`
	Label       string              `json:"label"`
	Placeholder string              `json:"placeholder"`
}

var listingFormFields = []FormField{
	{Name: domain.FieldTitle, Label: "Product Name", Placeholder: "Enter product name"},
	{Name: domain.FieldDescription, Label: "Description", Placeholder: "Enter product description"},
	{Name: domain.FieldCategory, Label: "Category", Placeholder: "Select a Category"},
	{Name: domain.FieldPrice, Label: "Price (in Solana)", Placeholder: "Enter product price"},
	{Name: domain.FieldImageURL, Label: "Image URL", Placeholder: "Enter image URL"},
}

// ListingFormController owns one listing draft and submits it to the
// marketplace. After a successful submit it waits RedirectDelay and then
// navigates to RedirectPath; Close cancels that pending navigation.
type ListingFormController struct {
	client    clients.MarketplaceClient
	notifier  notify.Notifier
	navigator notify.Navigator
	publisher events.Publisher
	cfg       ListingFormConfig
	sessionID string
	log       *logrus.Entry

	mu            sync.Mutex
	draft         domain.Listing
	history       []domain.Listing
	loading       bool
	imageURLError string
	apiError      string
	redirectTo    string
	redirect      *time.Timer
	closed        bool
}

func NewListingFormController(
	sessionID string,
	client clients.MarketplaceClient,
	notifier notify.Notifier,
	navigator notify.Navigator,
	publisher events.Publisher,
	cfg ListingFormConfig,
	logger *logrus.Logger,
) *ListingFormController {
	return &ListingFormController{
		client:    client,
		notifier:  notifier,
		navigator: navigator,
		publisher: publisher,
		cfg:       cfg,
		sessionID: sessionID,
		log:       logger.WithFields(logrus.Fields{"component": "ListingForm", "session_id": sessionID}),
	}
}

func (c *ListingFormController) Draft() domain.Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *ListingFormController) UpdateField(field domain.ListingField, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.draft.WithField(field, value)
	if err != nil {
		return err
	}
	c.draft = next
	c.redirectTo = ""
	return nil
}

func (c *ListingFormController) Apply(patch domain.ListingPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := c.draft.Apply(patch)
	if err != nil {
		return err
	}
	c.draft = next
	c.redirectTo = ""
	return nil
}

func (c *ListingFormController) SelectCategory(category domain.Category) error {
	return c.Apply(domain.ListingPatch{Category: &category})
}

// Submit validates the draft and sends it to the marketplace in one attempt.
// The returned error is a *domain.ValidationError, *domain.APIError or
// *domain.TransportError, ErrSubmitInProgress while a previous submit
// has not settled, or ErrFormClosed once the session has ended.
func (c *ListingFormController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return domain.ErrFormClosed
	}
	if c.loading {
		c.mu.Unlock()
		return domain.ErrSubmitInProgress
	}
	draft := c.draft
	if !domain.ValidateImageURL(draft.ImageURL) {
		c.imageURLError = MsgInvalidImageURL
		c.mu.Unlock()
		c.log.Warnf("Rejected image URL '%s'", draft.ImageURL)
		return &domain.ValidationError{Field: domain.FieldImageURL, Message: MsgInvalidImageURL}
	}
	c.imageURLError = ""
	c.loading = true
	c.mu.Unlock()

	toastID := c.notifier.Loading(MsgListingItem)
	c.log.Infof("Submitting listing '%s'", draft.Title)

	resp, err := c.client.CreateProduct(ctx, draft)
	if err != nil {
		c.log.Errorf("Error submitting listing: %v", err)
		c.notifier.Error(toastID, MsgListFailed)
		c.settleFailure(MsgListFailed)
		var terr *domain.TransportError
		if errors.As(err, &terr) {
			return err
		}
		return &domain.TransportError{Op: "create product", Err: err}
	}
	if !resp.Success {
		message := resp.Message
		if message == "" {
			message = MsgListFailed
		}
		c.log.Warnf("Marketplace rejected listing '%s': %s", draft.Title, message)
		c.notifier.Error(toastID, message)
		c.settleFailure(message)
		return &domain.APIError{Op: "create product", Message: message}
	}

	c.notifier.Success(toastID, MsgListed)

	c.mu.Lock()
	c.history = append(c.history, draft)
	c.draft = domain.Listing{}
	c.apiError = ""
	c.scheduleRedirectLocked()
	c.mu.Unlock()

	ev := events.NewEvent(events.TypeListingSubmitted, c.sessionID)
	ev.Listing = &draft
	if err := c.publisher.Publish(ctx, ev); err != nil {
		c.log.Warnf("Failed to publish listing event: %v", err)
	}

	c.log.Infof("Listing '%s' submitted, navigating to %s in %s", draft.Title, c.cfg.RedirectPath, c.cfg.RedirectDelay)
	return nil
}

func (c *ListingFormController) settleFailure(message string) {
	c.mu.Lock()
	c.apiError = message
	c.loading = false
	c.mu.Unlock()
}

// scheduleRedirectLocked must be called with c.mu held.
func (c *ListingFormController) scheduleRedirectLocked() {
	if c.closed {
		c.loading = false
		return
	}
	if c.redirect != nil {
		c.redirect.Stop()
	}
	c.redirect = time.AfterFunc(c.cfg.RedirectDelay, func() {
		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return
		}
		c.redirect = nil
		c.loading = false
		c.redirectTo = c.cfg.RedirectPath
		c.mu.Unlock()

		c.navigator.Navigate(c.cfg.RedirectPath)
	})
}

// Close stops a pending navigation. The controller must not be used afterwards.
func (c *ListingFormController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.redirect != nil {
		c.redirect.Stop()
		c.redirect = nil
	}
}

func (c *ListingFormController) View() ListingFormView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ListingFormView{
		Draft:         c.draft,
		Loading:       c.loading,
		ImageURLError: c.imageURLError,
		APIError:      c.apiError,
		History:       append([]domain.Listing{}, c.history...),
		RedirectTo:    c.redirectTo,
		Categories:    domain.Categories,
		Fields:        listingFormFields,
	}
}
