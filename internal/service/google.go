package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GatewayError is a non-success response from the Google Calendar API. It
// preserves the provider's raw error body for diagnosability.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("google calendar api error %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether the failure is worth retrying.
func (e *GatewayError) Transient() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// CalendarInfo is one calendar from the authenticated account's list.
type CalendarInfo struct {
	ID              string
	Summary         string
	Primary         bool
	BackgroundColor string
}

// GoogleGateway wraps the four Google Calendar operations the sync engine
// needs. It carries no business logic; callers own all mapping and dedup
// decisions.
type GoogleGateway struct {
	svc *calendar.Service
}

// NewGoogleGateway builds a gateway authenticated with the given bearer
// token. Extra client options let tests point it at a local server via
// option.WithEndpoint and option.WithHTTPClient.
func NewGoogleGateway(ctx context.Context, accessToken string, opts ...option.ClientOption) (*GoogleGateway, error) {
	if accessToken != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	}
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &GoogleGateway{svc: svc}, nil
}

const retryAttempts = 3

// withRetry retries transient gateway failures with exponential backoff.
// Only idempotent operations go through here: a retried insert could create
// a second event, so creates are issued exactly once.
func (g *GoogleGateway) withRetry(ctx context.Context, fn func() error) error {
	backoff := 500 * time.Millisecond
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
		if err = fn(); err == nil {
			return nil
		}
		var ge *GatewayError
		if !errors.As(err, &ge) || !ge.Transient() {
			return err
		}
	}
	return err
}

// asGatewayError converts googleapi errors into *GatewayError, keeping the
// provider's raw error text.
func asGatewayError(err error) error {
	if err == nil {
		return nil
	}
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		body := ge.Body
		if body == "" {
			body = ge.Message
		}
		return &GatewayError{StatusCode: ge.Code, Body: body}
	}
	return err
}

// ListCalendars lists the calendars of the authenticated account.
func (g *GoogleGateway) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	var out []CalendarInfo
	err := g.withRetry(ctx, func() error {
		out = out[:0]
		pageToken := ""
		for {
			call := g.svc.CalendarList.List().Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			list, err := call.Do()
			if err != nil {
				return asGatewayError(err)
			}
			for _, item := range list.Items {
				out = append(out, CalendarInfo{
					ID:              item.Id,
					Summary:         item.Summary,
					Primary:         item.Primary,
					BackgroundColor: item.BackgroundColor,
				})
			}
			if list.NextPageToken == "" {
				return nil
			}
			pageToken = list.NextPageToken
		}
	})
	return out, err
}

// ListEvents lists events in [timeMin, timeMax], singleEvents always on so
// recurring events arrive expanded into concrete occurrences.
func (g *GoogleGateway) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	var out []*calendar.Event
	err := g.withRetry(ctx, func() error {
		out = out[:0]
		pageToken := ""
		for {
			call := g.svc.Events.List(calendarID).
				ShowDeleted(false).
				SingleEvents(true).
				OrderBy("startTime").
				TimeMin(timeMin.Format(time.RFC3339)).
				TimeMax(timeMax.Format(time.RFC3339)).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			list, err := call.Do()
			if err != nil {
				return asGatewayError(err)
			}
			out = append(out, list.Items...)
			if list.NextPageToken == "" {
				return nil
			}
			pageToken = list.NextPageToken
		}
	})
	return out, err
}

// UpsertEvent updates the event when existingID is set, inserts otherwise,
// and returns the provider's canonical event including its assigned id.
func (g *GoogleGateway) UpsertEvent(ctx context.Context, calendarID string, ev *calendar.Event, existingID string) (*calendar.Event, error) {
	if existingID != "" {
		var updated *calendar.Event
		err := g.withRetry(ctx, func() error {
			var err error
			updated, err = g.svc.Events.Update(calendarID, existingID, ev).
				ConferenceDataVersion(1).
				Context(ctx).Do()
			return asGatewayError(err)
		})
		return updated, err
	}

	created, err := g.svc.Events.Insert(calendarID, ev).
		ConferenceDataVersion(1).
		Context(ctx).Do()
	if err != nil {
		return nil, asGatewayError(err)
	}
	return created, nil
}

// DeleteEvent removes the event. The provider answering not-found (404, or
// 410 for already-deleted events) counts as success: the target state is
// absence, and it is already achieved.
func (g *GoogleGateway) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	return g.withRetry(ctx, func() error {
		err := asGatewayError(g.svc.Events.Delete(calendarID, eventID).Context(ctx).Do())
		var ge *GatewayError
		if errors.As(err, &ge) && (ge.StatusCode == 404 || ge.StatusCode == 410) {
			return nil
		}
		return err
	})
}
