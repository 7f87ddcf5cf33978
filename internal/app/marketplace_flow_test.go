package app

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"whatyaneed_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdRequest struct {
	Message   string `json:"message"`
	RequestID uint   `json:"request_id"`
}

type feedItem struct {
	RequestID        uint       `json:"request_id"`
	Title            string     `json:"title"`
	Status           string     `json:"status"`
	UrgencyLevel     string     `json:"urgency_level"`
	UrgentTimerStart *time.Time `json:"urgent_timer_start"`
	RequesterName    string     `json:"requester_name"`
	PendingOffers    int64      `json:"pending_offers"`
}

type notificationItem struct {
	ID      uint   `json:"notification_id"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
}

func createRequest(t *testing.T, c *Client, body map[string]interface{}) uint {
	t.Helper()
	var created createdRequest
	res := c.SendJSON(t, http.MethodPost, "/api/requests", body, &created)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	require.Equal(t, "Request created successfully", created.Message)
	return created.RequestID
}

func TestRequesterPostsUrgentRequest(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)

	id := createRequest(t, requester, map[string]interface{}{
		"title": "Need groceries", "description": "Milk and bread", "urgency_level": "high",
	})

	var own struct {
		Requests []feedItem `json:"requests"`
	}
	res := requester.SendJSON(t, http.MethodGet, "/api/requester/requests", nil, &own)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, own.Requests, 1)
	assert.Equal(t, id, own.Requests[0].RequestID)
	assert.Equal(t, "open", own.Requests[0].Status)
	assert.Equal(t, "high", own.Requests[0].UrgencyLevel)
	assert.NotNil(t, own.Requests[0].UrgentTimerStart)
	assert.Zero(t, own.Requests[0].PendingOffers)
}

func TestCreateRequest_Validation(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)

	var missing errorEnvelope
	res := requester.SendJSON(t, http.MethodPost, "/api/requests", map[string]string{"title": "Only title"}, &missing)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title and description required", missing.Error.Message)

	var urgency errorEnvelope
	res = requester.SendJSON(t, http.MethodPost, "/api/requests", map[string]string{
		"title": "t", "description": "d", "urgency_level": "critical",
	}, &urgency)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid urgency level", urgency.Error.Message)
}

func TestRoleGuards(t *testing.T) {
	ts := NewTestServer(t)
	anonymous := ts.NewClient(t)
	volunteer := ts.NewClient(t)
	volunteer.RegisterAndLogin(t, "B", models.UserRoleVolunteer)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)

	body := map[string]string{"title": "t", "description": "d"}

	var unauth errorEnvelope
	res := anonymous.SendJSON(t, http.MethodPost, "/api/requests", body, &unauth)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", unauth.Error.Code)

	var forbidden errorEnvelope
	res = volunteer.SendJSON(t, http.MethodPost, "/api/requests", body, &forbidden)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	assert.Equal(t, "requester", forbidden.Error.Details["requiredRole"])
	assert.Equal(t, "volunteer", forbidden.Error.Details["yourRole"])

	res, _ = requester.Send(t, http.MethodPost, "/api/offers", map[string]int{"request_id": 1})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = requester.Send(t, http.MethodGet, "/api/volunteer/offers", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
	res, _ = volunteer.Send(t, http.MethodGet, "/api/requester/requests", nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestVolunteerOffersHelp(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)
	volunteer := ts.NewClient(t)
	volunteer.RegisterAndLogin(t, "B", models.UserRoleVolunteer)

	requestID := createRequest(t, requester, map[string]interface{}{"title": "Need groceries", "description": "d"})

	var offered struct {
		Message string `json:"message"`
		OfferID uint   `json:"offer_id"`
	}
	res := volunteer.SendJSON(t, http.MethodPost, "/api/offers", map[string]uint{"request_id": requestID}, &offered)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "Offer submitted successfully", offered.Message)
	assert.NotZero(t, offered.OfferID)

	var inbox struct {
		Notifications []notificationItem `json:"notifications"`
	}
	res = requester.SendJSON(t, http.MethodGet, "/api/notifications", nil, &inbox)
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, inbox.Notifications, 1)
	assert.False(t, inbox.Notifications[0].IsRead)
	assert.Contains(t, inbox.Notifications[0].Message, "B")
	assert.Contains(t, inbox.Notifications[0].Message, `"Need groceries"`)

	var unread struct {
		Count int64 `json:"count"`
	}
	requester.SendJSON(t, http.MethodGet, "/api/notifications/unread-count", nil, &unread)
	assert.Equal(t, int64(1), unread.Count)

	var mine struct {
		Offers []struct {
			OfferID       uint   `json:"offer_id"`
			Title         string `json:"title"`
			Status        string `json:"status"`
			RequestStatus string `json:"request_status"`
			RequesterName string `json:"requester_name"`
		} `json:"offers"`
	}
	volunteer.SendJSON(t, http.MethodGet, "/api/volunteer/offers", nil, &mine)
	require.Len(t, mine.Offers, 1)
	assert.Equal(t, offered.OfferID, mine.Offers[0].OfferID)
	assert.Equal(t, "Need groceries", mine.Offers[0].Title)
	assert.Equal(t, "pending", mine.Offers[0].Status)
	assert.Equal(t, "open", mine.Offers[0].RequestStatus)
	assert.Equal(t, "A", mine.Offers[0].RequesterName)

	var own struct {
		Requests []feedItem `json:"requests"`
	}
	requester.SendJSON(t, http.MethodGet, "/api/requester/requests", nil, &own)
	require.Len(t, own.Requests, 1)
	assert.Equal(t, int64(1), own.Requests[0].PendingOffers)
}

func TestDuplicateOfferConflicts(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)
	volunteer := ts.NewClient(t)
	volunteer.RegisterAndLogin(t, "B", models.UserRoleVolunteer)
	requestID := createRequest(t, requester, map[string]interface{}{"title": "t", "description": "d"})

	res, _ := volunteer.Send(t, http.MethodPost, "/api/offers", map[string]uint{"request_id": requestID})
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var conflict errorEnvelope
	res = volunteer.SendJSON(t, http.MethodPost, "/api/offers", map[string]uint{"request_id": requestID}, &conflict)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Equal(t, "Already offered help", conflict.Error.Message)

	var offers int64
	ts.DB.Model(&models.HelpOffer{}).Count(&offers)
	assert.Equal(t, int64(1), offers)
}

func TestOfferOnClosedRequest(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)
	volunteer := ts.NewClient(t)
	volunteer.RegisterAndLogin(t, "B", models.UserRoleVolunteer)
	requestID := createRequest(t, requester, map[string]interface{}{"title": "t", "description": "d"})
	require.NoError(t, ts.DB.Model(&models.Request{}).Where("request_id = ?", requestID).
		Update("status", models.RequestStatusClosed).Error)

	var notFound errorEnvelope
	res := volunteer.SendJSON(t, http.MethodPost, "/api/offers", map[string]uint{"request_id": requestID}, &notFound)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Request not found or closed", notFound.Error.Message)

	var missing errorEnvelope
	res = volunteer.SendJSON(t, http.MethodPost, "/api/offers", map[string]string{}, &missing)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Request ID required", missing.Error.Message)

	var offers, notifications int64
	ts.DB.Model(&models.HelpOffer{}).Count(&offers)
	ts.DB.Model(&models.Notification{}).Count(&notifications)
	assert.Zero(t, offers)
	assert.Zero(t, notifications)
}

func TestUrgencyDecaysOnFeedRead(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)
	stale := createRequest(t, requester, map[string]interface{}{"title": "stale", "description": "d", "urgency_level": "high"})
	fresh := createRequest(t, requester, map[string]interface{}{"title": "fresh", "description": "d", "urgency_level": "high"})

	require.NoError(t, ts.DB.Model(&models.Request{}).Where("request_id = ?", stale).
		Update("urgent_timer_start", time.Now().UTC().Add(-61*time.Minute)).Error)

	var feed struct {
		Requests []feedItem `json:"requests"`
	}
	res := ts.NewClient(t).SendJSON(t, http.MethodGet, "/api/requests", nil, &feed)
	require.Equal(t, http.StatusOK, res.StatusCode)

	urgency := map[uint]string{}
	for _, r := range feed.Requests {
		urgency[r.RequestID] = r.UrgencyLevel
	}
	assert.Equal(t, "medium", urgency[stale])
	assert.Equal(t, "high", urgency[fresh])
}

func TestFeedFilters(t *testing.T) {
	ts := NewTestServer(t)
	requester := ts.NewClient(t)
	requester.RegisterAndLogin(t, "A", models.UserRoleRequester)
	createRequest(t, requester, map[string]interface{}{"title": "Walk my dog", "description": "evening", "category": "pets", "location": "North Park"})
	createRequest(t, requester, map[string]interface{}{"title": "Fix shelf", "description": "needs a drill", "category": "home", "urgency_level": "low"})

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"Fix shelf", "Walk my dog"}},
		{"?category=pets", []string{"Walk my dog"}},
		{"?urgency=low", []string{"Fix shelf"}},
		{"?location=Park", []string{"Walk my dog"}},
		{"?search=drill", []string{"Fix shelf"}},
		{"?location=north%20park", []string{"Walk my dog"}},
		{"?search=WALK", []string{"Walk my dog"}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("query %q", tt.query), func(t *testing.T) {
			var feed struct {
				Requests []feedItem `json:"requests"`
			}
			res := ts.NewClient(t).SendJSON(t, http.MethodGet, "/api/requests"+tt.query, nil, &feed)
			require.Equal(t, http.StatusOK, res.StatusCode)

			var titles []string
			for _, r := range feed.Requests {
				titles = append(titles, r.Title)
				assert.Equal(t, "A", r.RequesterName)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestNotifications(t *testing.T) {
	ts := NewTestServer(t)

	t.Run("anonymous gets empty list", func(t *testing.T) {
		res, raw := ts.NewClient(t).Send(t, http.MethodGet, "/api/notifications", nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `{"notifications": []}`, raw)
	})

	t.Run("unread count requires session", func(t *testing.T) {
		res, _ := ts.NewClient(t).Send(t, http.MethodGet, "/api/notifications/unread-count", nil)
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("mark as read", func(t *testing.T) {
		owner := ts.NewClient(t)
		owner.RegisterAndLogin(t, "owner", models.UserRoleRequester)
		intruder := ts.NewClient(t)
		intruder.RegisterAndLogin(t, "intruder", models.UserRoleVolunteer)

		var me struct {
			User struct {
				ID uint `json:"id"`
			} `json:"user"`
		}
		owner.SendJSON(t, http.MethodGet, "/api/auth/me", nil, &me)
		n := &models.Notification{RecipientID: me.User.ID, Message: "hello"}
		require.NoError(t, ts.DB.Create(n).Error)
		path := fmt.Sprintf("/api/notifications/%d/read", n.ID)

		res, _ := intruder.Send(t, http.MethodPatch, path, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		var stored models.Notification
		require.NoError(t, ts.DB.First(&stored, n.ID).Error)
		assert.False(t, stored.IsRead, "foreign notification stays unread")

		res, _ = owner.Send(t, http.MethodPatch, path, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
		require.NoError(t, ts.DB.First(&stored, n.ID).Error)
		assert.True(t, stored.IsRead)

		res, _ = owner.Send(t, http.MethodPatch, "/api/notifications/abc/read", nil)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}
