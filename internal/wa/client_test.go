package wa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demorestaurant/wa-bridge/internal/bot"
)

type capturedRequest struct {
	path    string
	auth    string
	payload map[string]any
}

func newCapturingServer(t *testing.T, status int) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured.payload)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.out"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv, captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient("test-token", "12345", WithBaseURL(baseURL))
	require.NoError(t, err)
	return c
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient("", "12345")
	require.Error(t, err)
	_, err = NewClient("tok", "  ")
	require.Error(t, err)
}

func TestSendText_PayloadAndAuth(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendText(context.Background(), "15550001", "hello there")
	require.NoError(t, err)

	require.Equal(t, "/12345/messages", captured.path)
	require.Equal(t, "Bearer test-token", captured.auth)
	require.Equal(t, "whatsapp", captured.payload["messaging_product"])
	require.Equal(t, "15550001", captured.payload["to"])
	text := captured.payload["text"].(map[string]any)
	require.Equal(t, "hello there", text["body"])
}

func TestSendButtons_Payload(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendButtons(context.Background(), "15550001", bot.ButtonPrompt{
		Body: "What would you like to do?",
		Buttons: []bot.Button{
			{ID: "order_food", Title: "Order Food"},
			{ID: "offers", Title: "Special Offers"},
		},
	})
	require.NoError(t, err)

	require.Equal(t, "interactive", captured.payload["type"])
	interactive := captured.payload["interactive"].(map[string]any)
	require.Equal(t, "button", interactive["type"])
	buttons := interactive["action"].(map[string]any)["buttons"].([]any)
	require.Len(t, buttons, 2)
	first := buttons[0].(map[string]any)["reply"].(map[string]any)
	require.Equal(t, "order_food", first["id"])
}

func TestSendList_Payload(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendList(context.Background(), "15550001", bot.ListPrompt{
		Body:        "Choose a category:",
		ButtonLabel: "Select Category",
		Sections: []bot.ListSection{
			{Title: "Menu Categories", Rows: []bot.ListRow{
				{ID: "starters", Title: "Starters", Description: "Garlic Bread"},
			}},
		},
	})
	require.NoError(t, err)

	interactive := captured.payload["interactive"].(map[string]any)
	require.Equal(t, "list", interactive["type"])
	action := interactive["action"].(map[string]any)
	require.Equal(t, "Select Category", action["button"])
	sections := action["sections"].([]any)
	require.Len(t, sections, 1)
}

func TestSendMedia_KindKeysPayload(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendMedia(context.Background(), "15550001", bot.MediaDocument, "https://example.com/menu.pdf")
	require.NoError(t, err)

	require.Equal(t, "document", captured.payload["type"])
	doc := captured.payload["document"].(map[string]any)
	require.Equal(t, "https://example.com/menu.pdf", doc["link"])
}

func TestSendReaction_Payload(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendReaction(context.Background(), "15550001", "wamid.1", "👍")
	require.NoError(t, err)

	require.Equal(t, "reaction", captured.payload["type"])
	require.Equal(t, "individual", captured.payload["recipient_type"])
	reaction := captured.payload["reaction"].(map[string]any)
	require.Equal(t, "wamid.1", reaction["message_id"])
	require.Equal(t, "👍", reaction["emoji"])
}

func TestSendTemplate_Payload(t *testing.T) {
	srv, captured := newCapturingServer(t, http.StatusOK)
	c := newTestClient(t, srv.URL)

	err := c.SendTemplate(context.Background(), "15550001", "hello_world", "en_US")
	require.NoError(t, err)

	tmpl := captured.payload["template"].(map[string]any)
	require.Equal(t, "hello_world", tmpl["name"])
	require.Equal(t, "en_US", tmpl["language"].(map[string]any)["code"])
}

func TestSend_Non2xxReturnsStatusError(t *testing.T) {
	srv, _ := newCapturingServer(t, http.StatusUnauthorized)
	c := newTestClient(t, srv.URL)

	err := c.SendText(context.Background(), "15550001", "hello")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
	require.Equal(t, http.StatusUnauthorized, statusErr.HTTPStatusCode())
}

func TestDisabled_DropsWithoutError(t *testing.T) {
	d := Disabled{}
	ctx := context.Background()

	require.NoError(t, d.SendText(ctx, "u", "hi"))
	require.NoError(t, d.SendButtons(ctx, "u", bot.ButtonPrompt{}))
	require.NoError(t, d.SendList(ctx, "u", bot.ListPrompt{}))
	require.NoError(t, d.SendMedia(ctx, "u", bot.MediaImage, ""))
	require.NoError(t, d.SendLocation(ctx, "u", bot.Location{}))
	require.NoError(t, d.SendContact(ctx, "u", bot.ContactCard{}))
	require.NoError(t, d.SendReaction(ctx, "u", "wamid.1", "👍"))
	require.NoError(t, d.SendTemplate(ctx, "u", "hello_world", "en_US"))
}
