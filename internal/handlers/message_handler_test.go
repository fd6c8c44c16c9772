package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anvaya/anvaya-api/internal/models"
)

func newMessageApp(msgRepo *fakeMessageRepo) *fiber.App {
	handler := NewMessageHandler(msgRepo)

	app := fiber.New()
	app.Post("/messages", handler.HandleSend)
	app.Get("/messages", handler.HandleListConversation)
	app.Put("/messages/read", handler.HandleMarkRead)

	return app
}

func TestHandleSendMessage(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	app := newMessageApp(msgRepo)

	senderID := uuid.New()
	recipientID := uuid.New()

	body, err := json.Marshal(models.SendMessageRequest{
		SenderID:    senderID.String(),
		RecipientID: recipientID.String(),
		Body:        "Is the position still open?",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, msgRepo.messages, 1)
	assert.Equal(t, senderID, msgRepo.messages[0].SenderID)
	assert.Equal(t, recipientID, msgRepo.messages[0].RecipientID)
	assert.Nil(t, msgRepo.messages[0].ApplicationID)
}

func TestHandleSendMessageWithApplication(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	app := newMessageApp(msgRepo)

	appID := uuid.New()
	body, err := json.Marshal(models.SendMessageRequest{
		SenderID:      uuid.New().String(),
		RecipientID:   uuid.New().String(),
		ApplicationID: appID.String(),
		Body:          "About your application.",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, msgRepo.messages, 1)
	require.NotNil(t, msgRepo.messages[0].ApplicationID)
	assert.Equal(t, appID, *msgRepo.messages[0].ApplicationID)
}

func TestHandleSendMessageRequiresBody(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	app := newMessageApp(msgRepo)

	body, err := json.Marshal(models.SendMessageRequest{
		SenderID:    uuid.New().String(),
		RecipientID: uuid.New().String(),
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, msgRepo.messages)
}

func TestHandleListConversation(t *testing.T) {
	msgRepo := &fakeMessageRepo{}
	app := newMessageApp(msgRepo)

	userID := uuid.New()
	peerID := uuid.New()
	otherID := uuid.New()

	msgRepo.messages = []*models.Message{
		{ID: uuid.New(), SenderID: userID, RecipientID: peerID, Body: "hello"},
		{ID: uuid.New(), SenderID: peerID, RecipientID: userID, Body: "hi"},
		{ID: uuid.New(), SenderID: userID, RecipientID: otherID, Body: "unrelated"},
	}

	req := httptest.NewRequest("GET", "/messages?user_id="+userID.String()+"&peer_id="+peerID.String(), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var payload struct {
		Messages []models.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Len(t, payload.Messages, 2)
}

func TestHandleListConversationRequiresPeer(t *testing.T) {
	app := newMessageApp(&fakeMessageRepo{})

	req := httptest.NewRequest("GET", "/messages?user_id="+uuid.New().String(), nil)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
