package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniconnect/ama-service/pkg/errs"
)

func TestSessionID_UnmarshalJSON(t *testing.T) {
	var p struct {
		SessionID SessionID `json:"sessionId"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"sessionId": 7}`), &p))
	assert.EqualValues(t, 7, p.SessionID)

	require.NoError(t, json.Unmarshal([]byte(`{"sessionId": "12"}`), &p))
	assert.EqualValues(t, 12, p.SessionID)

	err := json.Unmarshal([]byte(`{"sessionId": "abc"}`), &p)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.Error(t, json.Unmarshal([]byte(`{"sessionId": 1.5}`), &p))
}

func TestParseSessionID(t *testing.T) {
	v, err := ParseSessionID(" 42 ")
	require.NoError(t, err)
	assert.EqualValues(t, 42, v)

	for _, bad := range []string{"", "0", "-1", "x1"} {
		_, err := ParseSessionID(bad)
		assert.ErrorIs(t, err, ErrInvalidSessionID, bad)
	}
}

func TestMeetingURL(t *testing.T) {
	s := Session{MeetingID: "ama-google-swe"}
	assert.Equal(t, "https://meet.google.com/ama-google-swe", s.MeetingURL("https://meet.google.com/"))

	link := "https://zoom.us/j/1"
	s.MeetingLink = &link
	assert.Equal(t, link, s.MeetingURL("https://meet.google.com"))
}

func TestOpenForRegistration(t *testing.T) {
	assert.True(t, StatusUpcoming.OpenForRegistration())
	assert.True(t, StatusLive.OpenForRegistration())
	assert.False(t, StatusCompleted.OpenForRegistration())
	assert.False(t, StatusCancelled.OpenForRegistration())
}

func TestIsHostRole(t *testing.T) {
	host, student := " Host", "student"
	assert.True(t, IsHostRole(&host))
	assert.False(t, IsHostRole(&student))
	assert.False(t, IsHostRole(nil))
	assert.Equal(t, "session-9", RoomKey(9))
}
