package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_sessions/internal/model"
	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	groupID := uuid.MustParse("6f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f")
	sessions := []*model.ClassSession{
		{
			ID: 1, GroupID: groupID, Title: "Chemistry", Description: "Lab prep",
			Date: "2025-03-03", StartTime: "14:00", EndTime: "15:00", Timezone: "Asia/Kolkata",
			AttachmentURL: "https://files.example/lab.pdf",
		},
		{
			ID: 2, GroupID: groupID, Title: "Chemistry",
			Date: "2025-03-04", StartTime: "14:00", EndTime: "15:00", Timezone: "Asia/Kolkata",
		},
	}

	var buf bytes.Buffer
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, Encode(&buf, sessions, now))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "UID:6f1c2d4e-8a9b-4c3d-9e2f-1a2b3c4d5e6f-1@tutor-sessions")

	cal, err := ical.NewDecoder(&buf).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	start, err := events[0].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC), start.UTC())

	end, err := events[1].DateTimeEnd(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 9, 30, 0, 0, time.UTC), end.UTC())

	summary, err := events[1].Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", summary)
}

func TestEncodeRejectsBadSession(t *testing.T) {
	sessions := []*model.ClassSession{{ID: 9, Date: "2025-03-03", StartTime: "10:00", EndTime: "11:00", Timezone: "Nowhere/City"}}

	err := Encode(&bytes.Buffer{}, sessions, time.Now())
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}
