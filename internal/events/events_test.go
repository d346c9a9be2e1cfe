package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-1")

	event, err := NewEvent(ResumeDeleted, "resumefix", CorrelationID(ctx), ResumeDeletedEvent{
		ResumeID:  7,
		AccountID: "acc",
		Filename:  "1-abc-cv.pdf",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, event.ID)
	assert.Equal(t, "resume.deleted", event.Type)
	assert.Equal(t, "req-1", event.CorrelationID)

	var data ResumeDeletedEvent
	require.NoError(t, json.Unmarshal(event.Data, &data))
	assert.Equal(t, uint(7), data.ResumeID)
}

func TestCorrelationID_Missing(t *testing.T) {
	assert.Empty(t, CorrelationID(context.Background()))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.Publish(context.Background(), ResumeUploaded, nil))
}
