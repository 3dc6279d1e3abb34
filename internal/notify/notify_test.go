package notify_test

import (
	"testing"

	"github.com/optimistlabs/storefront/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Flash_QueuesInOrder(t *testing.T) {
	f := notify.NewFlash(nil)

	f.Success("Profile updated successfully")
	f.Error("Failed to save address")
	f.Info("Session expiring soon")

	notes := f.Drain()
	require.Len(t, notes, 3)
	assert.Equal(t, notify.Notification{Level: notify.LevelSuccess, Message: "Profile updated successfully"}, notes[0])
	assert.Equal(t, notify.Notification{Level: notify.LevelError, Message: "Failed to save address"}, notes[1])
	assert.Equal(t, notify.Notification{Level: notify.LevelInfo, Message: "Session expiring soon"}, notes[2])
}

func Test_Flash_DrainClears(t *testing.T) {
	f := notify.NewFlash(nil)

	f.Success("Address deleted")
	require.Len(t, f.Drain(), 1)

	assert.Empty(t, f.Drain(), "notifications are fire-and-forget")
}
