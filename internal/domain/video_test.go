package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteStateTransitions(t *testing.T) {
	legal := []struct{ from, to RemoteState }{
		{RemoteNone, RemoteCreating},
		{RemoteCreating, RemoteCreated},
		{RemoteCreating, RemoteFailed},
		{RemoteCreated, RemoteUploading},
		{RemoteUploading, RemoteReady},
		{RemoteUploading, RemoteFailed},
	}
	for _, tc := range legal {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s should be legal", tc.from, tc.to)
	}

	illegal := []struct{ from, to RemoteState }{
		{RemoteNone, RemoteReady},
		{RemoteNone, RemoteUploading},
		{RemoteCreated, RemoteReady},
		{RemoteCreated, RemoteFailed},
		{RemoteReady, RemoteUploading},
		{RemoteFailed, RemoteCreating}, // terminal: restart is a new pipeline from NONE
		{RemoteUploading, RemoteCreated},
	}
	for _, tc := range illegal {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s should be illegal", tc.from, tc.to)
	}
}
