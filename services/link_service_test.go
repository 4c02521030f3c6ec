package services

import (
	"context"
	"testing"

	"anonrelay_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLink(t *testing.T) {
	ls := &LinkService{}

	tests := []struct {
		param  string
		handle models.Handle
		ok     bool
	}{
		{"111", 111, true},
		{" 42 ", 42, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"12abc", 0, false},
		{"-5", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		handle, ok := ls.ResolveLink(tt.param)
		assert.Equal(t, tt.ok, ok, "param %q", tt.param)
		if tt.ok {
			assert.Equal(t, tt.handle, handle, "param %q", tt.param)
		}
	}
}

func TestIssueLinkUsesTransportIdentifier(t *testing.T) {
	ls := &LinkService{Transport: newFakeTransport()}

	link, err := ls.IssueLink(context.Background(), 111)
	require.NoError(t, err)
	assert.Equal(t, "https://relay.test/?start=111", link)
}

func TestIssuedLinkRoundTrips(t *testing.T) {
	ls := &LinkService{Transport: newFakeTransport()}

	link, err := ls.IssueLink(context.Background(), 12345)
	require.NoError(t, err)

	// The start parameter embedded in the link resolves back to the handle.
	handle, ok := ls.ResolveLink("12345")
	require.True(t, ok)
	assert.Equal(t, models.Handle(12345), handle)
	assert.Contains(t, link, "start=12345")
}
