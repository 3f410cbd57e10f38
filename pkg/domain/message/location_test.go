package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageURL_Valid(t *testing.T) {
	tests := []struct {
		url     string
		message int64
		thread  *int64
	}{
		{"https://oc.app/chats/group/abc123-cai/42", 42, nil},
		{"https://oc.app/chats/group/abc123-cai/42/100", 42, int64Ptr(100)},
		{"https://openchat.com/chats/group/xyz789-cai/123/456", 123, int64Ptr(456)},
		{"https://oc.app/chats/group/test-cai/999999999", 999999999, nil},
		{"https://oc.app/community/yf5kc-uaaaa-aaaar-a7qfq-cai/channel/698867665/77", 77, nil},
		{"https://oc.app/community/comm123-cai/channel/chan456/50/200", 50, int64Ptr(200)},
		{"https://oc.app/chats/group/abc123-cai/42?param=value", 42, nil},
		{"https://oc.app/chats/group/abc123-cai/42#section", 42, nil},
		{"https://oc.app/chats/group/abc123-cai/0", 0, nil},
		{"https://oc.app/chats/group/abc123-cai/42/0", 42, int64Ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			loc, ok := ParseMessageURL(tt.url)
			require.True(t, ok)
			assert.Equal(t, tt.message, loc.MessageIndex)
			assert.Equal(t, tt.thread, loc.ThreadIndex)
		})
	}
}

func TestParseMessageURL_Invalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"some arbitrary string or other",
		"https://oc.app/invalid/path",
		"https://oc.app/settings",
		"https://oc.app/chats/group/",
		"https://oc.app/community/comm123/channel/",
		"https://oc.app/chats/group/abc123-cai/notanumber",
		"https://oc.app/chats/group/abc123-cai/1/2/3",
	} {
		_, ok := ParseMessageURL(raw)
		assert.False(t, ok, raw)
	}
}

func int64Ptr(v int64) *int64 { return &v }
