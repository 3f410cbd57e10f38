package message

import (
	"net/url"
	"strconv"
	"strings"
)

// Location points at a message inside a chat, optionally inside a thread.
type Location struct {
	MessageIndex int64
	ThreadIndex  *int64
}

// ParseMessageURL accepts links of the form
//
//	/chats/group/:groupId/:messageIndex[/:threadIndex]
//	/community/:communityId/channel/:channelId/:messageIndex[/:threadIndex]
func ParseMessageURL(raw string) (Location, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Location{}, false
	}
	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")

	var indexes []string
	switch {
	case len(segments) >= 4 && segments[0] == "chats" && segments[1] == "group" && segments[2] != "":
		indexes = segments[3:]
	case len(segments) >= 5 && segments[0] == "community" && segments[1] != "" && segments[2] == "channel" && segments[3] != "":
		indexes = segments[4:]
	default:
		return Location{}, false
	}
	if len(indexes) < 1 || len(indexes) > 2 {
		return Location{}, false
	}

	messageIndex, err := strconv.ParseInt(indexes[0], 10, 64)
	if err != nil {
		return Location{}, false
	}
	loc := Location{MessageIndex: messageIndex}
	if len(indexes) == 2 {
		threadIndex, err := strconv.ParseInt(indexes[1], 10, 64)
		if err != nil {
			return Location{}, false
		}
		loc.ThreadIndex = &threadIndex
	}
	return loc, true
}
