package message

import "fmt"

const DefaultImageURLTemplate = "https://%s.raw.icp0.io/blobs/%s"

type ContentKind string

const (
	KindText    ContentKind = "text_content"
	KindImage   ContentKind = "image_content"
	KindVideo   ContentKind = "video_content"
	KindAudio   ContentKind = "audio_content"
	KindFile    ContentKind = "file_content"
	KindGiphy   ContentKind = "giphy_content"
	KindCrypto  ContentKind = "crypto_content"
	KindP2PSwap ContentKind = "p2p_swap_content"
	KindPoll    ContentKind = "poll_content"
	KindPrize   ContentKind = "prize_content"
)

type BlobReference struct {
	CanisterID string `json:"canister_id"`
	BlobID     string `json:"blob_id"`
}

func (b *BlobReference) URL(template string) string {
	if template == "" {
		template = DefaultImageURLTemplate
	}
	return fmt.Sprintf(template, b.CanisterID, b.BlobID)
}

type PollConfig struct {
	Text    *string  `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

type Content struct {
	Kind          ContentKind    `json:"kind"`
	Text          string         `json:"text,omitempty"`
	Caption       *string        `json:"caption,omitempty"`
	BlobReference *BlobReference `json:"blob_reference,omitempty"`
	Poll          *PollConfig    `json:"config,omitempty"`
}

type Message struct {
	ID      string  `json:"message_id"`
	Index   int64   `json:"message_index"`
	Sender  string  `json:"sender"`
	Content Content `json:"content"`
	Edited  bool    `json:"edited,omitempty"`
}

// Event is a message together with its position in the chat event stream.
type Event struct {
	EventIndex int64   `json:"event_index"`
	Message    Message `json:"event"`
}

type Extracted struct {
	Text     string
	HasText  bool
	Hint     string
	ImageURL string
}

var hints = map[ContentKind]string{
	KindAudio:   "Audio message",
	KindVideo:   "Video message",
	KindCrypto:  "Crypto transfer",
	KindFile:    "File message",
	KindGiphy:   "Gif message",
	KindImage:   "Image message",
	KindP2PSwap: "Swap message",
	KindPoll:    "Poll message",
	KindPrize:   "Prize message",
	KindText:    "Text message",
}

// Extract returns the moderatable part of the content. The second return is
// false for content kinds the bot does not moderate.
func Extract(c Content, imageURLTemplate string) (Extracted, bool) {
	hint, ok := hints[c.Kind]
	if !ok {
		return Extracted{}, false
	}
	out := Extracted{Hint: hint}
	switch c.Kind {
	case KindText:
		out.Text, out.HasText = c.Text, true
	case KindPoll:
		if c.Poll != nil && c.Poll.Text != nil {
			out.Text, out.HasText = *c.Poll.Text, true
		}
	default:
		if c.Caption != nil {
			out.Text, out.HasText = *c.Caption, true
		}
	}
	if c.Kind == KindImage && c.BlobReference != nil {
		out.ImageURL = c.BlobReference.URL(imageURLTemplate)
	}
	return out, true
}

const TimelineKindMessage = "message"

// TimelineEvent is one entry of a chat's event stream. Only message entries
// carry a Message.
type TimelineEvent struct {
	Index   int64    `json:"index"`
	Kind    string   `json:"kind"`
	Message *Message `json:"message,omitempty"`
}

func (e TimelineEvent) MessageEvent() (Event, bool) {
	if e.Kind != TimelineKindMessage || e.Message == nil {
		return Event{}, false
	}
	return Event{EventIndex: e.Index, Message: *e.Message}, true
}
