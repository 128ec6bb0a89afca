package domain

// TapKind kind of activity record
type TapKind string

const (
	// TapPresence online list changed
	TapPresence TapKind = "presence"
	// TapDelivery private message routed (or dropped)
	TapDelivery TapKind = "delivery"
	// TapRead unread thread cleared
	TapRead TapKind = "read"
	// TapDisplaced username rebound to another connection
	TapDisplaced TapKind = "displaced"
)

// TapRecord activity record mirrored to the event tap. Never carries message text.
type TapRecord struct {
	Kind      TapKind  `json:"kind"`
	Users     []string `json:"users,omitempty"`
	Sender    string   `json:"sender,omitempty"`
	Recipient string   `json:"recipient,omitempty"`
	Unread    int      `json:"unread,omitempty"`
	Delivered bool     `json:"delivered"`
	Timestamp int64    `json:"timestamp"`
}
