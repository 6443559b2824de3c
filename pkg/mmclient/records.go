package mmclient

// User is the subset of a Mattermost user the tool needs, returned by the
// users/me connectivity probe.
type User struct {
	ID       string `json:"id,omitempty" yaml:"id,omitempty"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
}

// IncomingWebhook is an incoming webhook definition as served by the
// Mattermost API. ID and the *At timestamps are assigned by the server.
type IncomingWebhook struct {
	ID            string `json:"id,omitempty" yaml:"id,omitempty"`
	CreateAt      int64  `json:"create_at,omitempty" yaml:"create_at,omitempty"`
	UpdateAt      int64  `json:"update_at,omitempty" yaml:"update_at,omitempty"`
	DeleteAt      int64  `json:"delete_at,omitempty" yaml:"delete_at,omitempty"`
	UserID        string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	ChannelID     string `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	TeamID        string `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	DisplayName   string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	Username      string `json:"username,omitempty" yaml:"username,omitempty"`
	IconURL       string `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
	ChannelLocked bool   `json:"channel_locked,omitempty" yaml:"channel_locked,omitempty"`
}

// Stripped returns a copy with the server-assigned fields cleared, suitable
// as a creation payload on a different server.
func (w IncomingWebhook) Stripped() IncomingWebhook {
	w.ID = ""
	w.CreateAt, w.UpdateAt, w.DeleteAt = 0, 0, 0
	return w
}

// OutgoingWebhook is an outgoing webhook definition as served by the
// Mattermost API. Besides the server-assigned identity fields it carries a
// shared secret token which the target server re-issues on creation.
type OutgoingWebhook struct {
	ID           string   `json:"id,omitempty" yaml:"id,omitempty"`
	Token        string   `json:"token,omitempty" yaml:"token,omitempty"`
	CreateAt     int64    `json:"create_at,omitempty" yaml:"create_at,omitempty"`
	UpdateAt     int64    `json:"update_at,omitempty" yaml:"update_at,omitempty"`
	DeleteAt     int64    `json:"delete_at,omitempty" yaml:"delete_at,omitempty"`
	CreatorID    string   `json:"creator_id,omitempty" yaml:"creator_id,omitempty"`
	ChannelID    string   `json:"channel_id,omitempty" yaml:"channel_id,omitempty"`
	TeamID       string   `json:"team_id,omitempty" yaml:"team_id,omitempty"`
	TriggerWords []string `json:"trigger_words,omitempty" yaml:"trigger_words,omitempty"`
	TriggerWhen  int      `json:"trigger_when,omitempty" yaml:"trigger_when,omitempty"`
	CallbackURLs []string `json:"callback_urls,omitempty" yaml:"callback_urls,omitempty"`
	DisplayName  string   `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	ContentType  string   `json:"content_type,omitempty" yaml:"content_type,omitempty"`
	Username     string   `json:"username,omitempty" yaml:"username,omitempty"`
	IconURL      string   `json:"icon_url,omitempty" yaml:"icon_url,omitempty"`
}

// Stripped returns a copy with the server-assigned fields cleared. The token
// is cleared too; the target server issues a new one.
func (w OutgoingWebhook) Stripped() OutgoingWebhook {
	w.ID = ""
	w.Token = ""
	w.CreateAt, w.UpdateAt, w.DeleteAt = 0, 0, 0
	return w
}

// Bot is a bot account definition as served by the Mattermost API.
type Bot struct {
	UserID      string `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	OwnerID     string `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
	CreateAt    int64  `json:"create_at,omitempty" yaml:"create_at,omitempty"`
	UpdateAt    int64  `json:"update_at,omitempty" yaml:"update_at,omitempty"`
	DeleteAt    int64  `json:"delete_at,omitempty" yaml:"delete_at,omitempty"`
}

// Stripped returns a copy with the server-assigned fields cleared. Bots
// additionally drop the owner: ownership is re-assigned to the importing
// user by the target server.
func (b Bot) Stripped() Bot {
	b.UserID = ""
	b.OwnerID = ""
	b.CreateAt, b.UpdateAt, b.DeleteAt = 0, 0, 0
	return b
}
