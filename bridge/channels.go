package bridge

// Request/response channels exposed to the page. The names are the contract
// the remote web app was written against.
const (
	ChannelGetVersion       = "get-version"
	ChannelGetConfig        = "get-config"
	ChannelSetConfig        = "set-config"
	ChannelShowNotification = "show-notification"
	ChannelSetBadge         = "set-badge"
	ChannelMinimizeToTray   = "minimize-to-tray"
	ChannelQuitApp          = "quit-app"

	// Used by the preload script itself, not part of window.figochatDesktop.
	ChannelNavigate   = "navigate"
	ChannelOpenWindow = "open-window"
)

// Events delivered into the page.
const (
	EventOpenSettings   = "open-settings"
	EventNewMessage     = "new-message" // declared for the page, nothing emits it yet
	EventUpdateState    = "update-state"
	EventUpdateProgress = "update-progress"
)

// Channels lists every channel HandleMessage serves.
func Channels() []string {
	return []string{
		ChannelGetVersion,
		ChannelGetConfig,
		ChannelSetConfig,
		ChannelShowNotification,
		ChannelSetBadge,
		ChannelMinimizeToTray,
		ChannelQuitApp,
		ChannelNavigate,
		ChannelOpenWindow,
	}
}
