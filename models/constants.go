package models

// ✅ Text commands and menu buttons understood by the relay
const (
	CmdLink      = "/link"
	CmdHelp      = "/help"
	CmdStop      = "/stop"
	CmdBroadcast = "/broadcast"

	BtnGetLink = "🔗 Get My Link"
	BtnHelp    = "❓ Help"
)

// ✅ User-facing notices
const (
	NoticeWelcome = "👋 Welcome!\n\nSend /link to get your personal link, or open someone else's link to message them."
	NoticeHelp    = "1. Share your link to get messages.\n2. Open a friend's link to send messages.\n3. Reply to a relayed message to answer it."

	NoticeSelfLink  = "😅 You clicked your own link."
	NoticeConnected = "✍️ Connected!\n\nWrite your message now."
	NoticeStopped   = "👋 Conversation closed. Open a link to start a new one."

	NoticeSent        = "✅ Sent!"
	NoticeReplySent   = "✅ Reply sent!"
	NoticeUnavailable = "❌ User unavailable right now. Try again later."
	NoticeTooOld      = "❌ That message is too old to reply to."

	NoticeStoreTrouble   = "⚠️ Temporary trouble on our side, please try again."
	NoticeBroadcastUsage = "❌ Usage: /broadcast [message]"
)

// Prefixes tagged onto relayed message bodies. Cosmetic only: routing never
// depends on message text.
const (
	RelayPrefix = "📩 New message:\n\n"
	ReplyPrefix = "🔔 Reply:\n\n"
)
