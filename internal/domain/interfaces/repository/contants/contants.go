package repocontants

const (
	BOT_CHAT_COLLECTION = "botChats"
	DOC_COLLECTION      = "docs"
)
