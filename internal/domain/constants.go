package domain

import "time"

const (
	RoleViewer = "VIEWER"
	RoleAdmin  = "ADMIN"
)

// Reward accrual: 0.5 credit per hour watched.
const (
	CreditPerSecond = 0.5 / 3600.0
	WatchBatchSecs  = 60
)

const (
	NotifKindSystem   = "SYSTEM"
	NotifKindReminder = "REMINDER"
	NotifKindAdmin    = "ADMIN"
)

// Personal inbox retention: at most InboxKeepCount items, none older
// than InboxMaxAge. InboxFetchCap bounds the cleanup pass's read cost.
const (
	InboxKeepCount = 5
	InboxMaxAge    = 5 * 24 * time.Hour
	InboxFetchCap  = 20
	BroadcastCap   = 5
)

const HistoryCap = 20

// A heartbeat newer than this means the identity is online now.
const OnlineWindow = 3 * time.Minute

const (
	MediaTypeMovie  = "movie"
	MediaTypeSeries = "tv"
)
