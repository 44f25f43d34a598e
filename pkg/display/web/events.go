package web

// Setting is a hub setting a client can change, sent as
// [System, Setting, value].
type Setting = uint8

const (
	_ Setting = iota
	Compression
	CompressionLevel
	FramePatching
	FrameSkipping
	FramePatchingRatio
)

const (
	// System prefixes messages changing a Setting.
	System = 10
	// Closing is sent by a client that is closing its connection.
	Closing = 255
)

// Type is the type of message sent to clients, held in the first
// byte of each message.
type Type = uint8

const (
	Frame Type = iota
	FramePatch
	FrameSkip
	ClientInfo
	PatchCache
	PatchCacheSync
	FrameCache
	FrameCacheSync
	FrameSync
	ClientClosing
	ServerInfo
	PlayerInfo
	Title
)

// PlayerEvent is sent as [PlayerInfo, PlayerEvent, value].
type PlayerEvent = uint8

const (
	PausePlay PlayerEvent = iota
	Status
)
