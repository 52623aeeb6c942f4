package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventDeal EventType = iota
	EventNewTurn
	EventPlayNumber
	EventRescue
	EventBolt
	EventMirror
	EventBlast
	EventForce
	EventRedeal
	EventRejected
	EventWin
	EventForfeit
	EventTurnLimit
	EventRemoteUpdate
)

func (e EventType) String() string {
	switch e {
	case EventDeal:
		return "Deal"
	case EventNewTurn:
		return "NewTurn"
	case EventPlayNumber:
		return "PlayNumber"
	case EventRescue:
		return "Rescue"
	case EventBolt:
		return "Bolt"
	case EventMirror:
		return "Mirror"
	case EventBlast:
		return "Blast"
	case EventForce:
		return "Force"
	case EventRedeal:
		return "Redeal"
	case EventRejected:
		return "Rejected"
	case EventWin:
		return "Win"
	case EventForfeit:
		return "Forfeit"
	case EventTurnLimit:
		return "TurnLimit"
	case EventRemoteUpdate:
		return "RemoteUpdate"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // game turn counter (1-based)
	Player  int       // acting player (0 or 1)
	Type    EventType // event type
	Card    string    // card label (if applicable)
	Details string    // human-readable narration
}
