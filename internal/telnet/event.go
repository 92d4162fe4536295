package telnet

import "fmt"

// Event classifies one (command, option) pair following an IAC marker.
// The dispatch is deliberately an explicit enumeration: every pair the
// client negotiates is listed here, and everything else falls through
// to Unrecognized, which is ignored by protocol policy rather than
// answered with a refusal.
type Event int

const (
	Unrecognized Event = iota
	TerminalTypeQuery
	EchoSuppressRequest
	EchoSuppressWithdraw
)

// Classify maps a (command, option) pair to its Event.
func Classify(cmd, opt byte) Event {
	switch {
	case cmd == DO && opt == TerminalType:
		return TerminalTypeQuery
	case cmd == WILL && opt == Echo:
		return EchoSuppressRequest
	case cmd == WONT && opt == Echo:
		return EchoSuppressWithdraw
	default:
		return Unrecognized
	}
}

func (e Event) String() string {
	switch e {
	case TerminalTypeQuery:
		return "terminal-type query"
	case EchoSuppressRequest:
		return "echo-suppress request"
	case EchoSuppressWithdraw:
		return "echo-suppress withdraw"
	case Unrecognized:
		return "unrecognized"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}
