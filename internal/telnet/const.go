package telnet

// Telnet command bytes.
const (
	IAC  byte = 255 // Interpret As Command
	DONT byte = 254 // you are not to use option
	DO   byte = 253 // please, you use option
	WONT byte = 252 // I won't use option
	WILL byte = 251 // I will use option
	SB   byte = 250 // Subnegotiation Begin
	SE   byte = 240 // Subnegotiation End
)

// Telnet option bytes.  Only the two the client negotiates.
const (
	Echo         byte = 1  // suppress local echo
	TerminalType byte = 24 // terminal type
)

// TermType is the terminal name reported in the terminal-type
// subnegotiation reply.
const TermType = "XTERM-256COLOR"
