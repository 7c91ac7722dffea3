package dispatch

import "fmt"

// AckStrategy determines when a submitted record is acknowledged to its
// source. It is a tagged enumeration rather than a boolean so further
// strategies (for example ack-after-batch) can be added without breaking
// the contract.
type AckStrategy uint8

const (
	// AckIgnore leaves the acknowledgement handle untouched at submission;
	// all acknowledgement responsibility belongs to the batch consumer.
	AckIgnore AckStrategy = iota

	// AckOnReceive acknowledges the record synchronously inside Submit,
	// before it is queued. The acknowledgement means "accepted for
	// asynchronous processing", not "processed".
	AckOnReceive
)

func (s AckStrategy) String() string {
	switch s {
	case AckIgnore:
		return "ignore"
	case AckOnReceive:
		return "on_receive"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ParseAckStrategy converts a configuration string into an AckStrategy.
func ParseAckStrategy(s string) (AckStrategy, error) {
	switch s {
	case "", "ignore":
		return AckIgnore, nil
	case "on_receive":
		return AckOnReceive, nil
	default:
		return AckIgnore, fmt.Errorf("%w: %q", ErrUnknownAckStrategy, s)
	}
}
