package script

import (
	"fmt"
	"strconv"
	"time"
)

// Step is the generic (kind, arg, label) encoding of one action, the form
// scripts take in files and other declarative sources. The meaning of Arg
// depends on Kind: payload text for send/recv, hex for the pack variants,
// seconds (decimal) for sleep. Code steps carry a Callback instead of an
// Arg and can only be built programmatically.
type Step struct {
	Kind     Kind
	Arg      string
	Callback InvokeFunc
	Label    string
}

// Action converts the step into an executable Action.
func (st Step) Action() (Action, error) {
	switch st.Kind {
	case KindSend:
		return Send([]byte(st.Arg), st.Label), nil

	case KindRecv:
		return Recv([]byte(st.Arg), st.Label), nil

	case KindPackSend:
		payload, err := DecodeHex(st.Arg)
		if err != nil {
			return Action{}, fmt.Errorf("packsend %q: %w", st.Arg, err)
		}
		return Action{Kind: KindPackSend, Payload: payload, Label: st.Label}, nil

	case KindPackRecv:
		expected, err := DecodeHex(st.Arg)
		if err != nil {
			return Action{}, fmt.Errorf("packrecv %q: %w", st.Arg, err)
		}
		return Action{Kind: KindPackRecv, Expected: expected, Label: st.Label}, nil

	case KindSleep:
		seconds, err := strconv.ParseFloat(st.Arg, 64)
		if err != nil {
			return Action{}, fmt.Errorf("sleep %q: parsing seconds: %w", st.Arg, err)
		}
		if seconds < 0 {
			return Action{}, fmt.Errorf("sleep %q: duration must not be negative", st.Arg)
		}
		return Sleep(time.Duration(seconds*float64(time.Second)), st.Label), nil

	case KindCode:
		if st.Callback == nil {
			return Action{}, fmt.Errorf("code step %q: callback is nil", st.Label)
		}
		return Invoke(st.Callback, st.Label), nil

	default:
		return Action{}, fmt.Errorf("unknown action kind %q", st.Kind)
	}
}

// ParseSteps converts a list of steps into a Script, preserving order.
func ParseSteps(steps []Step) (*Script, error) {
	actions := make([]Action, 0, len(steps))

	for i, st := range steps {
		a, err := st.Action()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		actions = append(actions, a)
	}

	return New(actions...), nil
}
