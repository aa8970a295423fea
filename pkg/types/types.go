package types

import (
	"fmt"

	"github.com/fatih/color"
)

// State is the lifecycle state of a CVE ID as reported by CVE Services.
// The state machine itself lives on the server side; clients only request
// transitions and display what comes back.
type State int

const (
	StateReserved State = iota
	StatePublished
	StateRejected
)

var (
	StateNames = []string{
		"RESERVED",
		"PUBLISHED",
		"REJECTED",
	}
	StateColor = []func(a ...interface{}) string{
		color.New(color.FgYellow).SprintFunc(),
		color.New(color.FgGreen).SprintFunc(),
		color.New(color.FgRed).SprintFunc(),
	}
)

// Known error codes returned by CVE Services.
const (
	ErrorCodeRecordExists       = "CVE_RECORD_EXISTS"
	ErrorCodeRecordDoesNotExist = "CVE_RECORD_DNE"
)

// UserRoles holds the roles CVE Services accepts for organization users.
var UserRoles = []string{"ADMIN"}

func NewState(state string) (State, error) {
	for i, name := range StateNames {
		if state == name {
			return State(i), nil
		}
	}
	return StateReserved, fmt.Errorf("unknown state: %s", state)
}

func ColorizeState(state string) string {
	for i, name := range StateNames {
		if state == name {
			return StateColor[i](state)
		}
	}
	return state
}

func (s State) String() string {
	return StateNames[s]
}
