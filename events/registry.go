package events

import (
	"strings"
)

var (
	nameToType = make(map[string]EventType)
	typeToName = make(map[EventType]string)
)

func init() {
	RegisterType("actionSetChanged", EventActionSetChanged)
	RegisterType("updateItem", EventItemUpdated)
	RegisterType("combatStart", EventCombatStarted)
	RegisterType("updateCombat", EventCombatUpdated)
	RegisterType("deleteCombat", EventCombatEnded)
	RegisterType("updateActor", EventActorUpdated)
	RegisterType("updateToken", EventTokenUpdated)
	RegisterType("controlToken", EventTokenControlled)
}

// RegisterType maps a host hook name to an EventType
// Called from init only; not safe for concurrent use with lookups
func RegisterType(name string, et EventType) {
	nameToType[strings.ToLower(name)] = et
	typeToName[et] = name
}

// ParseType returns the EventType for a host hook name, case-insensitive
func ParseType(name string) (EventType, bool) {
	et, ok := nameToType[strings.ToLower(name)]
	return et, ok
}

// String returns the host hook name of the event type
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "unknown"
}
