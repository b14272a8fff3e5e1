package logging

import (
	"time"

	"github.com/felixgeelhaar/bolt/v3"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// RequestID adds the id of one Plan call.
func RequestID(id string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("request_id", id)
	}
}

// Interpretation adds the name of the interpretation being attempted.
func Interpretation(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("interpretation", name)
	}
}

// Formula adds the rendered goal formula.
func Formula(f string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("formula", f)
	}
}

// World adds a world name.
func World(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("world", name)
	}
}

// Outcome adds the terminal outcome of an attempt.
func Outcome(outcome string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("outcome", outcome)
	}
}

// Visited adds the number of expanded nodes.
func Visited(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("visited", n)
	}
}

// PlanLength adds the number of actions in a plan.
func PlanLength(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("plan_length", n)
	}
}

// Budget adds the expansion budget.
func Budget(n int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("budget", n)
	}
}

// Duration adds a duration field in milliseconds.
func Duration(d time.Duration) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int64("duration_ms", d.Milliseconds())
	}
}

// ErrorField adds an error field.
func ErrorField(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		if err == nil {
			return e
		}
		return e.Err(err)
	}
}

// Component adds a component field for categorization.
func Component(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("component", name)
	}
}

// Str adds a string field with custom key.
func Str(key, value string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str(key, value)
	}
}

// Int adds an integer field with custom key.
func Int(key string, value int) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int(key, value)
	}
}
