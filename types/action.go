package types

// ActionID is the value stored against a gesture binding: one of the built-in
// action names, "none", or "custom:<command>".
type ActionID string

const ActionNone ActionID = "none"
