package undo

import "github.com/kobzarvs/medit/internal/action"

// Log is a stack of inverse actions. While a group is open, pushes go to the
// group instead, and Commit turns the whole group into a single entry.
type Log struct {
	stack    []action.Action
	group    []action.Action
	grouping bool
}

func New() *Log {
	return &Log{}
}

func (l *Log) Push(inv action.Action) {
	if l.grouping {
		l.group = append(l.group, inv)
		return
	}
	l.stack = append(l.stack, inv)
}

// Begin opens an empty group, discarding any group left open.
func (l *Log) Begin() {
	l.group = nil
	l.grouping = true
}

// Commit closes the open group. A non-empty group is pushed as one
// UndoMultiple entry.
func (l *Log) Commit() {
	if l.grouping && len(l.group) > 0 {
		l.stack = append(l.stack, action.UndoGroup(l.group))
	}
	l.group = nil
	l.grouping = false
}

func (l *Log) Pop() (action.Action, bool) {
	if len(l.stack) == 0 {
		return action.Action{}, false
	}
	last := l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
	return last, true
}

func (l *Log) Peek() (action.Action, bool) {
	if len(l.stack) == 0 {
		return action.Action{}, false
	}
	return l.stack[len(l.stack)-1], true
}

func (l *Log) Len() int {
	return len(l.stack)
}

func (l *Log) Grouping() bool {
	return l.grouping
}

// GroupLen is the number of inverses in the open group.
func (l *Log) GroupLen() int {
	return len(l.group)
}
