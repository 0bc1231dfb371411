// Package tui is the Bubble Tea front end: the single game model, the
// variant menu, the scoreboard and the SSH session flow built on them.
package tui
