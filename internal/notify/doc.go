// Package notify holds the callback slots through which the sync subsystem
// informs the rest of the peer about changes.
//
// Every slot except send-finished holds at most one callback; registering a
// new one replaces the previous. Send-finished subscribers form an ordered
// batch that is drained on every fire.
package notify
