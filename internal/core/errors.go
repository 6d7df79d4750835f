package core

import "errors"

var (
	// ErrNicknameTaken is returned by Register when the nickname is held by
	// a live session.
	ErrNicknameTaken = errors.New("nickname already in use")
	// ErrTargetNotFound is returned by Direct when no session holds the
	// target nickname.
	ErrTargetNotFound = errors.New("target not found")
	// ErrAlreadyInChannel is returned by Join when the target channel equals
	// the current one.
	ErrAlreadyInChannel = errors.New("already in that channel")
	// ErrNotRegistered is returned by Join for a nickname with no live
	// session, which can happen when a session is torn down concurrently.
	ErrNotRegistered = errors.New("nickname not registered")

	// errQuit unwinds the session loop after /quit.
	errQuit = errors.New("session quit")
)
