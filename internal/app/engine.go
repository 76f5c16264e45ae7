package app

import (
	"context"
	"sync"
	"time"

	"github.com/chathaven/chathaven/internal/domain"
)

// Broadcaster fans events out to live connections. Delivery is
// fire-and-forget; a slow or gone recipient is the transport's problem.
type Broadcaster interface {
	ToUser(id domain.UserID, v any)
	ToRoom(room domain.RoomName, v any)
	ToRoomExcept(id domain.UserID, room domain.RoomName, v any)
}

// Sink is the write-through store. Calls are issued off the relay path and
// their failures are logged, never surfaced to clients.
type Sink interface {
	InsertUser(ctx context.Context, user domain.User) error
	DeleteUser(ctx context.Context, id domain.UserID) error
	InsertMessage(ctx context.Context, msg domain.Message) error
	InsertMessageWithResponse(ctx context.Context, msg domain.Message, response string) error
}

// Responder is the external text-completion service. One attempt per
// message, no retry.
type Responder interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Engine owns the shared relay state and the collaborators every session
// works against. Sink and Responder may be nil (persistence or the bridge
// disabled); Limiter may be nil (no flood control).
type Engine struct {
	Directory *Directory
	Typing    *TypingSet
	Limiter   *MessageRateLimiter
	Broadcast Broadcaster
	Sink      Sink
	Responder Responder

	BotName       string
	ResponderRoom domain.RoomName

	// Now is the formatter clock; nil means time.Now.
	Now func() time.Time

	wg sync.WaitGroup
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// async runs fn tracked by the engine so Drain can wait it out.
func (e *Engine) async(fn func()) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		fn()
	}()
}

// Drain blocks until in-flight persistence writes and responder calls
// finish. Used at shutdown; new sessions should not be started after it.
func (e *Engine) Drain() {
	e.wg.Wait()
}
