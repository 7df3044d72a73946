// model/activity.go
package model

import "time"

// Activity is one human-readable audit record appended by the workflows.
type Activity struct {
	ID        int64     `json:"id"`
	ActorID   int64     `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}
