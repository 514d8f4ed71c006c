package store

import "time"

// TodoPatch is the sanitized update applied by PATCH /todos/:id. Only the
// two governed fields survive; completedAt is always derived, never taken
// from the client.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// DeriveTodoPatch reduces an arbitrary request body to a TodoPatch. Text is
// kept only when it is a string. Completed must be a JSON boolean true to
// mark completion, which stamps the current time in Unix milliseconds; any
// other value (absent, false, non-boolean truthy) clears both fields.
func DeriveTodoPatch(body map[string]any, now time.Time) TodoPatch {
	patch := TodoPatch{}

	if text, ok := body["text"].(string); ok {
		patch.Text = &text
	}

	if completed, ok := body["completed"].(bool); ok && completed {
		ms := now.UnixMilli()
		patch.Completed = true
		patch.CompletedAt = &ms
	}

	return patch
}
