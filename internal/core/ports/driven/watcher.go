package driven

import "context"

// ChangeWatcher reports files created or rewritten under a directory.
type ChangeWatcher interface {
	// Watch emits the path of each created or written file until ctx is
	// cancelled, then closes the channel.
	Watch(ctx context.Context, dir string, recursive bool) (<-chan string, error)
}
