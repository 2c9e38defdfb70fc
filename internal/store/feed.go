package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	applog "dsfs/internal/log"
	"dsfs/models"
)

// PostSource loads the raw post collection.
type PostSource interface {
	Posts(ctx context.Context) ([]models.Post, error)
}

// UserSource loads the user table that posts are joined against.
type UserSource interface {
	Users(ctx context.Context) ([]models.User, error)
}

// FeedPost is a post joined with its author at refresh time. Author is a
// copy taken from the user table, not a live reference.
type FeedPost struct {
	models.Post
	Author *models.User `json:"user,omitempty"`
}

func (p FeedPost) clone() FeedPost {
	return FeedPost{Post: p.Post.Clone(), Author: p.Author.Clone()}
}

// FeedState is a snapshot of the feed store. Version increases with every
// transition.
type FeedState struct {
	Posts   []FeedPost `json:"posts"`
	Loading bool       `json:"loading"`
	Status  Status     `json:"status"`
	Version uint64     `json:"version"`
}

// FeedConfig wires a Feed.
type FeedConfig struct {
	Posts    PostSource
	Users    UserSource
	Latency  Waiter
	Recorder Recorder
}

// Feed owns the post collection.
type Feed struct {
	posts    PostSource
	users    UserSource
	latency  Waiter
	recorder Recorder

	mu      sync.RWMutex
	items   []FeedPost
	pending int
	version uint64

	subs listeners[FeedState]
}

// NewFeed builds an empty feed. Call Refresh to populate it.
func NewFeed(cfg FeedConfig) (*Feed, error) {
	if cfg.Posts == nil || cfg.Users == nil {
		return nil, errors.New("store: feed requires post and user sources")
	}
	return &Feed{
		posts:    cfg.Posts,
		users:    cfg.Users,
		latency:  cfg.Latency,
		recorder: recorderOrNop(cfg.Recorder),
	}, nil
}

// Refresh marks the feed as loading, waits for the simulated latency, then
// replaces the whole collection with a freshly joined copy of the source.
// Loading is cleared whether or not the load succeeds; on failure the
// previous collection is kept. Caller cancellation is ignored so the
// replacement still lands for other readers.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.refresh(ctx, f.latency)
}

// Prime performs the initial load without the simulated latency.
func (f *Feed) Prime(ctx context.Context) error {
	return f.refresh(ctx, nil)
}

func (f *Feed) refresh(ctx context.Context, latency Waiter) error {
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	f.mu.Lock()
	f.pending++
	f.version++
	loading := f.stateLocked()
	f.mu.Unlock()
	f.subs.notify(loading)

	items, err := f.load(ctx, latency)

	f.mu.Lock()
	f.pending--
	if err == nil {
		f.items = items
	}
	f.version++
	done := f.stateLocked()
	f.mu.Unlock()
	f.subs.notify(done)

	f.recorder.RecordRefresh("feed", time.Since(start), err)
	if err != nil {
		applog.Error(ctx, "feed refresh failed", "error", err)
		return err
	}
	applog.Debug(ctx, "feed refreshed", "posts", len(items))
	return nil
}

func (f *Feed) load(ctx context.Context, latency Waiter) ([]FeedPost, error) {
	if err := latency.wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for feed: %w", err)
	}
	posts, err := f.posts.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	users, err := f.users.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return joinAuthors(ctx, posts, users), nil
}

func joinAuthors(ctx context.Context, posts []models.Post, users []models.User) []FeedPost {
	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	out := make([]FeedPost, 0, len(posts))
	for _, post := range posts {
		if err := post.Validate(); err != nil {
			applog.Warn(ctx, "skipping invalid post", "postID", post.ID, "error", err)
			continue
		}
		author, ok := byID[post.UserID]
		if !ok {
			applog.Debug(ctx, "post author not found", "postID", post.ID, "userID", post.UserID)
		}
		out = append(out, FeedPost{Post: post.Clone(), Author: author.Clone()})
	}
	return out
}

// Like adds exactly one like to the post. It reports false for unknown ids.
func (f *Feed) Like(id string) bool {
	f.mu.Lock()
	idx := f.indexLocked(id)
	if idx < 0 {
		f.mu.Unlock()
		applog.Debug(context.Background(), "like for unknown post", "postID", id)
		return false
	}
	f.items[idx].Likes++
	f.version++
	state := f.stateLocked()
	f.mu.Unlock()

	f.subs.notify(state)
	f.recorder.RecordLike(id)
	return true
}

// Fund adds amount to the post's current funding. The total is not capped
// at the goal. Callers validate amount beforehand.
func (f *Feed) Fund(id string, amount float64) bool {
	f.mu.Lock()
	idx := f.indexLocked(id)
	if idx < 0 {
		f.mu.Unlock()
		applog.Debug(context.Background(), "funding for unknown post", "postID", id)
		return false
	}
	f.items[idx].CurrentFunding += amount
	f.version++
	state := f.stateLocked()
	f.mu.Unlock()

	f.subs.notify(state)
	f.recorder.RecordFunding("post", amount)
	return true
}

// Post returns a copy of one post.
func (f *Feed) Post(id string) (FeedPost, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	idx := f.indexLocked(id)
	if idx < 0 {
		return FeedPost{}, false
	}
	return f.items[idx].clone(), true
}

// State returns a deep copy of the current feed state.
func (f *Feed) State() FeedState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.stateLocked()
}

// Subscribe registers fn for every transition and returns its remover.
// fn runs synchronously on the goroutine that caused the transition.
func (f *Feed) Subscribe(fn func(FeedState)) func() {
	return f.subs.add(fn)
}

func (f *Feed) indexLocked(id string) int {
	for i := range f.items {
		if f.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (f *Feed) stateLocked() FeedState {
	posts := make([]FeedPost, len(f.items))
	for i, p := range f.items {
		posts[i] = p.clone()
	}
	loading := f.pending > 0
	return FeedState{
		Posts:   posts,
		Loading: loading,
		Status:  statusOf(loading),
		Version: f.version,
	}
}
