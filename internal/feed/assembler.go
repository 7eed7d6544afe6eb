// Package feed reshapes raw post and comment records into render-ready
// items: author names resolved, reaction state computed for the current
// viewer, timestamps formatted, and ordering imposed here rather than
// trusted from the store.
package feed

import (
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/RXAliman/scrunch/internal/models"
	"github.com/RXAliman/scrunch/internal/timefmt"
)

// NameLookup resolves an account ID to its display name. Lookups are
// read-only and independent, so the assembler may call them
// concurrently. A failed lookup fails the whole assembly; there is no
// placeholder name.
type NameLookup func(accountID uint) (string, error)

// Item is one post ready for the feed, profile, or detail template.
type Item struct {
	ID            uint
	AccountID     uint
	AccountName   string
	Caption       string
	ImageURL      string
	Timestamp     int64
	EditedOn      *int64
	Relative      string
	Absolute      string
	Reacted       bool
	ReactionCount int
	CommentCount  int
	Comments      []models.Comment
	Reactions     []models.Reaction
}

// CommentItem is one comment on the post detail page.
type CommentItem struct {
	AccountID   uint
	AccountName string
	Content     string
	Timestamp   int64
	Relative    string
}

// Assemble turns raw posts into feed items sorted most recent first.
// viewerID 0 means no authenticated viewer, so Reacted is always
// false. Missing comment/reaction collections behave as empty.
func Assemble(posts []models.Post, viewerID uint, now int64, lookup NameLookup) ([]Item, error) {
	names, err := resolveNames(authorIDs(posts), lookup)
	if err != nil {
		return nil, err
	}

	items := make([]Item, 0, len(posts))
	for _, p := range posts {
		stamp := timefmt.Format(p.Timestamp, now)
		items = append(items, Item{
			ID:            p.ID,
			AccountID:     p.AccountID,
			AccountName:   names[p.AccountID],
			Caption:       p.Caption,
			ImageURL:      p.ImageURL,
			Timestamp:     p.Timestamp,
			EditedOn:      p.EditedOn,
			Relative:      stamp.Relative,
			Absolute:      stamp.Absolute,
			Reacted:       hasReacted(p.Reactions, viewerID),
			ReactionCount: len(p.Reactions),
			CommentCount:  len(p.Comments),
			Comments:      emptyIfNil(p.Comments),
			Reactions:     emptyIfNil(p.Reactions),
		})
	}

	// Stable keeps insertion order for equal timestamps; the store's
	// ordering is only a hint, the real ordering happens here.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items, nil
}

// AssembleByAuthor is the profile-page variant: every post belongs to
// one already-known author, so no lookups are issued.
func AssembleByAuthor(posts []models.Post, author models.Profile, viewerID uint, now int64) []Item {
	items, _ := Assemble(posts, viewerID, now, func(uint) (string, error) {
		return author.Name(), nil
	})
	return items
}

// AssembleComments resolves commenter names and sorts oldest first —
// conversation order, the opposite of the feed.
func AssembleComments(comments []models.Comment, now int64, lookup NameLookup) ([]CommentItem, error) {
	ids := make([]uint, 0, len(comments))
	seen := make(map[uint]bool, len(comments))
	for _, c := range comments {
		if !seen[c.AccountID] {
			seen[c.AccountID] = true
			ids = append(ids, c.AccountID)
		}
	}
	names, err := resolveNames(ids, lookup)
	if err != nil {
		return nil, err
	}

	items := make([]CommentItem, 0, len(comments))
	for _, c := range comments {
		items = append(items, CommentItem{
			AccountID:   c.AccountID,
			AccountName: names[c.AccountID],
			Content:     c.Content,
			Timestamp:   c.Timestamp,
			Relative:    timefmt.Relative(c.Timestamp, now),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp < items[j].Timestamp
	})
	return items, nil
}

// resolveNames fans out one lookup per distinct account and fails fast
// on the first error.
func resolveNames(ids []uint, lookup NameLookup) (map[uint]string, error) {
	names := make(map[uint]string, len(ids))
	var mu sync.Mutex
	var g errgroup.Group

	for _, id := range ids {
		g.Go(func() error {
			name, err := lookup(id)
			if err != nil {
				return err
			}
			mu.Lock()
			names[id] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return names, nil
}

func authorIDs(posts []models.Post) []uint {
	ids := make([]uint, 0, len(posts))
	seen := make(map[uint]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AccountID] {
			seen[p.AccountID] = true
			ids = append(ids, p.AccountID)
		}
	}
	return ids
}

func hasReacted(reactions []models.Reaction, viewerID uint) bool {
	if viewerID == 0 {
		return false
	}
	for _, r := range reactions {
		if r.AccountID == viewerID {
			return true
		}
	}
	return false
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
